package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// DefaultAngle is reported when a part has no end cut faces.
const DefaultAngle = "90.0°"

// DimensionRecord is the measured, rounded result for one body.
// Length >= Height >= Width always holds for records built by NewDimensionRecord.
type DimensionRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Material  string  `json:"material"`
	Length    int     `json:"length"` // mm
	Height    int     `json:"height"` // mm
	Width     int     `json:"width"`  // mm
	Angle1    string  `json:"angle1"`
	Angle2    string  `json:"angle2"`
	Angle1Deg float64 `json:"angle1_deg"`
	Angle2Deg float64 `json:"angle2_deg"`
}

// NewDimensionRecord sorts the three dimensions descending before assigning them.
func NewDimensionRecord(name, material string, dims [3]int, angle1, angle2 float64, hasAngles bool) DimensionRecord {
	d := dims[:]
	sort.Sort(sort.Reverse(sort.IntSlice(d)))

	a1, a2 := DefaultAngle, DefaultAngle
	if hasAngles {
		a1, a2 = FormatAngle(angle1), FormatAngle(angle2)
	} else {
		angle1, angle2 = 90, 90
	}

	return DimensionRecord{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Material:  material,
		Length:    d[0],
		Height:    d[1],
		Width:     d[2],
		Angle1:    a1,
		Angle2:    a2,
		Angle1Deg: angle1,
		Angle2Deg: angle2,
	}
}

// FormatAngle renders an angle in degrees with one decimal, e.g. "45.5°".
func FormatAngle(deg float64) string {
	return fmt.Sprintf("%.1f°", deg)
}

// BOMKey identifies one line of the net parts list.
type BOMKey struct {
	Name     string `json:"name"`
	Material string `json:"material"`
	Length   int    `json:"length"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
	Angle1   string `json:"angle1"`
	Angle2   string `json:"angle2"`
}

// Key returns the BOM key of the record.
func (r DimensionRecord) Key() BOMKey {
	return BOMKey{
		Name:     r.Name,
		Material: r.Material,
		Length:   r.Length,
		Height:   r.Height,
		Width:    r.Width,
		Angle1:   r.Angle1,
		Angle2:   r.Angle2,
	}
}

// StockKey returns the cross-section group the record's length is bought in.
func (r DimensionRecord) StockKey() StockKey {
	return StockKey{Material: r.Material, Height: r.Height, Width: r.Width}
}

// BOMEntry is a BOM key together with the number of identical parts.
type BOMEntry struct {
	Key      BOMKey `json:"key"`
	Quantity int    `json:"quantity"`
}

// StockKey identifies boards of one material and cross section.
type StockKey struct {
	Material string `json:"material"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
}

func (k StockKey) String() string {
	return fmt.Sprintf("%s %dx%d", k.Material, k.Height, k.Width)
}

// StockGroup holds every required raw length for one cross section, in scan order.
type StockGroup struct {
	Key     StockKey `json:"key"`
	Lengths []int    `json:"lengths"`
}

// Board is one raw board opened by the cut optimizer.
type Board struct {
	ID          string `json:"id"`
	Capacity    int    `json:"capacity"`     // max raw length the board was packed against
	Used        int    `json:"used"`         // sum of cuts plus kerf per cut
	Cuts        []int  `json:"cuts"`         // required lengths, in placement order
	StockLength int    `json:"stock_length"` // standard length to buy
	Oversize    bool   `json:"oversize"`     // a cut does not fit even the longest board
}

// NewBoard opens a board holding a single cut.
func NewBoard(capacity, cut, kerf int) Board {
	return Board{
		ID:       uuid.New().String()[:8],
		Capacity: capacity,
		Used:     cut + kerf,
		Cuts:     []int{cut},
	}
}

// Remaining returns the free capacity of the board.
func (b Board) Remaining() int {
	return b.Capacity - b.Used
}

// Waste returns the purchased length not consumed by cuts or kerf.
func (b Board) Waste() int {
	if b.StockLength <= b.Used {
		return 0
	}
	return b.StockLength - b.Used
}

// Algorithm selects the 1-D packing heuristic.
type Algorithm string

const (
	AlgorithmFirstFit Algorithm = "first-fit" // First-fit decreasing
	AlgorithmBestFit  Algorithm = "best-fit"  // Best-fit decreasing
)

// StandardStockSizes is the default catalog of purchasable board lengths (mm).
var StandardStockSizes = []int{2400, 2700, 3000, 3300, 3600, 3900, 4200, 4500, 4800, 5100, 5400, 5700, 6000}

// Settings holds the pricing, rounding and optimizer configuration of a run.
type Settings struct {
	PricePerM3      float64   `json:"price_per_m3" mapstructure:"price_per_m3"`
	Currency        string    `json:"currency" mapstructure:"currency"`
	SawKerf         int       `json:"saw_kerf" mapstructure:"saw_kerf"`             // mm added per cut
	MaxRawLength    int       `json:"max_raw_length" mapstructure:"max_raw_length"` // mm
	StockSizes      []int     `json:"stock_sizes" mapstructure:"stock_sizes"`       // ascending, mm
	UseSnapping     bool      `json:"use_snapping" mapstructure:"use_snapping"`
	SnapInterval    int       `json:"snap_interval" mapstructure:"snap_interval"` // mm
	Algorithm       Algorithm `json:"algorithm" mapstructure:"algorithm"`
	MinOffcutLength int       `json:"min_offcut_length" mapstructure:"min_offcut_length"` // mm
}

func DefaultSettings() Settings {
	return Settings{
		PricePerM3:      1800.0,
		Currency:        "NIS",
		SawKerf:         4,
		MaxRawLength:    6000,
		StockSizes:      append([]int(nil), StandardStockSizes...),
		UseSnapping:     true,
		SnapInterval:    5,
		Algorithm:       AlgorithmFirstFit,
		MinOffcutLength: 300,
	}
}

// Validate checks the settings for values the pipeline cannot work with.
func (s Settings) Validate() error {
	if s.SawKerf < 0 {
		return fmt.Errorf("saw kerf must not be negative, got %d", s.SawKerf)
	}
	if s.MaxRawLength <= 0 {
		return fmt.Errorf("max raw length must be positive, got %d", s.MaxRawLength)
	}
	if s.PricePerM3 < 0 {
		return fmt.Errorf("price per m3 must not be negative, got %g", s.PricePerM3)
	}
	if s.UseSnapping && s.SnapInterval <= 0 {
		return fmt.Errorf("snap interval must be positive when snapping is enabled, got %d", s.SnapInterval)
	}
	for i, size := range s.StockSizes {
		if size <= 0 {
			return fmt.Errorf("stock size %d must be positive", size)
		}
		if i > 0 && size <= s.StockSizes[i-1] {
			return fmt.Errorf("stock sizes must be strictly ascending: %d follows %d", size, s.StockSizes[i-1])
		}
	}
	switch s.Algorithm {
	case "", AlgorithmFirstFit, AlgorithmBestFit:
	default:
		return fmt.Errorf("unknown algorithm %q", s.Algorithm)
	}
	return nil
}
