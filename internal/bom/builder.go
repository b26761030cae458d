// Package bom aggregates measured bodies into a parts list and a shopping list.
package bom

import (
	"errors"
	"fmt"
	"sort"

	"github.com/piwi3910/WoodBOM/internal/engine"
	"github.com/piwi3910/WoodBOM/internal/geometry"
	"github.com/piwi3910/WoodBOM/internal/model"
	"go.uber.org/zap"
)

// ErrNoParts is returned by Report when no body could be measured.
var ErrNoParts = errors.New("no parts found")

// Builder collects dimension records. It is not safe for concurrent use.
type Builder struct {
	settings  model.Settings
	inventory *model.Inventory
	extractor *geometry.Extractor
	optimizer *engine.Optimizer
	logger    *zap.Logger

	counts  map[model.BOMKey]int
	keys    []model.BOMKey // first-seen order
	groupAt map[model.StockKey]int
	groups  []model.StockGroup
	skipped []string
}

// NewBuilder creates a Builder. inventory may be nil, in which case every
// material is priced at settings.PricePerM3.
func NewBuilder(settings model.Settings, inventory *model.Inventory, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		settings:  settings,
		inventory: inventory,
		extractor: geometry.NewExtractor(settings),
		optimizer: engine.New(settings),
		logger:    logger,
		counts:    make(map[model.BOMKey]int),
		groupAt:   make(map[model.StockKey]int),
	}
}

// Add measures one body and records it under the cleaned display name.
// Bodies that cannot be measured are skipped and the error is returned.
func (b *Builder) Add(body model.SolidBody, displayName string) (model.DimensionRecord, error) {
	rec, err := b.extractor.Extract(body)
	if err != nil {
		b.logger.Debug("skipping body",
			zap.String("body", body.Name),
			zap.String("display_name", displayName),
			zap.Error(err),
		)
		b.skipped = append(b.skipped, skipLabel(body, displayName))
		return model.DimensionRecord{}, err
	}
	rec.Name = CleanPartName(displayName)

	key := rec.Key()
	if _, ok := b.counts[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.counts[key]++

	sk := rec.StockKey()
	idx, ok := b.groupAt[sk]
	if !ok {
		idx = len(b.groups)
		b.groupAt[sk] = idx
		b.groups = append(b.groups, model.StockGroup{Key: sk})
	}
	b.groups[idx].Lengths = append(b.groups[idx].Lengths, rec.Length)

	b.logger.Debug("recorded part",
		zap.String("name", rec.Name),
		zap.String("material", rec.Material),
		zap.Int("length", rec.Length),
		zap.Int("height", rec.Height),
		zap.Int("width", rec.Width),
	)
	return rec, nil
}

func skipLabel(body model.SolidBody, displayName string) string {
	if body.Name == "" || body.Name == displayName {
		return displayName
	}
	return displayName + "/" + body.Name
}

// Entries returns the BOM entries in first-seen order.
func (b *Builder) Entries() []model.BOMEntry {
	out := make([]model.BOMEntry, len(b.keys))
	for i, k := range b.keys {
		out[i] = model.BOMEntry{Key: k, Quantity: b.counts[k]}
	}
	return out
}

// Groups returns a copy of the stock groups in first-seen order.
func (b *Builder) Groups() []model.StockGroup {
	out := make([]model.StockGroup, len(b.groups))
	for i, g := range b.groups {
		out[i] = model.StockGroup{Key: g.Key, Lengths: append([]int(nil), g.Lengths...)}
	}
	return out
}

// Skipped returns the display names of bodies that could not be measured.
func (b *Builder) Skipped() []string {
	return append([]string(nil), b.skipped...)
}

func (b *Builder) priceFor(material string) float64 {
	return b.inventory.PriceFor(material, b.settings.PricePerM3)
}

// Report prices the parts list and runs the optimizer over every stock group.
func (b *Builder) Report() (model.Report, error) {
	if len(b.keys) == 0 {
		return model.Report{}, ErrNoParts
	}

	rep := model.Report{
		PricePerM3: b.settings.PricePerM3,
		Currency:   b.settings.Currency,
		Skipped:    b.Skipped(),
	}

	entries := b.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Key.Name < entries[j].Key.Name
	})
	for _, e := range entries {
		k := e.Key
		vol := model.VolumeM3(k.Length, k.Height, k.Width, e.Quantity)
		cost := model.Cost(vol, b.priceFor(k.Material))
		rep.Parts = append(rep.Parts, model.PartRow{Key: k, Quantity: e.Quantity, Volume: vol, Cost: cost})
	}

	for _, g := range b.groups {
		plan := b.optimizer.PlanGroup(g)
		rep.Plans = append(rep.Plans, plan)

		rep.Shopping = append(rep.Shopping, b.shoppingRows(plan)...)

		for _, board := range plan.Boards {
			if !board.Oversize {
				continue
			}
			msg := fmt.Sprintf("%s: cut of %d mm needs %d mm with kerf, longer than the %d mm maximum board",
				g.Key, board.Cuts[0], board.Used, b.settings.MaxRawLength)
			b.logger.Warn("oversize part",
				zap.String("stock", g.Key.String()),
				zap.Int("cut", board.Cuts[0]),
				zap.Int("max_raw_length", b.settings.MaxRawLength),
			)
			rep.Warnings = append(rep.Warnings, msg)
		}

		rep.Offcuts = append(rep.Offcuts, model.DetectOffcuts(plan, b.settings.MinOffcutLength)...)
	}

	est := model.EstimateCost(rep.Parts, rep.Shopping)
	rep.NetTotal = est.NetCost
	rep.PurchaseTotal = est.PurchaseCost
	rep.WastePercent = est.WastePercent

	b.logger.Info("report built",
		zap.Int("parts", rep.TotalParts()),
		zap.Int("boards", rep.TotalBoards()),
		zap.Int("skipped", len(rep.Skipped)),
		zap.String("net_total", rep.NetTotal.StringFixed(model.CostPlaces)),
		zap.String("purchase_total", rep.PurchaseTotal.StringFixed(model.CostPlaces)),
		zap.Float64("waste_percent", rep.WastePercent),
	)
	return rep, nil
}

// shoppingRows counts the boards of a plan by stock length, first-seen order.
func (b *Builder) shoppingRows(plan model.GroupPlan) []model.ShoppingRow {
	price := b.priceFor(plan.Stock.Material)

	var rows []model.ShoppingRow
	rowAt := make(map[int]int)
	for _, board := range plan.Boards {
		i, ok := rowAt[board.StockLength]
		if !ok {
			i = len(rows)
			rowAt[board.StockLength] = i
			rows = append(rows, model.ShoppingRow{Stock: plan.Stock, StockLength: board.StockLength})
		}
		rows[i].Quantity++
		rows[i].Oversize = rows[i].Oversize || board.Oversize
	}
	for i := range rows {
		r := &rows[i]
		r.Volume = model.VolumeM3(r.StockLength, r.Stock.Height, r.Stock.Width, r.Quantity)
		r.Cost = model.Cost(r.Volume, price)
	}
	return rows
}
