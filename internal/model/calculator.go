package model

import "github.com/shopspring/decimal"

// mm3PerM3 converts cubic millimetres to cubic metres.
var mm3PerM3 = decimal.NewFromInt(1_000_000_000)

// Presentation precision of report figures.
const (
	VolumePlaces = 4
	CostPlaces   = 2
)

// VolumeM3 returns the volume in m³ of qty pieces of length x height x width mm.
func VolumeM3(length, height, width, qty int) decimal.Decimal {
	mm3 := decimal.NewFromInt(int64(length)).
		Mul(decimal.NewFromInt(int64(height))).
		Mul(decimal.NewFromInt(int64(width))).
		Mul(decimal.NewFromInt(int64(qty)))
	return mm3.Div(mm3PerM3)
}

// Cost prices a volume at the given unit price per m³.
func Cost(volume decimal.Decimal, pricePerM3 float64) decimal.Decimal {
	return volume.Mul(decimal.NewFromFloat(pricePerM3))
}

// CostEstimate summarises what a cut list costs net and as purchased.
type CostEstimate struct {
	NetVolume      decimal.Decimal `json:"net_volume"`
	PurchaseVolume decimal.Decimal `json:"purchase_volume"`
	NetCost        decimal.Decimal `json:"net_cost"`
	PurchaseCost   decimal.Decimal `json:"purchase_cost"`
	WastePercent   float64         `json:"waste_percent"` // share of purchased volume not in parts
}

// EstimateCost totals the rows of a report. Totals are computed from unrounded
// row values.
func EstimateCost(parts []PartRow, shopping []ShoppingRow) CostEstimate {
	est := CostEstimate{
		NetVolume:      decimal.Zero,
		PurchaseVolume: decimal.Zero,
		NetCost:        decimal.Zero,
		PurchaseCost:   decimal.Zero,
	}
	for _, p := range parts {
		est.NetVolume = est.NetVolume.Add(p.Volume)
		est.NetCost = est.NetCost.Add(p.Cost)
	}
	for _, s := range shopping {
		est.PurchaseVolume = est.PurchaseVolume.Add(s.Volume)
		est.PurchaseCost = est.PurchaseCost.Add(s.Cost)
	}
	if est.PurchaseVolume.IsPositive() {
		used := est.NetVolume.Div(est.PurchaseVolume).InexactFloat64()
		est.WastePercent = (1 - used) * 100
		if est.WastePercent < 0 {
			est.WastePercent = 0
		}
	}
	return est
}
