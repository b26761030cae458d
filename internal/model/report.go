package model

import "github.com/shopspring/decimal"

// PartRow is one line of the net parts list.
type PartRow struct {
	Key      BOMKey          `json:"key"`
	Quantity int             `json:"quantity"`
	Volume   decimal.Decimal `json:"volume_m3"`
	Cost     decimal.Decimal `json:"cost"`
}

// ShoppingRow is one line of the shopping list: boards of the same length
// bought for one cross section.
type ShoppingRow struct {
	Stock       StockKey        `json:"stock"`
	StockLength int             `json:"stock_length"`
	Quantity    int             `json:"quantity"`
	Volume      decimal.Decimal `json:"volume_m3"`
	Cost        decimal.Decimal `json:"cost"`
	Oversize    bool            `json:"oversize,omitempty"`
}

// GroupPlan is the optimizer outcome for one stock group.
type GroupPlan struct {
	Stock  StockKey `json:"stock"`
	Boards []Board  `json:"boards"`
}

// Report is the full output of one run.
type Report struct {
	Name          string          `json:"name"`
	PricePerM3    float64         `json:"price_per_m3"`
	Currency      string          `json:"currency"`
	Parts         []PartRow       `json:"parts"`
	NetTotal      decimal.Decimal `json:"net_total"`
	Shopping      []ShoppingRow   `json:"shopping"`
	PurchaseTotal decimal.Decimal `json:"purchase_total"`
	WastePercent  float64         `json:"waste_percent"` // purchased volume not in parts
	Plans         []GroupPlan     `json:"plans"`
	Offcuts       []Offcut        `json:"offcuts"`
	Skipped       []string        `json:"skipped,omitempty"` // bodies whose geometry could not be measured
	Warnings      []string        `json:"warnings,omitempty"`
}

// TotalBoards returns the number of boards on the shopping list.
func (r Report) TotalBoards() int {
	n := 0
	for _, row := range r.Shopping {
		n += row.Quantity
	}
	return n
}

// TotalParts returns the number of individual parts on the net parts list.
func (r Report) TotalParts() int {
	n := 0
	for _, row := range r.Parts {
		n += row.Quantity
	}
	return n
}
