package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut is a usable remnant left on a purchased board after all cuts.
type Offcut struct {
	ID         string   `json:"id"`
	Stock      StockKey `json:"stock"`
	BoardID    string   `json:"board_id"`
	BoardIndex int      `json:"board_index"` // index of the board within its group plan
	Length     int      `json:"length"`      // mm
}

// DetectOffcuts returns the remnants of the given boards that are at least
// minLength long, longest first. A minLength of zero or less disables detection.
func DetectOffcuts(plan GroupPlan, minLength int) []Offcut {
	if minLength <= 0 {
		return nil
	}
	var offcuts []Offcut
	for i, b := range plan.Boards {
		if b.Oversize {
			continue
		}
		if rest := b.Waste(); rest >= minLength {
			offcuts = append(offcuts, Offcut{
				ID:         uuid.New().String()[:8],
				Stock:      plan.Stock,
				BoardID:    b.ID,
				BoardIndex: i,
				Length:     rest,
			})
		}
	}
	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Length > offcuts[j].Length
	})
	return offcuts
}
