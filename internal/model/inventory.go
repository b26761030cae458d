package model

import (
	"strings"

	"github.com/google/uuid"
)

// MaterialPrice overrides the unit price for one material name.
type MaterialPrice struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`         // material name as reported by the CAD host
	PricePerM3 float64 `json:"price_per_m3"` // 0 = use the default price
	Notes      string  `json:"notes,omitempty"`
}

// NewMaterialPrice creates a new MaterialPrice with a generated ID.
func NewMaterialPrice(name string, pricePerM3 float64) MaterialPrice {
	return MaterialPrice{
		ID:         uuid.New().String()[:8],
		Name:       name,
		PricePerM3: pricePerM3,
	}
}

// Inventory holds the user's saved material prices.
type Inventory struct {
	Materials []MaterialPrice `json:"materials"`
}

// DefaultInventory returns an empty inventory: every material is priced at
// the configured default until the user adds an override.
func DefaultInventory() Inventory {
	return Inventory{Materials: []MaterialPrice{}}
}

// FindMaterialByID returns a pointer to the material with the given ID, or nil.
func (inv *Inventory) FindMaterialByID(id string) *MaterialPrice {
	for i := range inv.Materials {
		if inv.Materials[i].ID == id {
			return &inv.Materials[i]
		}
	}
	return nil
}

// FindMaterialByName returns a pointer to the first material whose name
// matches case-insensitively, or nil.
func (inv *Inventory) FindMaterialByName(name string) *MaterialPrice {
	for i := range inv.Materials {
		if strings.EqualFold(inv.Materials[i].Name, name) {
			return &inv.Materials[i]
		}
	}
	return nil
}

// MaterialNames returns the material names in inventory order.
func (inv *Inventory) MaterialNames() []string {
	names := make([]string, len(inv.Materials))
	for i, m := range inv.Materials {
		names[i] = m.Name
	}
	return names
}

// PriceFor returns the unit price of a material, or fallback when the
// inventory has no positive price for it.
func (inv *Inventory) PriceFor(material string, fallback float64) float64 {
	if inv == nil {
		return fallback
	}
	if m := inv.FindMaterialByName(material); m != nil && m.PricePerM3 > 0 {
		return m.PricePerM3
	}
	return fallback
}
