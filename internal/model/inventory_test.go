package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInventory(t *testing.T) {
	inv := DefaultInventory()
	assert.NotNil(t, inv.Materials)
	assert.Empty(t, inv.Materials)
}

func TestInventoryLookups(t *testing.T) {
	oak := NewMaterialPrice("Oak", 4200)
	inv := Inventory{Materials: []MaterialPrice{oak, NewMaterialPrice("Pine", 0)}}

	require.NotNil(t, inv.FindMaterialByID(oak.ID))
	assert.Nil(t, inv.FindMaterialByID("missing"))

	m := inv.FindMaterialByName("oak")
	require.NotNil(t, m)
	assert.Equal(t, "Oak", m.Name)

	assert.Equal(t, []string{"Oak", "Pine"}, inv.MaterialNames())
}

func TestPriceFor(t *testing.T) {
	inv := &Inventory{Materials: []MaterialPrice{NewMaterialPrice("Oak", 4200), NewMaterialPrice("Pine", 0)}}

	assert.Equal(t, 4200.0, inv.PriceFor("OAK", 1800))
	assert.Equal(t, 1800.0, inv.PriceFor("Pine", 1800), "zero price falls back")
	assert.Equal(t, 1800.0, inv.PriceFor("Walnut", 1800))

	var none *Inventory
	assert.Equal(t, 1800.0, none.PriceFor("Oak", 1800))
}
