package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/WoodBOM/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.woodbom/inventory.json.
func DefaultInventoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".woodbom", "inventory.json"), nil
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	if inv.Materials == nil {
		inv.Materials = []model.MaterialPrice{}
	}
	return inv, nil
}

// ImportInventory merges the materials of a JSON inventory file into existing.
// Materials already present by name (case-insensitive) are kept as they are.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	for _, m := range imported.Materials {
		if existing.FindMaterialByName(m.Name) != nil {
			continue
		}
		if m.ID == "" || existing.FindMaterialByID(m.ID) != nil {
			m.ID = model.NewMaterialPrice(m.Name, m.PricePerM3).ID
		}
		existing.Materials = append(existing.Materials, m)
	}
	return existing, nil
}
