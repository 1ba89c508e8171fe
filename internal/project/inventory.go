package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShaperCut/internal/model"
)

func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the bit inventory at path. The first load writes the
// default bits so the user has a file to edit.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	found, err := readJSON(path, &inv)
	if err != nil {
		return model.Inventory{}, err
	}
	if !found {
		inv = model.DefaultInventory()
		return inv, SaveInventory(path, inv)
	}
	return inv, nil
}

// ImportInventory merges the bits of the inventory file at path into
// existing with Inventory.Merge. On error existing is returned unchanged.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	found, err := readJSON(path, &imported)
	if err != nil {
		return existing, err
	}
	if !found {
		return existing, fmt.Errorf("inventory %s: %w", path, os.ErrNotExist)
	}
	existing.Merge(imported)
	return existing, nil
}
