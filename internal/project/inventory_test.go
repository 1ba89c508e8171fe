package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShaperCut/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv := model.Inventory{
		Bits: []model.BitProfile{model.NewBitProfile("Test Bit", "5 mm")},
	}
	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Bits) != 1 {
		t.Fatalf("expected 1 bit, got %d", len(loaded.Bits))
	}
	if loaded.Bits[0].Name != "Test Bit" || loaded.Bits[0].Diameter != "5 mm" {
		t.Errorf("unexpected bit %+v", loaded.Bits[0])
	}
}

func TestLoadInventoryCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Bits) != len(model.DefaultInventory().Bits) {
		t.Errorf("expected default bits, got %d", len(inv.Bits))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default inventory to be saved: %v", err)
	}
}

func TestImportInventoryMergesByID(t *testing.T) {
	existing := model.Inventory{Bits: []model.BitProfile{
		{ID: "a", Name: "A", Diameter: "1 mm"},
	}}
	imported := model.Inventory{Bits: []model.BitProfile{
		{ID: "a", Name: "A again", Diameter: "2 mm"},
		{ID: "b", Name: "B", Diameter: "3 mm"},
	}}
	data, err := json.Marshal(imported)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Bits) != 2 {
		t.Fatalf("expected 2 bits, got %d", len(merged.Bits))
	}
	if merged.Bits[0].Name != "A" {
		t.Errorf("existing bit was overwritten: %+v", merged.Bits[0])
	}
	if merged.Bits[1].ID != "b" {
		t.Errorf("expected imported bit b, got %+v", merged.Bits[1])
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "missing.json"), existing)
	if err == nil {
		t.Error("expected error for missing file")
	}
	if len(got.Bits) != len(existing.Bits) {
		t.Error("existing inventory should be returned unchanged")
	}
}
