package model

import (
	"github.com/google/uuid"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

// BitProfile is a saved router bit.
type BitProfile struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Diameter dimension.RealString `json:"diameter"`
}

// NewBitProfile creates a new BitProfile with a generated ID.
func NewBitProfile(name string, diameter dimension.RealString) BitProfile {
	return BitProfile{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Diameter: diameter,
	}
}

// DiameterIn returns the bit diameter converted to unit.
func (b BitProfile) DiameterIn(unit dimension.Unit) (float64, error) {
	d, err := dimension.ParseRealString(b.Diameter)
	if err != nil {
		return 0, err
	}
	return dimension.Convert(d, unit).Scalar, nil
}

// Inventory holds the user's saved bit profiles.
type Inventory struct {
	Bits []BitProfile `json:"bits"`
}

// DefaultInventory returns an inventory populated with common bits.
func DefaultInventory() Inventory {
	return Inventory{
		Bits: []BitProfile{
			NewBitProfile("1/4\" Straight", "0.25 in"),
			NewBitProfile("1/8\" Straight", "0.125 in"),
			NewBitProfile("3mm Straight", "3 mm"),
			NewBitProfile("6mm Straight", "6 mm"),
		},
	}
}

// FindBitByID returns a pointer to the bit with the given ID, or nil.
func (inv *Inventory) FindBitByID(id string) *BitProfile {
	for i := range inv.Bits {
		if inv.Bits[i].ID == id {
			return &inv.Bits[i]
		}
	}
	return nil
}

// FindBitByName returns a pointer to the first bit with the given name, or nil.
func (inv *Inventory) FindBitByName(name string) *BitProfile {
	for i := range inv.Bits {
		if inv.Bits[i].Name == name {
			return &inv.Bits[i]
		}
	}
	return nil
}

// BitNames returns the bit profile names in inventory order.
func (inv *Inventory) BitNames() []string {
	names := make([]string, len(inv.Bits))
	for i, b := range inv.Bits {
		names[i] = b.Name
	}
	return names
}

// Merge appends the bits of other whose ID is not in inv yet. Bits with a
// diameter that is not a positive dimension are skipped. It returns the
// number of bits added.
func (inv *Inventory) Merge(other Inventory) int {
	added := 0
	for _, b := range other.Bits {
		if inv.FindBitByID(b.ID) != nil || !dimension.IsRealString(string(b.Diameter), true) {
			continue
		}
		inv.Bits = append(inv.Bits, b)
		added++
	}
	return added
}
