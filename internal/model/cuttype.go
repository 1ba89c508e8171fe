package model

import (
	"errors"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

// ErrInvalidCutType is returned for a cut type outside the known set.
var ErrInvalidCutType = errors.New("invalid cut type")

// CutType is the machining intent for a path.
type CutType string

const (
	CutInside  CutType = "inside"  // Tool stays inside the boundary
	CutOutside CutType = "outside" // Tool stays outside the boundary
	CutOnline  CutType = "online"  // Tool center follows the path
	CutPocket  CutType = "pocket"  // Everything inside the boundary is removed
	CutGuide   CutType = "guide"   // Reference only, never cut
)

// CutTypes lists the cut types in display order.
func CutTypes() []CutType {
	return []CutType{CutInside, CutOutside, CutOnline, CutPocket, CutGuide}
}

// ParseCutType validates s. The empty string means "unset" and is returned
// as-is; "on-line" is accepted as a spelling of online.
func ParseCutType(s string) (CutType, error) {
	switch c := CutType(s); c {
	case "", CutInside, CutOutside, CutOnline, CutPocket, CutGuide:
		return c, nil
	case "on-line":
		return CutOnline, nil
	}
	return "", &dimension.ValidationError{Err: ErrInvalidCutType, Value: s, Reason: "expected inside, outside, online, pocket or guide"}
}

// IsCut reports whether the tool physically cuts along paths of this type.
func (c CutType) IsCut() bool {
	return c != CutGuide && c != ""
}

// ForcesClosed reports whether paths of this type are treated as closed
// shapes regardless of how they were drawn.
func (c CutType) ForcesClosed() bool {
	return c == CutInside || c == CutOutside || c == CutPocket
}

func (c CutType) String() string {
	if c == "" {
		return "unset"
	}
	return string(c)
}
