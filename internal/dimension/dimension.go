// Package dimension implements a small unit-aware value model: a number with
// an optional physical unit, the arithmetic rules for combining such values,
// and conversion between inches and millimeters.
package dimension

import "fmt"

// Unit is the physical unit carried by a Dimension. The zero value means the
// dimension is a pure scalar.
type Unit string

const (
	None       Unit = ""
	Inch       Unit = "in"
	Millimeter Unit = "mm"
	// Pixel only appears at the boundary with the host drawing; the
	// arithmetic never produces it.
	Pixel Unit = "px"
)

// MillimetersPerInch is the exact in→mm conversion factor.
const MillimetersPerInch = 25.4

// IsReal reports whether u is one of the two real-world units.
func (u Unit) IsReal() bool {
	return u == Inch || u == Millimeter
}

func (u Unit) String() string {
	if u == None {
		return "none"
	}
	return string(u)
}

// Dimension is a number with an optional unit.
type Dimension struct {
	Scalar float64 `json:"scalar"`
	Unit   Unit    `json:"unit,omitempty"`
}

// Scalar constructs a unitless value.
func Scalar(n float64) Dimension {
	return Dimension{Scalar: n}
}

// New constructs a dimension in the given unit.
func New(n float64, u Unit) Dimension {
	return Dimension{Scalar: n, Unit: u}
}

// HasUnit reports whether d carries any unit.
func (d Dimension) HasUnit() bool {
	return d.Unit != None
}

// IsReal reports whether d carries inches or millimeters.
func (d Dimension) IsReal() bool {
	return d.Unit.IsReal()
}

// Fraction is an unsimplified quotient. It only exists while a division is
// being resolved.
type Fraction struct {
	Numerator   Dimension
	Denominator Dimension
}

// Convert returns d expressed in unit to. Only conversions between inches
// and millimeters change the value; pixel and unitless inputs, or a
// non-real target, pass through unchanged.
func Convert(d Dimension, to Unit) Dimension {
	if d.Unit == to || !to.IsReal() {
		return d
	}
	switch d.Unit {
	case Inch:
		return Dimension{Scalar: d.Scalar * MillimetersPerInch, Unit: to}
	case Millimeter:
		return Dimension{Scalar: d.Scalar / MillimetersPerInch, Unit: to}
	}
	return d
}

// Mul multiplies a and b. Units squared are not representable, so it fails
// with ErrInvalidOperation when both operands carry a unit.
func Mul(a, b Dimension) (Dimension, error) {
	if a.HasUnit() && b.HasUnit() {
		return Dimension{}, fmt.Errorf("%w: cannot multiply %s by %s", ErrInvalidOperation, a.Unit, b.Unit)
	}
	unit := a.Unit
	if unit == None {
		unit = b.Unit
	}
	return Dimension{Scalar: a.Scalar * b.Scalar, Unit: unit}, nil
}

// Simplify resolves a fraction into a dimension:
//
//   - identical units (both unitless included) cancel to a scalar
//   - different units: the denominator is converted into the numerator's
//     unit and the fraction simplified again
//   - a unit only on the numerator is kept
//
// Any other shape (a unit only on the denominator, or a pixel that cannot be
// converted) is returned unresolved as a non-nil *Fraction.
func Simplify(f Fraction) (Dimension, *Fraction) {
	num, den := f.Numerator, f.Denominator
	if num.Unit == den.Unit {
		return Scalar(num.Scalar / den.Scalar), nil
	}
	if num.HasUnit() && den.HasUnit() {
		converted := Convert(den, num.Unit)
		if converted.Unit != num.Unit {
			return Dimension{}, &f
		}
		return Simplify(Fraction{Numerator: num, Denominator: converted})
	}
	if num.HasUnit() {
		return Dimension{Scalar: num.Scalar / den.Scalar, Unit: num.Unit}, nil
	}
	return Dimension{}, &f
}

// Div divides a by b using the Simplify rules. Dividing inches by
// millimeters is allowed and yields a unitless scalar that reflects the
// conversion factor.
func Div(a, b Dimension) (Dimension, error) {
	d, rest := Simplify(Fraction{Numerator: a, Denominator: b})
	if rest != nil {
		return Dimension{}, fmt.Errorf("%w: %v / %v", ErrUnresolvedFraction, a, b)
	}
	return d, nil
}

// Add sums a and b. Same units add directly; differing real units convert b
// into a's unit; a unitless operand adopts the other operand's unit.
func Add(a, b Dimension) (Dimension, error) {
	switch {
	case a.Unit == b.Unit:
		return Dimension{Scalar: a.Scalar + b.Scalar, Unit: a.Unit}, nil
	case a.HasUnit() && b.HasUnit():
		converted := Convert(b, a.Unit)
		if converted.Unit == a.Unit {
			return Dimension{Scalar: a.Scalar + converted.Scalar, Unit: a.Unit}, nil
		}
		return Dimension{}, fmt.Errorf("%w: cannot add %s to %s", ErrIncompatibleUnits, b.Unit, a.Unit)
	case a.HasUnit():
		return Dimension{Scalar: a.Scalar + b.Scalar, Unit: a.Unit}, nil
	default:
		return Dimension{Scalar: a.Scalar + b.Scalar, Unit: b.Unit}, nil
	}
}

// Neg negates the scalar and keeps the unit.
func Neg(a Dimension) Dimension {
	return Dimension{Scalar: -a.Scalar, Unit: a.Unit}
}

func (d Dimension) String() string {
	if d.Unit == None {
		return formatNumber(d.Scalar)
	}
	return formatNumber(d.Scalar) + " " + string(d.Unit)
}
