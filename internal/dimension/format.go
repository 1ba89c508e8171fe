package dimension

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RealString is the canonical "<number> <unit>" form of a real dimension,
// e.g. "1.125 in". It is used for persistence and display.
type RealString string

// defaultPrecisionOffset is added to the decimal magnitude of a value to pick
// the number of significant digits when formatting.
const defaultPrecisionOffset = 4

var unitSuffix = regexp.MustCompile(`(?i)[a-z]+$`)

// AssertRealUnit validates that s names a real unit.
func AssertRealUnit(s string) (Unit, error) {
	u := Unit(s)
	if !u.IsReal() {
		return None, invalid(ErrInvalidUnit, s, "unknown unit")
	}
	return u, nil
}

// AssertRealString validates s as "<number> <unit>". When ensurePositive is
// set, negative values are rejected.
func AssertRealString(s string, ensurePositive bool) (RealString, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 2 {
		return "", invalid(ErrInvalidDimensionString, s, "expected '<number> <unit>'")
	}
	value, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || math.IsNaN(value) {
		return "", invalid(ErrInvalidDimensionString, s, "invalid value '"+parts[0]+"'")
	}
	if ensurePositive && value < 0 {
		return "", invalid(ErrInvalidDimensionString, s, "value must be positive")
	}
	if _, err := AssertRealUnit(parts[1]); err != nil {
		return "", err
	}
	return RealString(s), nil
}

// IsRealString reports whether s passes AssertRealString.
func IsRealString(s string, ensurePositive bool) bool {
	_, err := AssertRealString(s, ensurePositive)
	return err == nil
}

// ParseRealString parses a canonical dimension string into a Dimension.
func ParseRealString(s RealString) (Dimension, error) {
	if _, err := AssertRealString(string(s), false); err != nil {
		return Dimension{}, err
	}
	value, unit, _ := strings.Cut(string(s), " ")
	n, _ := strconv.ParseFloat(value, 64)
	return Dimension{Scalar: n, Unit: Unit(unit)}, nil
}

// Format renders d as a RealString. The number of significant digits grows
// with the magnitude so small and large values both keep sensible digits.
// The output is meant for display and may drop least-significant digits.
func Format(d Dimension) (RealString, error) {
	return FormatPrecision(d, defaultPrecision(d.Scalar))
}

// FormatPrecision renders d with the given number of significant digits.
func FormatPrecision(d Dimension, precision int) (RealString, error) {
	if !d.IsReal() {
		return "", invalid(ErrInvalidUnit, string(d.Unit), "a real unit is required")
	}
	if precision < 1 {
		precision = 1
	}
	if precision > 100 {
		precision = 100
	}
	mantissa := trimZeros(toPrecision(d.Scalar, precision))
	return RealString(mantissa + " " + string(d.Unit)), nil
}

func defaultPrecision(v float64) int {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 3
	}
	p := int(math.Floor(math.Log10(math.Abs(v)))) + defaultPrecisionOffset
	return max(1, min(100, p))
}

const maxRoundedDigits = 15

// toPrecision formats v with p significant digits, switching to exponent
// notation for very large or very small magnitudes.
func toPrecision(v float64, p int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	v = roundHalfUp(v, p)
	exp := strconv.FormatFloat(v, 'e', p-1, 64)
	e, _ := strconv.Atoi(exp[strings.IndexByte(exp, 'e')+1:])
	if e < -6 || e >= p {
		mant, pow, _ := strings.Cut(exp, "e")
		pow = strings.TrimLeft(pow, "+")
		if !strings.HasPrefix(pow, "-") {
			pow = "+" + strings.TrimLeft(pow, "0")
		} else {
			pow = "-" + strings.TrimLeft(pow[1:], "0")
		}
		return trimZeros(mant) + "e" + pow
	}
	return strconv.FormatFloat(v, 'f', max(0, p-1-e), 64)
}

// roundHalfUp rounds v to p significant digits with ties going away from
// zero, so 1.0625 at four digits becomes 1.063 rather than 1.062. Beyond
// maxRoundedDigits a float64 cannot hold an exact tie and v is returned
// unchanged.
func roundHalfUp(v float64, p int) float64 {
	if v == 0 || p > maxRoundedDigits {
		return v
	}
	e := int(math.Floor(math.Log10(math.Abs(v))))
	k := p - 1 - e
	if k > 300 || k < -300 {
		return v
	}
	n := math.Round(scale10(v, k))
	switch {
	case math.Abs(n) >= math.Pow10(p):
		k--
		n = math.Round(scale10(v, k))
	case math.Abs(n) < math.Pow10(p-1):
		k++
		n = math.Round(scale10(v, k))
	}
	return scale10(n, -k)
}

// scale10 returns v * 10^k, dividing for negative k so exact decimals stay
// exact.
func scale10(v float64, k int) float64 {
	if k < 0 {
		return v / math.Pow10(-k)
	}
	return v * math.Pow10(k)
}

// trimZeros strips trailing fractional zeros and a dangling decimal point.
// Integer digits are left alone.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") || strings.ContainsAny(s, "eE") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// formatNumber renders v the way a user would type it: shortest
// round-tripping digits, no exponent for everyday magnitudes.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Coerce makes a best effort to read free-form text such as "12mm",
// " 3 IN " or "4" as a RealString. A trailing alphabetic suffix is treated
// as the unit; anything other than "in" or "mm" is replaced by defaultUnit.
// With ensurePositive a negative value is made positive. ok is false when the
// text is blank or the numeric part does not parse.
func Coerce(text string, ensurePositive bool, defaultUnit Unit) (RealString, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	suffix := unitSuffix.FindString(text)
	value, err := strconv.ParseFloat(strings.TrimSpace(text[:len(text)-len(suffix)]), 64)
	if err != nil || math.IsNaN(value) {
		return "", false
	}
	unit := Unit(strings.ToLower(suffix))
	if !unit.IsReal() {
		unit = defaultUnit
	}
	if ensurePositive && value < 0 {
		value = math.Abs(value)
	}
	return RealString(formatNumber(value) + " " + string(unit)), true
}
