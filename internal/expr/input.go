package expr

import (
	"math"
	"strings"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

// ValidateDimensionInput turns text typed into a dimension field into the
// value to store. Blank input clears the field and returns "". The text is
// evaluated as an expression first; a unitless result takes defaultUnit.
// Text the evaluator rejects (for example "-2in") falls back to
// dimension.Coerce. With ensurePositive, negative values are made positive
// and zero clears the field. ok is false when the text cannot be read.
func ValidateDimensionInput(text string, ensurePositive bool, defaultUnit dimension.Unit) (dimension.RealString, bool) {
	if strings.TrimSpace(text) == "" {
		return "", true
	}
	var value dimension.RealString
	if d, ok := TryEvaluate(text); ok && !math.IsNaN(d.Scalar) && !math.IsInf(d.Scalar, 0) {
		if !d.IsReal() {
			d = dimension.New(d.Scalar, defaultUnit)
		}
		if ensurePositive {
			d.Scalar = math.Abs(d.Scalar)
		}
		s, err := dimension.Format(d)
		if err != nil {
			return "", false
		}
		value = s
	} else {
		s, ok := dimension.Coerce(text, ensurePositive, defaultUnit)
		if !ok {
			return "", false
		}
		value = s
	}
	if ensurePositive {
		if d, err := dimension.ParseRealString(value); err == nil && d.Scalar == 0 {
			return "", true
		}
	}
	return value, true
}

// ParseDimensionInput is ValidateDimensionInput returning the parsed value.
// ok is false for blank or unreadable input.
func ParseDimensionInput(text string, ensurePositive bool, defaultUnit dimension.Unit) (dimension.Dimension, bool) {
	s, ok := ValidateDimensionInput(text, ensurePositive, defaultUnit)
	if !ok || s == "" {
		return dimension.Dimension{}, false
	}
	d, err := dimension.ParseRealString(s)
	if err != nil {
		return dimension.Dimension{}, false
	}
	return d, true
}
