// Package expr evaluates dimension expressions typed by a user, such as
// "1 1/8 in", "25mm" or "(2in + 3)mm / 4".
package expr

import (
	"fmt"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

// Eval computes the value of n.
func Eval(n Node) (dimension.Dimension, error) {
	switch n := n.(type) {
	case *Quantity:
		return dimension.New(n.Value, n.Unit), nil
	case *UnitExpression:
		res, err := Eval(n.Expr)
		if err != nil {
			return dimension.Dimension{}, err
		}
		return annotate(res, n.Unit), nil
	case *BinaryOperation:
		res, err := evalBinary(n)
		if err != nil {
			return dimension.Dimension{}, err
		}
		if n.Unit != dimension.None {
			res = annotate(res, n.Unit)
		}
		return res, nil
	}
	return dimension.Dimension{}, fmt.Errorf("unknown node %T", n)
}

func evalBinary(n *BinaryOperation) (dimension.Dimension, error) {
	left, err := Eval(n.Left)
	if err != nil {
		return dimension.Dimension{}, err
	}
	right, err := Eval(n.Right)
	if err != nil {
		return dimension.Dimension{}, err
	}
	switch n.Op {
	case Plus:
		return dimension.Add(adopt(left, right), adopt(right, left))
	case Minus:
		right = dimension.Neg(right)
		return dimension.Add(adopt(left, right), adopt(right, left))
	case Star:
		return dimension.Mul(left, right)
	case Slash:
		// Dividing inches by millimeters is allowed and yields a scalar.
		return dimension.Div(left, right)
	}
	return dimension.Dimension{}, fmt.Errorf("unknown operator %s", n.Op)
}

// adopt gives a unitless d the unit of other. A scalar next to a dimension
// is unambiguous.
func adopt(d, other dimension.Dimension) dimension.Dimension {
	if d.HasUnit() {
		return d
	}
	return dimension.New(d.Scalar, other.Unit)
}

func annotate(d dimension.Dimension, u dimension.Unit) dimension.Dimension {
	if d.HasUnit() {
		return dimension.Convert(d, u)
	}
	return dimension.New(d.Scalar, u)
}

// Evaluate parses and evaluates input.
func Evaluate(input string) (dimension.Dimension, error) {
	n, err := Parse(input)
	if err != nil {
		return dimension.Dimension{}, err
	}
	return Eval(n)
}

// TryEvaluate is Evaluate for interactive input: any parse or arithmetic
// failure is reported as ok=false.
func TryEvaluate(input string) (dimension.Dimension, bool) {
	d, err := Evaluate(input)
	if err != nil {
		return dimension.Dimension{}, false
	}
	return d, true
}
