package expr

import "github.com/piwi3910/ShaperCut/internal/dimension"

// Node is implemented by the three expression node kinds. The set is closed.
type Node interface {
	nodeTag()
}

// Quantity is a number literal with an optional unit suffix.
type Quantity struct {
	Value float64
	Unit  dimension.Unit
}

// BinaryOperation applies Op (Plus, Minus, Star or Slash) to Left and Right.
// Unit is set only for mixed fractions such as "1 1/8 in".
type BinaryOperation struct {
	Op    TokenType
	Left  Node
	Right Node
	Unit  dimension.Unit
}

// UnitExpression reinterprets the result of Expr in Unit, converting when
// Expr already has a unit and assigning it otherwise.
type UnitExpression struct {
	Unit dimension.Unit
	Expr Node
}

func (*Quantity) nodeTag()        {}
func (*BinaryOperation) nodeTag() {}
func (*UnitExpression) nodeTag()  {}

// annotatedUnit is the unit written directly on n, if any.
func annotatedUnit(n Node) dimension.Unit {
	switch n := n.(type) {
	case *Quantity:
		return n.Unit
	case *BinaryOperation:
		return n.Unit
	case *UnitExpression:
		return n.Unit
	}
	return dimension.None
}
