package ast

import "fmt"

// -----------------------------------------------------------------------------
// Operators
// -----------------------------------------------------------------------------

// BinaryOp is a binary arithmetic operator.
type BinaryOp uint8

const (
	Add BinaryOp = iota // +
	Sub                 // -
	Mul                 // *
	Div                 // /
	Mod                 // %
)

// LowestPrecedence is the binding power below every binary operator.
const LowestPrecedence = 0

// Precedence returns the binding power of the operator.
// Higher binds tighter.
func (op BinaryOp) Precedence() int {
	switch op {
	case Add, Sub:
		return 1
	case Mul, Div, Mod:
		return 2
	default:
		return LowestPrecedence
	}
}

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	default:
		return fmt.Sprintf("BinaryOp(%d)", op)
	}
}

// ParseBinaryOp maps operator text to a BinaryOp.
func ParseBinaryOp(text string) (BinaryOp, bool) {
	switch text {
	case "+":
		return Add, true
	case "-":
		return Sub, true
	case "*":
		return Mul, true
	case "/":
		return Div, true
	case "%":
		return Mod, true
	}
	return 0, false
}

// UnaryOp is a prefix operator.
type UnaryOp uint8

const (
	Negate UnaryOp = iota // -
)

func (op UnaryOp) String() string {
	if op == Negate {
		return "-"
	}
	return fmt.Sprintf("UnaryOp(%d)", op)
}

// ParseUnaryOp maps operator text to a UnaryOp.
func ParseUnaryOp(text string) (UnaryOp, bool) {
	if text == "-" {
		return Negate, true
	}
	return 0, false
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// BinaryExpr represents a binary operation.
// Example: a + b
type BinaryExpr struct {
	BaseExpr
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// UnaryExpr represents a prefix operation.
// Example: -x
type UnaryExpr struct {
	BaseExpr
	Op   UnaryOp
	Expr Expr
}

// Literal represents a value in expression position.
// Examples: 3, 2.5, x
type Literal struct {
	BaseExpr
	Value Value
}

// -----------------------------------------------------------------------------
// Values
// -----------------------------------------------------------------------------

// Value is a float literal, an integer literal or a variable reference.
type Value interface {
	value() // marker method to prevent external implementations
}

// FloatValue is a literal written with a decimal point.
type FloatValue float32

// IntValue is a literal written without a decimal point.
type IntValue int32

// VarRef is a reference to a previously assigned variable.
type VarRef string

func (FloatValue) value() {}
func (IntValue) value()   {}
func (VarRef) value()     {}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*Literal)(nil)

	_ Value = FloatValue(0)
	_ Value = IntValue(0)
	_ Value = VarRef("")
)
