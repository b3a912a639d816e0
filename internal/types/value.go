// Package types defines runtime value types for the means VM.
package types

import (
	"math"
	"strconv"
)

// Kind represents the type of a runtime value.
// The VM has a single numeric kind; Kind exists so traces and errors can
// name it.
type Kind uint8

const (
	KindNum Kind = iota // 32-bit float number
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNum:
		return "num"
	default:
		return "unknown"
	}
}

// Value represents a runtime value. Values are passed by value.
type Value struct {
	num float32
}

// Num creates a numeric value.
func Num(n float32) Value {
	return Value{num: n}
}

// Kind returns the value's type.
func (v Value) Kind() Kind {
	return KindNum
}

// AsNum returns the numeric value.
func (v Value) AsNum() float32 {
	return v.num
}

// IsFinite reports whether the value is neither infinite nor NaN.
func (v Value) IsFinite() bool {
	f := float64(v.num)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// String formats the number with the shortest representation that
// round-trips through float32.
func (v Value) String() string {
	return strconv.FormatFloat(float64(v.num), 'g', -1, 32)
}

// -----------------------------------------------------------------------------
// Arithmetic
// Division and modulo by zero follow IEEE 754 and yield Inf or NaN.
// -----------------------------------------------------------------------------

// Add returns a + b.
func Add(a, b Value) Value { return Num(a.num + b.num) }

// Sub returns a - b.
func Sub(a, b Value) Value { return Num(a.num - b.num) }

// Mul returns a * b.
func Mul(a, b Value) Value { return Num(a.num * b.num) }

// Div returns a / b.
func Div(a, b Value) Value { return Num(a.num / b.num) }

// Mod returns the remainder of a / b truncated toward zero; the result
// has the sign of a.
func Mod(a, b Value) Value {
	return Num(float32(math.Mod(float64(a.num), float64(b.num))))
}

// Neg returns -a.
func Neg(a Value) Value { return Num(-a.num) }
