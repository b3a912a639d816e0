package means

import (
	"fmt"

	"github.com/kolkov/means/internal/vm"
)

// ErrorPosition is a 1-based source location.
type ErrorPosition struct {
	Line   int
	Column int
}

// ParseErrorKind classifies a syntax error.
type ParseErrorKind uint8

const (
	UnexpectedEndOfInput ParseErrorKind = iota // Input ended mid-statement
	UnexpectedToken                            // A token did not fit the grammar
	InvalidLiteral                             // A numeric literal is out of range
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case UnexpectedToken:
		return "unexpected token"
	case InvalidLiteral:
		return "invalid literal"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", k)
	}
}

// ParseErrorItem is a single syntax error.
type ParseErrorItem struct {
	ErrorPosition
	Kind    ParseErrorKind
	Message string // Error description
	Want    string // What the parser expected (optional)
	Got     string // Text of the offending token (empty at end of input)
}

func (e ParseErrorItem) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ParseError represents syntax errors in means source code. The embedded
// item describes the first error; Errors holds all of them in source order.
type ParseError struct {
	ParseErrorItem
	Errors []ParseErrorItem // Every error the parser collected
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	if n := len(e.Errors); n > 1 {
		msg += fmt.Sprintf(" (and %d more errors)", n-1)
	}
	return msg
}

// CompileError represents a reference to an undeclared variable.
type CompileError struct {
	ErrorPosition
	Name    string // Undeclared variable name
	Message string // Error description
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: %s", e.Message)
}

// Faults that halt execution. A RuntimeError unwraps to one of these, so
// callers can test for them with errors.Is.
var (
	ErrStackOverflow  error = vm.StackOver
	ErrStackUnderflow error = vm.StackUnder
	ErrNoConstant     error = vm.NoConstant
	ErrInvalidLocal   error = vm.InvalidLocal
	ErrInvalidOpcode  error = vm.InvalidOpcode
)

// RuntimeError represents a VM fault during execution.
type RuntimeError struct {
	Fault   string // Fault name, e.g. "StackOver"
	PC      int    // Offset of the faulting instruction
	Message string // Error description
	err     error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// Unwrap returns the underlying fault.
func (e *RuntimeError) Unwrap() error {
	return e.err
}
