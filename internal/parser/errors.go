// Package parser provides a recursive descent parser for means programs.
package parser

import (
	"fmt"

	"github.com/kolkov/means/internal/token"
)

// ErrorKind classifies a ParseError.
type ErrorKind uint8

const (
	// UnexpectedEndOfInput means the tokens ran out mid-statement.
	UnexpectedEndOfInput ErrorKind = iota
	// UnexpectedToken means a token did not fit the grammar.
	UnexpectedToken
	// InvalidLiteral means a numeric literal is out of range.
	InvalidLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case UnexpectedToken:
		return "unexpected token"
	case InvalidLiteral:
		return "invalid literal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// ParseError represents a syntax error encountered during parsing.
type ParseError struct {
	Kind    ErrorKind      // Error classification
	Pos     token.Position // Position where the error occurred
	Message string         // Human-readable error message
	Got     string         // Token that was found (optional)
	Want    string         // Token or token set that was expected (optional)
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// ErrorList is a list of parse errors.
type ErrorList []*ParseError

// Error returns a combined error message for all errors.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}

// Err returns an error if there are any errors, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// expectedError creates a ParseError for an unexpected token.
func expectedError(tok token.Token, want string) *ParseError {
	return &ParseError{
		Kind:    UnexpectedToken,
		Pos:     tok.Pos,
		Message: fmt.Sprintf("expected %s, got %s", want, describe(tok)),
		Want:    want,
		Got:     tok.Text,
	}
}

// endError creates a ParseError for input that ended too early.
func endError(pos token.Position, want string) *ParseError {
	return &ParseError{
		Kind:    UnexpectedEndOfInput,
		Pos:     pos,
		Message: fmt.Sprintf("expected %s, got end of input", want),
		Want:    want,
	}
}

// describe returns a description of a token for error messages.
func describe(tok token.Token) string {
	if tok.Kind.IsLiteral() || tok.Kind == token.Operator {
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	}
	return fmt.Sprintf("%q", tok.Text)
}
