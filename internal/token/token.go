// Package token defines lexical tokens for the means language.
package token

import "fmt"

// Kind represents a lexical token type.
type Kind uint8

const (
	// Special tokens
	EndOfInput Kind = iota // end of input
	Whitespace             // whitespace

	// Delimiters
	OpenParen    // (
	CloseParen   // )
	OpenBrace    // {
	CloseBrace   // }
	OpenBracket  // [
	CloseBracket // ]
	Semicolon    // ;
	Comma        // ,
	Assign       // =

	// Operator is any of + - * / %. The parser decides
	// whether it is used as a binary or unary operator.
	Operator

	// Literals
	FloatLiteral   // float
	IntegerLiteral // integer
	Identifier     // identifier
)

var kindNames = [...]string{
	EndOfInput:     "end of input",
	Whitespace:     "whitespace",
	OpenParen:      "(",
	CloseParen:     ")",
	OpenBrace:      "{",
	CloseBrace:     "}",
	OpenBracket:    "[",
	CloseBracket:   "]",
	Semicolon:      ";",
	Comma:          ",",
	Assign:         "=",
	Operator:       "operator",
	FloatLiteral:   "float",
	IntegerLiteral: "integer",
	Identifier:     "identifier",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("token(%d)", k)
}

// IsLiteral returns true if the kind is a numeric literal or identifier.
func (k Kind) IsLiteral() bool {
	return k == FloatLiteral || k == IntegerLiteral || k == Identifier
}

// Token is a classified, positioned fragment of source text.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String formats the token as "(kind at line:column :: text)".
func (t Token) String() string {
	return fmt.Sprintf("(%s at %s :: %s)", t.Kind, t.Pos, t.Text)
}
