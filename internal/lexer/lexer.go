// Package lexer provides means source code tokenization.
//
// The lexer holds an ordered list of matchers. At each offset the matchers
// are tried in order and the first one that matches wins; order encodes
// priority (whitespace, then symbols, then numbers, then identifiers).
// Input that no matcher accepts is reported as a Diagnostic and skipped one
// character at a time, so tokenizing never fails.
package lexer

import (
	"fmt"
	"strings"

	"github.com/kolkov/means/internal/runtime"
	"github.com/kolkov/means/internal/token"
)

// Diagnostic reports input that no matcher accepted.
type Diagnostic struct {
	Pos     token.Position // Position of the skipped character
	Text    string         // The skipped character
	Message string         // Human-readable description
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// matcher pairs an anchored pattern with a token constructor.
type matcher struct {
	re   *runtime.Regex
	kind func(text string) token.Kind
	skip bool // matched text is consumed without emitting a token
}

// Lexer tokenizes means source code.
type Lexer struct {
	matchers []matcher
}

// New creates a Lexer with the default matcher set.
func New() *Lexer {
	return &Lexer{
		matchers: []matcher{
			whitespace(),
			constant("(", token.OpenParen),
			constant(")", token.CloseParen),
			constant("{", token.OpenBrace),
			constant("}", token.CloseBrace),
			constant("[", token.OpenBracket),
			constant("]", token.CloseBracket),
			constant(";", token.Semicolon),
			constant(",", token.Comma),
			constant("=", token.Assign),
			operators("+-*/%"),
			number(),
			identifier(),
		},
	}
}

var defaultLexer = New()

// Tokenize splits src into tokens using the default matcher set.
func Tokenize(src string) ([]token.Token, []Diagnostic) {
	return defaultLexer.Tokenize(src)
}

// Tokenize splits src into tokens. Whitespace is dropped. Unmatched
// characters are reported as diagnostics and skipped.
func (l *Lexer) Tokenize(src string) ([]token.Token, []Diagnostic) {
	var (
		tokens []token.Token
		diags  []Diagnostic
	)
	tr := token.NewTracker()
	rest := src

	for len(rest) > 0 {
		pos := tr.Pos()
		n, m := l.match(rest)
		if n == 0 {
			width := tr.ConsumeRune(rest)
			diags = append(diags, Diagnostic{
				Pos:     pos,
				Text:    rest[:width],
				Message: fmt.Sprintf("unexpected character %q", rest[:width]),
			})
			rest = rest[width:]
			continue
		}

		text := rest[:n]
		if !m.skip {
			tokens = append(tokens, token.Token{Kind: m.kind(text), Text: text, Pos: pos})
		}
		tr.Consume(text)
		rest = rest[n:]
	}

	return tokens, diags
}

// match returns the length of the first matcher's match and the matcher.
func (l *Lexer) match(s string) (int, *matcher) {
	for i := range l.matchers {
		m := &l.matchers[i]
		if n := m.re.MatchPrefix(s); n > 0 {
			return n, m
		}
	}
	return 0, nil
}

// -----------------------------------------------------------------------------
// Matcher constructors
// -----------------------------------------------------------------------------

// pattern matches expr, whose matches start with a byte in first and
// consist of bytes in span.
func pattern(expr string, first, span runtime.ByteSet, kind token.Kind) matcher {
	return matcher{
		re:   runtime.MustCompileBounded(expr, runtime.Bounds{First: first, Span: span}),
		kind: func(string) token.Kind { return kind },
	}
}

func constant(symbol string, kind token.Kind) matcher {
	chars := runtime.NewByteSet(symbol)
	return matcher{
		re: runtime.MustCompileBounded(quoteMeta(symbol), runtime.Bounds{
			First:  runtime.NewByteSet(symbol[:1]),
			Span:   chars,
			MaxLen: len(symbol),
		}),
		kind: func(string) token.Kind { return kind },
	}
}

// operators matches exactly one of the given single-character operators.
func operators(symbols string) matcher {
	chars := runtime.NewByteSet(symbols)
	return matcher{
		re:   runtime.MustCompileBounded("["+quoteMeta(symbols)+"]", runtime.Bounds{First: chars, Span: chars, MaxLen: 1}),
		kind: func(string) token.Kind { return token.Operator },
	}
}

func whitespace() matcher {
	m := pattern(`[[:space:]]+`, runtime.SpaceBytes, runtime.SpaceBytes, token.Whitespace)
	m.skip = true
	return m
}

// number matches integer and decimal literals; text containing a dot is a float.
func number() matcher {
	return matcher{
		re: runtime.MustCompileBounded(`[0-9]+(\.[0-9]+)?`, runtime.Bounds{
			First: runtime.DigitBytes,
			Span:  runtime.DigitBytes.Union(runtime.NewByteSet(".")),
		}),
		kind: func(text string) token.Kind {
			if strings.Contains(text, ".") {
				return token.FloatLiteral
			}
			return token.IntegerLiteral
		},
	}
}

func identifier() matcher {
	return pattern(`[[:alpha:]][[:alnum:]]*`, runtime.AlphaBytes, runtime.AlnumBytes, token.Identifier)
}

// quoteMeta escapes every non-alphanumeric character so the result is
// valid both inside and outside a character class.
func quoteMeta(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
