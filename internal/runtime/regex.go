// Package runtime provides regex support for the means lexer.
package runtime

import (
	"fmt"

	"github.com/coregx/coregex"
)

// Regex wraps coregex for prefix matching against the remaining input.
// The pattern is anchored at the start of the input on compilation.
type Regex struct {
	re     *coregex.Regexp
	bounds *Bounds
}

// Bounds describes the shape of every possible match of a pattern.
// MatchPrefix uses it to reject on the first byte and to hand coregex only
// the longest candidate run, so a miss costs O(1) instead of a scan of the
// whole remaining input.
type Bounds struct {
	First  ByteSet // Bytes a match can start with
	Span   ByteSet // Bytes a match can consist of
	MaxLen int     // Longest possible match (0 = unbounded)
}

// Compile creates a new Regex from pattern.
// The compiled expression only matches at the start of the input.
func Compile(pattern string) (*Regex, error) {
	re, err := coregex.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	return &Regex{re: re}, nil
}

// CompileBounded is like Compile with matches restricted to b. Every match
// of pattern must satisfy b, or matches are lost.
func CompileBounded(pattern string, b Bounds) (*Regex, error) {
	r, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	r.bounds = &b
	return r, nil
}

// MustCompile creates a Regex, panicking on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// MustCompileBounded creates a bounded Regex, panicking on error.
func MustCompileBounded(pattern string, b Bounds) *Regex {
	re, err := CompileBounded(pattern, b)
	if err != nil {
		panic(err)
	}
	return re
}

// MatchPrefix returns the byte length of the match at the start of s,
// or 0 if the pattern does not match there. Empty matches report 0.
func (r *Regex) MatchPrefix(s string) int {
	if b := r.bounds; b != nil {
		if s == "" || !b.First[s[0]] {
			return 0
		}
		s = s[:b.Span.span(s, b.MaxLen)]
	}
	loc := r.re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return 0
	}
	return loc[1]
}
