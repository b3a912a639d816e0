package token

import (
	"fmt"
	"unicode/utf8"
)

// Position represents a position in source code.
type Position struct {
	// Line number (1-indexed).
	Line int
	// Column is the rune offset on the line (1-indexed).
	Column int
	// Offset is the byte offset from the start of source (0-indexed).
	Offset int
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// NoPos is a zero Position used when position is unknown.
var NoPos = Position{}

// Tracker advances line and column counters as source text is consumed.
type Tracker struct {
	pos Position
}

// NewTracker returns a tracker positioned at line 1, column 1.
func NewTracker() *Tracker {
	return &Tracker{pos: Position{Line: 1, Column: 1}}
}

// Pos returns the position of the next unconsumed character.
func (t *Tracker) Pos() Position {
	return t.pos
}

// Consume advances the tracker over text.
// A newline moves to column 1 of the next line.
func (t *Tracker) Consume(text string) {
	for _, r := range text {
		if r == '\n' {
			t.pos.Line++
			t.pos.Column = 1
		} else {
			t.pos.Column++
		}
	}
	t.pos.Offset += len(text)
}

// ConsumeRune advances the tracker over the first rune of text and
// returns its byte width. It returns 0 when text is empty.
func (t *Tracker) ConsumeRune(text string) int {
	if text == "" {
		return 0
	}
	_, size := utf8.DecodeRuneInString(text)
	t.Consume(text[:size])
	return size
}
