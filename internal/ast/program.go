package ast

import "github.com/kolkov/means/internal/token"

// Program represents a complete means program: an ordered list of
// assignment statements.
type Program struct {
	Statements []*Assignment
}

// Pos returns the position of the first statement, or NoPos if empty.
func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.NoPos
	}
	return p.Statements[0].Pos()
}

// Assignment binds the value of Expr to Name.
// Example: x = 1 + 2;
type Assignment struct {
	Name    string
	Expr    Expr
	NamePos token.Position
}

// Pos returns the position of the assigned name.
func (a *Assignment) Pos() token.Position { return a.NamePos }

var (
	_ Node = (*Program)(nil)
	_ Node = (*Assignment)(nil)
)
