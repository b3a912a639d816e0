// Package ast defines the abstract syntax tree for means programs.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── BinaryExpr, UnaryExpr - operations
//	│   └── Literal - float, integer or variable reference (Value)
//	├── Assignment - the only statement
//	└── Program - ordered list of assignments
//
// The tree is built bottom-up by the parser and is read-only input to the
// compiler.
package ast

import "github.com/kolkov/means/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// BaseExpr provides the position for expression nodes.
type BaseExpr struct {
	StartPos token.Position
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) exprNode()           {}

// MakeBaseExpr creates a BaseExpr starting at pos.
func MakeBaseExpr(pos token.Position) BaseExpr {
	return BaseExpr{StartPos: pos}
}
