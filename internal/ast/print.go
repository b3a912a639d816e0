package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer writes nodes in a compact prefix notation suitable for debugging
// and for pinning tree shapes in tests:
//
//	x = (+ 1 (* 2 3));
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a representation of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

// Format returns the printed form of node.
func Format(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(node)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) printNode(node Node) {
	switch n := node.(type) {
	case nil:
		p.printf("<nil>")
	case *Program:
		for _, stmt := range n.Statements {
			p.printAssignment(stmt)
			p.printf("\n")
		}
	case *Assignment:
		p.printAssignment(n)
	case Expr:
		p.printExpr(n)
	default:
		p.printf("<%T>", node)
	}
}

func (p *Printer) printAssignment(a *Assignment) {
	p.printf("%s = ", a.Name)
	p.printExpr(a.Expr)
	p.printf(";")
}

func (p *Printer) printExpr(expr Expr) {
	switch e := expr.(type) {
	case nil:
		p.printf("<nil>")
	case *BinaryExpr:
		p.printf("(%s ", e.Op)
		p.printExpr(e.Left)
		p.printf(" ")
		p.printExpr(e.Right)
		p.printf(")")
	case *UnaryExpr:
		p.printf("(%s ", e.Op)
		p.printExpr(e.Expr)
		p.printf(")")
	case *Literal:
		p.printf("%s", FormatValue(e.Value))
	default:
		p.printf("<%T>", expr)
	}
}

// FormatValue renders a literal value. Floats always carry a decimal point
// so they stay distinguishable from integers.
func FormatValue(v Value) string {
	switch v := v.(type) {
	case FloatValue:
		s := strconv.FormatFloat(float64(v), 'f', -1, 32)
		if !strings.ContainsAny(s, ".IN") {
			s += ".0"
		}
		return s
	case IntValue:
		return strconv.FormatInt(int64(v), 10)
	case VarRef:
		return string(v)
	default:
		return fmt.Sprintf("<%T>", v)
	}
}
