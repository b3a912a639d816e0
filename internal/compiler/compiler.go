package compiler

import (
	"fmt"

	"github.com/kolkov/means/internal/ast"
	"github.com/kolkov/means/internal/token"
)

// CompileError represents a compilation error.
// The only cause is a reference to an undeclared variable.
type CompileError struct {
	Name string         // The missing variable
	Pos  token.Position // Where it was referenced
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: undefined variable %q", e.Pos, e.Name)
	}
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// Compile transforms a program into a code block.
// Compilation stops at the first error.
func Compile(prog *ast.Program) (*CodeBlock, error) {
	c := New()
	if err := c.CompileProgram(prog); err != nil {
		return nil, err
	}
	return c.Block(), nil
}

// local is a named stack slot declared at a lexical depth.
type local struct {
	name  string
	depth int
}

// Compiler holds the state for compiling one program.
// A variable's stack slot is its index in the locals table: assignment
// leaves the value on the stack and the slot is where it stays.
type Compiler struct {
	locals []local
	depth  int
	block  *CodeBlock
}

// New creates a compiler with an empty block at depth 0.
func New() *Compiler {
	return &Compiler{block: NewCodeBlock()}
}

// Block returns the code emitted so far.
func (c *Compiler) Block() *CodeBlock {
	return c.block
}

// Depth returns the current lexical depth.
func (c *Compiler) Depth() int {
	return c.depth
}

// NumLocals returns the number of visible locals.
func (c *Compiler) NumLocals() int {
	return len(c.locals)
}

// -----------------------------------------------------------------------------
// Scopes
// -----------------------------------------------------------------------------

// PushScope opens a nested lexical scope.
func (c *Compiler) PushScope() {
	c.depth++
}

// PopScope closes the innermost scope. Locals declared inside it are
// removed newest first and one Pop is emitted for each, matching their
// order on the stack. It returns the number of locals removed.
func (c *Compiler) PopScope() int {
	c.depth--
	n := 0
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.depth {
		c.locals = c.locals[:len(c.locals)-1]
		c.block.Emit(Pop)
		n++
	}
	return n
}

// DeclareLocal binds name to the next stack slot at the current depth.
// Redeclaring a name shadows the earlier binding.
func (c *Compiler) DeclareLocal(name string) int {
	c.locals = append(c.locals, local{name: name, depth: c.depth})
	return len(c.locals) - 1
}

// FindLocal returns the stack slot of the most recent declaration of name.
func (c *Compiler) FindLocal(name string) (int, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			return i, true
		}
	}
	return 0, false
}

// -----------------------------------------------------------------------------
// Code generation
// -----------------------------------------------------------------------------

// CompileProgram appends the code for every statement of prog.
func (c *Compiler) CompileProgram(prog *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*CompileError); ok {
				err = ce
			} else {
				panic(r) // Re-panic for non-compile errors
			}
		}
	}()

	for _, stmt := range prog.Statements {
		c.compileAssignment(stmt)
	}
	return nil
}

// compileAssignment leaves the value on the stack and names its slot.
func (c *Compiler) compileAssignment(a *ast.Assignment) {
	c.compileExpr(a.Expr)
	c.DeclareLocal(a.Name)
}

func (c *Compiler) compileExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		c.compileExpr(e.Left)
		c.compileExpr(e.Right)
		c.block.Emit(binaryOpcode(e.Op))

	case *ast.UnaryExpr:
		c.compileExpr(e.Expr)
		c.block.Emit(unaryOpcode(e.Op))

	case *ast.Literal:
		c.compileValue(e.Value, e.Pos())

	default:
		panic(fmt.Sprintf("unexpected expression type: %T", expr))
	}
}

func (c *Compiler) compileValue(v ast.Value, pos token.Position) {
	switch v := v.(type) {
	case ast.FloatValue:
		c.block.Emit(Constant, c.block.AddConstant(float32(v)))

	case ast.IntValue:
		c.block.Emit(Constant, c.block.AddConstant(float32(v)))

	case ast.VarRef:
		slot, ok := c.FindLocal(string(v))
		if !ok {
			panic(&CompileError{Name: string(v), Pos: pos})
		}
		c.block.Emit(Local, slot)

	default:
		panic(fmt.Sprintf("unexpected value type: %T", v))
	}
}

func binaryOpcode(op ast.BinaryOp) Opcode {
	switch op {
	case ast.Add:
		return Add
	case ast.Sub:
		return Sub
	case ast.Mul:
		return Mul
	case ast.Div:
		return Div
	case ast.Mod:
		return Mod
	default:
		panic(fmt.Sprintf("unexpected binary operator: %v", op))
	}
}

func unaryOpcode(op ast.UnaryOp) Opcode {
	switch op {
	case ast.Negate:
		return Negate
	default:
		panic(fmt.Sprintf("unexpected unary operator: %v", op))
	}
}
