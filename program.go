package means

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/kolkov/means/internal/ast"
	"github.com/kolkov/means/internal/compiler"
	"github.com/kolkov/means/internal/vm"
)

// Program represents a compiled means program ready for execution.
// It is safe for concurrent use; each call to Run creates an
// independent VM.
type Program struct {
	block       *compiler.CodeBlock
	tree        *ast.Program
	source      string // Original source for debugging
	diagnostics []Diagnostic
}

// Diagnostic reports source text the lexer skipped. Diagnostics never
// stop compilation.
type Diagnostic struct {
	ErrorPosition
	Text    string // The skipped character
	Message string // Description
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Result is the outcome of a run.
type Result struct {
	// Value is the top of the stack when execution stopped: the value of
	// the last assignment for a program that completed.
	Value float32

	// HasValue is false when the stack was empty.
	HasValue bool

	// ExitCode is 0 on success and 1 after a VM fault.
	ExitCode int

	// Output holds printed values when Config.Output was nil.
	Output string
}

// Run executes the compiled program.
// If config is nil, default configuration is used. The caller's config is
// not modified.
func (p *Program) Run(config *Config) (*Result, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	var outputBuf *bytes.Buffer
	output := cfg.Output
	if output == nil {
		outputBuf = &bytes.Buffer{}
		output = outputBuf
	}

	var trace io.Writer
	if cfg.Trace {
		trace = cfg.TraceOutput
	}

	machine := vm.New(vm.Config{
		StackSize: cfg.StackSize,
		Output:    output,
		Trace:     trace,
	})
	res := &Result{ExitCode: machine.Run(p.block)}

	if v, ok := machine.Peek(); ok {
		res.Value = v.AsNum()
		res.HasValue = true
	}
	if outputBuf != nil {
		res.Output = outputBuf.String()
	}

	if err := machine.Err(); err != nil {
		return res, convertRuntimeError(err)
	}
	return res, nil
}

// Diagnostics returns the lexical diagnostics produced while compiling.
func (p *Program) Diagnostics() []Diagnostic {
	return p.diagnostics
}

// Disassemble returns a human-readable representation of the compiled bytecode.
// Useful for debugging and understanding program structure.
func (p *Program) Disassemble() string {
	return p.block.Disassemble()
}

// AST returns the parsed program in prefix notation, one statement per line.
func (p *Program) AST() string {
	return ast.Format(p.tree)
}

// Source returns the original means source code.
func (p *Program) Source() string {
	return p.source
}

func convertRuntimeError(err error) *RuntimeError {
	var re *vm.RuntimeError
	if !errors.As(err, &re) {
		return &RuntimeError{Message: err.Error(), err: err}
	}
	return &RuntimeError{
		Fault:   re.Fault.String(),
		PC:      re.PC,
		Message: re.Error(),
		err:     re.Fault,
	}
}
