package means

import (
	"errors"

	"github.com/kolkov/means/internal/compiler"
	"github.com/kolkov/means/internal/lexer"
	"github.com/kolkov/means/internal/parser"
)

// Version is the means version string.
const Version = "0.1.0"

// Run compiles and executes a means program.
// This is a convenience function for one-off execution.
// For repeated execution of the same program, use Compile followed by Program.Run.
//
// On a VM fault the returned Result is still populated (ExitCode 1) along
// with a *RuntimeError.
//
// Example:
//
//	res, err := means.Run("x = 1 + 2; y = x * 4;", nil)
//	// res.Value: 12
func Run(program string, config *Config) (*Result, error) {
	prog, err := Compile(program)
	if err != nil {
		return nil, err
	}
	return prog.Run(config)
}

// Compile tokenizes, parses and compiles a means program.
// The returned Program can be executed multiple times.
//
// Syntax errors are reported as a *ParseError carrying every error the
// parser collected. A reference to an undeclared variable is reported as
// a *CompileError.
func Compile(program string) (*Program, error) {
	return CompileWithOptions(program, nil)
}

// CompileOptions controls optional compilation passes.
type CompileOptions struct {
	// Optimize folds constant subexpressions such as 2 * 3 into a single
	// constant. Results are unchanged, but peak stack use drops, so a
	// program that overflows unoptimized may complete when optimized.
	Optimize bool
}

// CompileWithOptions is like Compile with optional passes enabled by opts.
// A nil opts is equivalent to Compile.
func CompileWithOptions(program string, opts *CompileOptions) (*Program, error) {
	toks, diags := lexer.Tokenize(program)

	astProg, err := parser.ParseTokens(toks)
	if err != nil {
		return nil, convertParseError(err)
	}

	block, err := compiler.Compile(astProg)
	if err != nil {
		var ce *compiler.CompileError
		if errors.As(err, &ce) {
			return nil, &CompileError{
				ErrorPosition: ErrorPosition{Line: ce.Pos.Line, Column: ce.Pos.Column},
				Name:          ce.Name,
				Message:       ce.Error(),
			}
		}
		return nil, &CompileError{Message: err.Error()}
	}

	// Fold constant subexpressions
	if opts != nil && opts.Optimize {
		compiler.OptimizeBlock(block)
	}

	return &Program{
		block:       block,
		tree:        astProg,
		source:      program,
		diagnostics: convertDiagnostics(diags),
	}, nil
}

// MustCompile is like Compile but panics if the program cannot be compiled.
// It simplifies initialization of global program variables.
//
// Example:
//
//	var area = means.MustCompile("w = 3; h = 4; a = w * h;")
func MustCompile(program string) *Program {
	prog, err := Compile(program)
	if err != nil {
		panic(err)
	}
	return prog
}

var parseErrorKinds = map[parser.ErrorKind]ParseErrorKind{
	parser.UnexpectedEndOfInput: UnexpectedEndOfInput,
	parser.UnexpectedToken:      UnexpectedToken,
	parser.InvalidLiteral:       InvalidLiteral,
}

// convertParseError maps the parser's error list to the public type.
func convertParseError(err error) *ParseError {
	var el parser.ErrorList
	if !errors.As(err, &el) || len(el) == 0 {
		return &ParseError{ParseErrorItem: ParseErrorItem{Kind: UnexpectedToken, Message: err.Error()}}
	}

	items := make([]ParseErrorItem, len(el))
	for i, pe := range el {
		items[i] = ParseErrorItem{
			ErrorPosition: ErrorPosition{Line: pe.Pos.Line, Column: pe.Pos.Column},
			Kind:          parseErrorKinds[pe.Kind],
			Message:       pe.Message,
			Want:          pe.Want,
			Got:           pe.Got,
		}
	}
	return &ParseError{ParseErrorItem: items[0], Errors: items}
}

func convertDiagnostics(diags []lexer.Diagnostic) []Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{
			ErrorPosition: ErrorPosition{Line: d.Pos.Line, Column: d.Pos.Column},
			Text:          d.Text,
			Message:       d.Message,
		}
	}
	return out
}
