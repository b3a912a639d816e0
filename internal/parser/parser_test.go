package parser_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/kolkov/means/internal/ast"
	"github.com/kolkov/means/internal/parser"
	"github.com/kolkov/means/internal/token"
)

// parseErrors parses src and returns the collected errors.
func parseErrors(t *testing.T, src string) parser.ErrorList {
	t.Helper()
	prog, err := parser.Parse(src)
	assert.Error(t, err)
	assert.Zero(t, prog)
	var list parser.ErrorList
	assert.True(t, errors.As(err, &list), "error %T is not an ErrorList", err)
	return list
}

func TestParseEmpty(t *testing.T) {
	prog, err := parser.Parse("")
	assert.NoError(t, err)
	assert.NotZero(t, prog)
	assert.Equal(t, 0, len(prog.Statements))
}

func TestParseSingleAssignment(t *testing.T) {
	prog, err := parser.Parse("x = 3;")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(prog.Statements))

	stmt := prog.Statements[0]
	assert.Equal(t, "x", stmt.Name)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, stmt.NamePos)

	lit, ok := stmt.Expr.(*ast.Literal)
	assert.True(t, ok, "expr is %T, want *ast.Literal", stmt.Expr)
	assert.Equal(t, ast.Value(ast.IntValue(3)), lit.Value)
	assert.Equal(t, 5, lit.Pos().Column)
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Value
	}{
		{"x = 3;", ast.IntValue(3)},
		{"x = 3.0;", ast.FloatValue(3)},
		{"x = 0.25;", ast.FloatValue(0.25)},
		{"x = y;", ast.VarRef("y")},
		{"x = 2147483647;", ast.IntValue(2147483647)},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := parser.Parse(tt.src)
			assert.NoError(t, err)
			lit := prog.Statements[0].Expr.(*ast.Literal)
			assert.Equal(t, tt.want, lit.Value)
		})
	}
}

// Binary operators use precedence climbing: * / % bind tighter than + -,
// everything is left-associative, and unary minus binds tightest.
func TestParseExpressionShape(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"1 + 2 % 3 - 4", "(- (+ 1 (% 2 3)) 4)"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"((x))", "x"},
		{"-2 + 3", "(+ (- 2) 3)"},
		{"--x", "(- (- x))"},
		{"2 * -x", "(* 2 (- x))"},
		{"-(a + b) * c", "(* (- (+ a b)) c)"},
		{"1.5 / y", "(/ 1.5 y)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.src)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ast.Format(expr))
		})
	}
}

func TestParseBinaryTree(t *testing.T) {
	prog, err := parser.Parse("x = 1 + 2 * 3;")
	assert.NoError(t, err)

	add, ok := prog.Statements[0].Expr.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.Add, add.Op)
	assert.Equal(t, ast.Value(ast.IntValue(1)), add.Left.(*ast.Literal).Value)

	mul, ok := add.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.Mul, mul.Op)
	assert.Equal(t, ast.Value(ast.IntValue(2)), mul.Left.(*ast.Literal).Value)
	assert.Equal(t, ast.Value(ast.IntValue(3)), mul.Right.(*ast.Literal).Value)
}

func TestParseProgram(t *testing.T) {
	src := "a = 1;\nb = a * 2;\nc = -(a + b) % 3.5;\n"
	prog, err := parser.Parse(src)
	assert.NoError(t, err)
	assert.Equal(t, "a = 1;\nb = (* a 2);\nc = (% (- (+ a b)) 3.5);\n", ast.Format(prog))
	assert.Equal(t, 2, prog.Statements[1].NamePos.Line)
}

func TestParseMissingValueRecovers(t *testing.T) {
	prog, err := parser.Parse("x = ;")
	assert.Error(t, err)
	assert.Zero(t, prog)

	errs := parseErrors(t, "x = ; y = 2;")
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, parser.UnexpectedToken, errs[0].Kind)
	assert.Equal(t, "number, identifier or (", errs[0].Want)
	assert.Equal(t, ";", errs[0].Got)
	assert.Equal(t, token.Position{Line: 1, Column: 5, Offset: 4}, errs[0].Pos)
}

// Recovery skips to the next semicolon and parses later statements, so
// independent mistakes are all reported.
func TestParseCollectsMultipleErrors(t *testing.T) {
	errs := parseErrors(t, "a = 1;\nb = ;\nc 2;\nd = 4;\ne = (1;\n")
	assert.Equal(t, 3, len(errs))

	assert.Equal(t, 2, errs[0].Pos.Line)
	assert.Equal(t, parser.UnexpectedToken, errs[0].Kind)

	assert.Equal(t, 3, errs[1].Pos.Line)
	assert.Equal(t, "=", errs[1].Want)
	assert.Equal(t, "2", errs[1].Got)

	assert.Equal(t, 5, errs[2].Pos.Line)
	assert.Equal(t, ")", errs[2].Want)

	assert.Contains(t, errs.Error(), "and 2 more errors")
}

func TestParseRecoveryKeepsFollowingStatements(t *testing.T) {
	// The valid statements around a bad one are still parsed; the bad
	// statement is the only reported error.
	errs := parseErrors(t, "x = 1 2; y = 3; z = 4;")
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, ";", errs[0].Want)
	assert.Equal(t, "2", errs[0].Got)
}

func TestParseUnexpectedEndOfInput(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x", "="},
		{"x =", "number, identifier or ("},
		{"x = 1", ";"},
		{"x = (1", ")"},
		{"x = 1 +", "number, identifier or ("},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			errs := parseErrors(t, tt.src)
			assert.Equal(t, 1, len(errs))
			assert.Equal(t, parser.UnexpectedEndOfInput, errs[0].Kind)
			assert.Equal(t, tt.want, errs[0].Want)
		})
	}
}

func TestParseEndOfInputPosition(t *testing.T) {
	errs := parseErrors(t, "x = 12")
	assert.Equal(t, token.Position{Line: 1, Column: 7, Offset: 6}, errs[0].Pos)
	assert.Equal(t, "1:7: expected ;, got end of input", errs[0].Error())
}

func TestParseErrorDescribesToken(t *testing.T) {
	errs := parseErrors(t, "x = 1 2;")
	assert.Equal(t, `1:7: expected ;, got integer "2"`, errs[0].Error())

	errs = parseErrors(t, "x = (1;")
	assert.Equal(t, `1:7: expected ), got ";"`, errs[0].Error())
}

func TestParseInvalidPrefixOperator(t *testing.T) {
	errs := parseErrors(t, "x = * 3; y = +1;")
	assert.Equal(t, 2, len(errs))
	for _, e := range errs {
		assert.Equal(t, parser.UnexpectedToken, e.Kind)
		assert.Equal(t, "-", e.Want)
	}
	assert.Equal(t, "*", errs[0].Got)
	assert.Equal(t, "+", errs[1].Got)
}

func TestParseStatementMustStartWithIdentifier(t *testing.T) {
	errs := parseErrors(t, "3 = x; y = 1;")
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, "identifier", errs[0].Want)
	assert.Equal(t, "3", errs[0].Got)
}

func TestParseInvalidLiteral(t *testing.T) {
	errs := parseErrors(t, "x = 99999999999; y = 1;")
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, parser.InvalidLiteral, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "out of range")
}

func TestParseTokensRejectsUnknownOperator(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Identifier, Text: "x", Pos: token.Position{Line: 1, Column: 1}},
		{Kind: token.Assign, Text: "=", Pos: token.Position{Line: 1, Column: 3}},
		{Kind: token.IntegerLiteral, Text: "1", Pos: token.Position{Line: 1, Column: 5}},
		{Kind: token.Operator, Text: "^", Pos: token.Position{Line: 1, Column: 7}},
		{Kind: token.IntegerLiteral, Text: "2", Pos: token.Position{Line: 1, Column: 9}},
		{Kind: token.Semicolon, Text: ";", Pos: token.Position{Line: 1, Column: 10}},
	}
	_, err := parser.ParseTokens(toks)
	var list parser.ErrorList
	assert.True(t, errors.As(err, &list))
	assert.Equal(t, 1, len(list))
	assert.Equal(t, "one of + - * / %", list[0].Want)
	assert.Equal(t, "^", list[0].Got)
}

func TestParseExprTrailingInput(t *testing.T) {
	_, err := parser.ParseExpr("1 2")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected end of input")
}

func TestErrorListError(t *testing.T) {
	var empty parser.ErrorList
	assert.NoError(t, empty.Err())
	assert.Equal(t, "no errors", empty.Error())

	one := parser.ErrorList{{Message: "boom"}}
	assert.Equal(t, "boom", one.Error())
}
