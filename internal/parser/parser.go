package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/kolkov/means/internal/ast"
	"github.com/kolkov/means/internal/lexer"
	"github.com/kolkov/means/internal/token"
)

// Token sets named in error messages.
const (
	wantValue    = "number, identifier or ("
	wantUnary    = "-"
	wantOperator = "one of + - * / %"
)

// Parser is a recursive descent parser over a token slice.
//
// Grammar:
//
//	program    := statement*
//	statement  := IDENT '=' expression ';'
//	expression := unary (OPERATOR expression)*     // precedence climbing
//	unary      := '-' unary | primary
//	primary    := '(' expression ')' | FLOAT | INTEGER | IDENT
//
// Binary operators are left-associative; * / % bind tighter than + -, and
// unary minus binds tighter than any binary operator. Expression nesting is
// bounded only by the Go call stack.
type Parser struct {
	toks   []token.Token
	pos    int            // Index of the next unconsumed token
	endPos token.Position // Position just past the last token
	errors ErrorList
}

// Parse tokenizes and parses a means program.
// Lexical diagnostics are dropped; use lexer.Tokenize and ParseTokens to
// observe them.
func Parse(src string) (*ast.Program, error) {
	toks, _ := lexer.Tokenize(src)
	return ParseTokens(toks)
}

// ParseTokens parses a program from tokens produced by the lexer.
// All syntax errors are collected and returned together as an ErrorList.
func ParseTokens(toks []token.Token) (*ast.Program, error) {
	p := newParser(toks)
	prog := p.parseProgram()
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (ast.Expr, error) {
	toks, _ := lexer.Tokenize(src)
	p := newParser(toks)
	expr, err := p.parseExpr()
	if err == nil && !p.eof() {
		err = expectedError(p.peek(), "end of input")
	}
	if err != nil {
		return nil, ErrorList{err}
	}
	return expr, nil
}

func newParser(toks []token.Token) *Parser {
	p := &Parser{toks: toks, endPos: token.Position{Line: 1, Column: 1}}
	if n := len(toks); n > 0 {
		last := toks[n-1]
		p.endPos = last.Pos
		p.endPos.Column += utf8.RuneCountInString(last.Text)
		p.endPos.Offset += len(last.Text)
	}
	return p
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

func (p *Parser) eof() bool {
	return p.pos >= len(p.toks)
}

// peek returns the next token. It must not be called at end of input.
func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// la1 reports whether the next token has the given kind.
func (p *Parser) la1(kind token.Kind) bool {
	return !p.eof() && p.toks[p.pos].Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

// match consumes the next token and checks that it has the given kind.
// A mismatched token is consumed too, unless it is a statement terminator,
// so that recovery resumes at the statement that follows it.
func (p *Parser) match(kind token.Kind) (token.Token, *ParseError) {
	if p.eof() {
		return token.Token{}, endError(p.endPos, kind.String())
	}
	tok := p.peek()
	if tok.Kind != kind {
		if tok.Kind != token.Semicolon {
			p.advance()
		}
		return tok, expectedError(tok, kind.String())
	}
	return p.advance(), nil
}

// synchronize discards tokens up to and including the next semicolon.
func (p *Parser) synchronize() {
	for !p.eof() {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.eof() {
		stmt, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog
}

func (p *Parser) parseStatement() (*ast.Assignment, *ParseError) {
	name, err := p.match(token.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.Assign); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Assignment{Name: name.Text, Expr: expr, NamePos: name.Pos}, nil
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

func (p *Parser) parseExpr() (ast.Expr, *ParseError) {
	return p.parseBinary(ast.LowestPrecedence + 1)
}

// parseBinary parses operators whose precedence is at least minPrec.
func (p *Parser) parseBinary(minPrec int) (ast.Expr, *ParseError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.la1(token.Operator) {
		tok := p.peek()
		op, ok := ast.ParseBinaryOp(tok.Text)
		if !ok {
			p.advance()
			return nil, expectedError(tok, wantOperator)
		}
		prec := op.Precedence()
		if prec < minPrec {
			break
		}
		p.advance()

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(left.Pos()),
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, *ParseError) {
	if !p.la1(token.Operator) {
		return p.parsePrimary()
	}
	tok := p.advance()
	op, ok := ast.ParseUnaryOp(tok.Text)
	if !ok {
		return nil, expectedError(tok, wantUnary)
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{BaseExpr: ast.MakeBaseExpr(tok.Pos), Op: op, Expr: operand}, nil
}

func (p *Parser) parsePrimary() (ast.Expr, *ParseError) {
	if p.eof() {
		return nil, endError(p.endPos, wantValue)
	}

	tok := p.peek()
	switch tok.Kind {
	case token.OpenParen:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.match(token.CloseParen); err != nil {
			return nil, err
		}
		return expr, nil

	case token.FloatLiteral:
		p.advance()
		f, err := strconv.ParseFloat(tok.Text, 32)
		if err != nil {
			return nil, literalError(tok, err)
		}
		return p.literal(tok, ast.FloatValue(float32(f))), nil

	case token.IntegerLiteral:
		p.advance()
		i, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			return nil, literalError(tok, err)
		}
		return p.literal(tok, ast.IntValue(int32(i))), nil

	case token.Identifier:
		p.advance()
		return p.literal(tok, ast.VarRef(tok.Text)), nil

	default:
		// Not consumed: it may be the terminator recovery needs.
		return nil, expectedError(tok, wantValue)
	}
}

func (p *Parser) literal(tok token.Token, v ast.Value) *ast.Literal {
	return &ast.Literal{BaseExpr: ast.MakeBaseExpr(tok.Pos), Value: v}
}

func literalError(tok token.Token, err error) *ParseError {
	msg := fmt.Sprintf("invalid %s %q", tok.Kind, tok.Text)
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		msg = fmt.Sprintf("%s %q out of range", tok.Kind, tok.Text)
	}
	return &ParseError{Kind: InvalidLiteral, Pos: tok.Pos, Message: msg, Got: tok.Text}
}
