// Package parser is a small recursive-descent parser turning the
// Yul-shaped token stream from pkg/lexer into pkg/ast trees. It has no
// opinion on which dialect it is parsing for — that only matters once
// pkg/analyzer resolves builtin names against a pkg/dialect.Dialect.
package parser

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/diagnostic"
	"github.com/yulc/evm2ewasm/pkg/lexer"
)

// Parser holds the parse state: the lexer, the current and peeked token,
// and any diagnostics accumulated along the way.
type Parser struct {
	l *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	diagnostics diagnostic.List
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

// Diagnostics returns every diagnostic collected during parsing.
func (p *Parser) Diagnostics() diagnostic.List {
	return p.diagnostics
}

func (p *Parser) errorf(format string, args ...any) {
	p.diagnostics = append(p.diagnostics, diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Message:  fmt.Sprintf(format, args...),
		Line:     p.cur.Line,
		Column:   p.cur.Column,
	})
}

// ParseBlock parses a single top-level `{ ... }` block, the entry point for
// both a whole program and the embedded polyfill text.
func ParseBlock(src string) (*ast.Block, diagnostic.List) {
	p := New(lexer.New(src))
	if !p.curIs(lexer.TokenLBrace) {
		p.errorf("expected '{' to begin block, got %s", p.cur.Type)
		return &ast.Block{}, p.diagnostics
	}
	block := p.parseBlock()
	return block, p.diagnostics
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.next()
		return true
	}
	p.errorf("expected %s, got %s (%q)", t, p.cur.Type, p.cur.Literal)
	return false
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{}
	if !p.expect(lexer.TokenLBrace) {
		return block
	}
	for !p.curIs(lexer.TokenRBrace) && !p.curIs(lexer.TokenEOF) {
		if s := p.parseStatement(); s != nil {
			block.Statements = append(block.Statements, s)
		} else {
			p.next()
		}
	}
	p.expect(lexer.TokenRBrace)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenFunction:
		return p.parseFunctionDefinition()
	case lexer.TokenLet:
		return p.parseVariableDeclaration()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenSwitch:
		return p.parseSwitch()
	case lexer.TokenFor:
		return p.parseForLoop()
	case lexer.TokenBreak:
		p.next()
		return &ast.Break{}
	case lexer.TokenContinue:
		p.next()
		return &ast.Continue{}
	case lexer.TokenLeave:
		p.next()
		return &ast.Leave{}
	case lexer.TokenIdent:
		return p.parseIdentifierLedStatement()
	default:
		p.errorf("unexpected token %s (%q) at start of statement", p.cur.Type, p.cur.Literal)
		return nil
	}
}

func (p *Parser) parseFunctionDefinition() ast.Statement {
	p.next() // 'function'
	name := p.cur.Literal
	p.expect(lexer.TokenIdent)
	p.expect(lexer.TokenLParen)
	params := p.parseTypedNameList(lexer.TokenRParen)
	p.expect(lexer.TokenRParen)

	var returns []ast.TypedName
	if p.curIs(lexer.TokenArrow) {
		p.next()
		returns = p.parseTypedNameList(lexer.TokenLBrace)
	}

	body := p.parseBlock()
	return &ast.FunctionDefinition{Name: name, Parameters: params, Returns: returns, Body: body}
}

func (p *Parser) parseTypedNameList(stop lexer.TokenType) []ast.TypedName {
	var out []ast.TypedName
	for !p.curIs(stop) && !p.curIs(lexer.TokenEOF) {
		out = append(out, p.parseTypedName())
		if p.curIs(lexer.TokenComma) {
			p.next()
		}
	}
	return out
}

func (p *Parser) parseTypedName() ast.TypedName {
	name := p.cur.Literal
	p.expect(lexer.TokenIdent)
	tn := ast.TypedName{Name: name, Type: ast.TypeWord}
	if p.curIs(lexer.TokenColon) {
		p.next()
		tn.Type = ast.Type(p.cur.Literal)
		p.expect(lexer.TokenIdent)
	}
	return tn
}

func (p *Parser) parseVariableDeclaration() ast.Statement {
	p.next() // 'let'
	vars := []ast.TypedName{p.parseTypedName()}
	for p.curIs(lexer.TokenComma) {
		p.next()
		vars = append(vars, p.parseTypedName())
	}
	decl := &ast.VariableDeclaration{Variables: vars}
	if p.curIs(lexer.TokenColonEqual) {
		p.next()
		decl.Value = p.parseExpression()
	}
	return decl
}

// parseIdentifierLedStatement disambiguates a bare identifier at statement
// start between a single or multi assignment (`a := x` / `a, b := f()`) and
// an expression statement (a call for side effects, e.g. `sstore(...)`).
func (p *Parser) parseIdentifierLedStatement() ast.Statement {
	first := p.cur.Literal
	if p.peekIs(lexer.TokenComma) || p.peekIs(lexer.TokenColonEqual) {
		names := []string{first}
		p.next()
		for p.curIs(lexer.TokenComma) {
			p.next()
			names = append(names, p.cur.Literal)
			p.expect(lexer.TokenIdent)
		}
		p.expect(lexer.TokenColonEqual)
		value := p.parseExpression()
		return &ast.Assignment{Names: names, Value: value}
	}
	expr := p.parseExpression()
	return &ast.ExpressionStatement{Expression: expr}
}

func (p *Parser) parseIf() ast.Statement {
	p.next() // 'if'
	cond := p.parseExpression()
	body := p.parseBlock()
	return &ast.If{Condition: cond, Body: body}
}

func (p *Parser) parseSwitch() ast.Statement {
	p.next() // 'switch'
	expr := p.parseExpression()
	sw := &ast.Switch{Expression: expr}
	for p.curIs(lexer.TokenCase) {
		p.next()
		lit := p.parseLiteral()
		body := p.parseBlock()
		sw.Cases = append(sw.Cases, ast.Case{Value: lit, Body: body})
	}
	if p.curIs(lexer.TokenDefault) {
		p.next()
		body := p.parseBlock()
		sw.Cases = append(sw.Cases, ast.Case{Value: nil, Body: body})
	}
	return sw
}

func (p *Parser) parseForLoop() ast.Statement {
	p.next() // 'for'
	pre := p.parseBlock()
	cond := p.parseExpression()
	post := p.parseBlock()
	body := p.parseBlock()
	return &ast.ForLoop{Pre: pre, Condition: cond, Post: post, Body: body}
}

func (p *Parser) parseExpression() ast.Expression {
	switch p.cur.Type {
	case lexer.TokenIdent:
		name := p.cur.Literal
		p.next()
		if p.curIs(lexer.TokenLParen) {
			return p.parseCallArguments(name)
		}
		return &ast.Identifier{Name: name}
	case lexer.TokenTrue:
		p.next()
		return ast.NewBoolLiteral(true)
	case lexer.TokenFalse:
		p.next()
		return ast.NewBoolLiteral(false)
	case lexer.TokenNumber:
		return p.parseLiteral()
	default:
		p.errorf("unexpected token %s (%q) in expression", p.cur.Type, p.cur.Literal)
		p.next()
		return ast.NewLiteralInt64(0, ast.TypeWord)
	}
}

func (p *Parser) parseCallArguments(name string) ast.Expression {
	p.expect(lexer.TokenLParen)
	var args []ast.Expression
	for !p.curIs(lexer.TokenRParen) && !p.curIs(lexer.TokenEOF) {
		args = append(args, p.parseExpression())
		if p.curIs(lexer.TokenComma) {
			p.next()
		}
	}
	p.expect(lexer.TokenRParen)
	return &ast.FunctionCall{Name: name, Arguments: args}
}

func (p *Parser) parseLiteral() *ast.Literal {
	if p.curIs(lexer.TokenTrue) {
		p.next()
		return ast.NewBoolLiteral(true)
	}
	if p.curIs(lexer.TokenFalse) {
		p.next()
		return ast.NewBoolLiteral(false)
	}
	text := p.cur.Literal
	p.expect(lexer.TokenNumber)
	v := new(big.Int)
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		v.SetString(text[2:], 16)
	} else {
		v.SetString(text, 10)
	}
	typ := ast.TypeWord
	if p.curIs(lexer.TokenColon) {
		p.next()
		typ = ast.Type(p.cur.Literal)
		p.expect(lexer.TokenIdent)
	}
	return ast.NewLiteral(v, typ)
}
