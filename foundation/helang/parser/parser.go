// File: parser.go
// Title: HeLang Recursive Descent Parser
// Description: Implements the parsing phase. Statements and expression
//              primaries are ordered alternatives tried with backtracking;
//              postfix forms (indexing, binary operators) are applied in a
//              loop after a primary, which replaces left recursion.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-13 v0.1.0: Initial parser implementation
// - 2026-10-15 v0.1.0: Binary operator suffixes and the logo statement

package parser

import (
	"errors"
	"fmt"
	"strconv"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang/ast"
	"github.com/lwd-temp/helang/foundation/helang/token"
)

// errNoMatch reports that a rule does not apply at the current position.
// It only drives backtracking and never leaves the parser; a statement
// that no rule accepts becomes a BAD_STATEMENT error instead.
var errNoMatch = errors.New("no match")

type rule func() (ast.Node, error)

type suffixRule func(prev ast.Node) (ast.Node, error)

// Parser converts tokens into a syntax tree. A Parser may be reused but is
// not safe for concurrent use.
type Parser struct {
	tokens []token.Token
	pos    int

	// furthest is the highest position at which a token was rejected; it
	// points at the most likely culprit when every alternative fails.
	furthest int

	statements []rule
	primaries  []rule
	suffixes   []suffixRule

	logger *helog.Logger
}

// Options configures parser behavior
type Options struct {
	Logger *helog.Logger
}

// New creates a new parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = helog.GetDefault()
	}

	p := &Parser{logger: opts.Logger.WithField("component", "parser")}
	p.statements = []rule{
		p.parsePrint,
		p.parseSprint,
		p.parseVarDef,
		p.parseVarDeclare,
		p.parseVarAssign,
		p.parseVarIncrement,
		p.parseExprStatement,
		p.parseTest5G,
		p.parseSemicolon,
		p.parseCyberspaces,
		p.parseLogo,
	}
	p.primaries = []rule{
		p.parseEmptyU8,
		p.parseOrU8,
		p.parseVar,
	}
	p.suffixes = []suffixRule{
		p.parseU8Set,
		p.parseU8Get,
		p.parseBinary,
	}
	return p
}

// Parse parses tokens with default options
func Parse(tokens []token.Token) (ast.Node, error) {
	return New(Options{}).Parse(tokens)
}

// Parse parses a whole program. A single statement is returned as is;
// anything else is wrapped in a Block.
func (p *Parser) Parse(tokens []token.Token) (ast.Node, error) {
	p.tokens, p.pos, p.furthest = tokens, 0, 0

	p.logger.Debug("Starting parsing", helog.Fields{"tokens": len(tokens)})

	var statements []ast.Node
	for p.pos < len(p.tokens) {
		stmt, err := p.parseStatement()
		if err != nil {
			p.logger.Debug("Parsing failed", helog.Fields{"error": err.Error()})
			return nil, err
		}
		statements = append(statements, stmt)
	}

	p.logger.Debug("Parsing completed", helog.Fields{"statements": len(statements)})

	if len(statements) == 1 {
		return statements[0], nil
	}
	block := &ast.Block{Statements: statements}
	if len(tokens) > 0 {
		block.At = ast.AtToken(tokens[0])
	}
	return block, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	start := p.pos
	p.furthest = start
	node, err := p.first(p.statements)
	if errors.Is(err, errNoMatch) {
		return nil, p.badStatement(start)
	}
	return node, err
}

// first tries the rules in order and returns the result of the first one
// that matches, restoring the cursor after each failed attempt.
func (p *Parser) first(rules []rule) (ast.Node, error) {
	for _, r := range rules {
		saved := p.pos
		node, err := r()
		if err == nil {
			return node, nil
		}
		if !errors.Is(err, errNoMatch) {
			return nil, err
		}
		p.pos = saved
	}
	return nil, errNoMatch
}

// print: PRINT expr SEMICOLON
func (p *Parser) parsePrint() (ast.Node, error) {
	kw, err := p.expect(token.Print)
	if err != nil {
		return nil, err
	}
	value, err := p.parseTerminatedExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Print{At: ast.AtToken(kw), Value: value}, nil
}

// sprint: SPRINT expr SEMICOLON
func (p *Parser) parseSprint() (ast.Node, error) {
	kw, err := p.expect(token.Sprint)
	if err != nil {
		return nil, err
	}
	value, err := p.parseTerminatedExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Sprint{At: ast.AtToken(kw), Value: value}, nil
}

// var_def: U8 IDENT ASSIGN expr SEMICOLON
func (p *Parser) parseVarDef() (ast.Node, error) {
	kw, err := p.expect(token.U8)
	if err != nil {
		return nil, err
	}
	ident, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	init, err := p.parseTerminatedExpr()
	if err != nil {
		return nil, err
	}
	return &ast.VarDef{At: ast.AtToken(kw), Name: ident.Content, Init: init}, nil
}

// var_declare: U8 IDENT SEMICOLON
func (p *Parser) parseVarDeclare() (ast.Node, error) {
	kw, err := p.expect(token.U8)
	if err != nil {
		return nil, err
	}
	ident, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return &ast.VarDef{At: ast.AtToken(kw), Name: ident.Content}, nil
}

// var_assign: IDENT ASSIGN expr SEMICOLON
func (p *Parser) parseVarAssign() (ast.Node, error) {
	ident, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseTerminatedExpr()
	if err != nil {
		return nil, err
	}
	return &ast.VarAssign{At: ast.AtToken(ident), Name: ident.Content, Value: value}, nil
}

// var_increment: IDENT INCREMENT SEMICOLON
func (p *Parser) parseVarIncrement() (ast.Node, error) {
	ident, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Increment); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return &ast.VarIncrement{At: ast.AtToken(ident), Name: ident.Content}, nil
}

// expr_statement: expr SEMICOLON
func (p *Parser) parseExprStatement() (ast.Node, error) {
	return p.parseTerminatedExpr()
}

// test5g: TEST5G SEMICOLON
func (p *Parser) parseTest5G() (ast.Node, error) {
	kw, err := p.expectStatementKeyword(token.Test5G)
	if err != nil {
		return nil, err
	}
	return &ast.Test5G{At: ast.AtToken(kw)}, nil
}

// semicolon: SEMICOLON
func (p *Parser) parseSemicolon() (ast.Node, error) {
	semi, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.Void{At: ast.AtToken(semi)}, nil
}

// cyberspaces: CYBERSPACES SEMICOLON
func (p *Parser) parseCyberspaces() (ast.Node, error) {
	kw, err := p.expectStatementKeyword(token.Cyberspaces)
	if err != nil {
		return nil, err
	}
	return &ast.Cyberspaces{At: ast.AtToken(kw)}, nil
}

// logo: LOGO SEMICOLON
func (p *Parser) parseLogo() (ast.Node, error) {
	kw, err := p.expectStatementKeyword(token.Logo)
	if err != nil {
		return nil, err
	}
	return &ast.Logo{At: ast.AtToken(kw)}, nil
}

func (p *Parser) expectStatementKeyword(kind token.Kind) (token.Token, error) {
	kw, err := p.expect(kind)
	if err != nil {
		return kw, err
	}
	_, err = p.expect(token.Semicolon)
	return kw, err
}

func (p *Parser) parseTerminatedExpr() (ast.Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return expr, nil
}

// expr: (empty_u8 | or_u8 | var) suffix*
func (p *Parser) parseExpr() (ast.Node, error) {
	prev, err := p.first(p.primaries)
	if err != nil {
		return nil, err
	}

	for {
		next, matched, err := p.applySuffix(prev)
		if err != nil {
			return nil, err
		}
		if !matched {
			return prev, nil
		}
		prev = next
	}
}

func (p *Parser) applySuffix(prev ast.Node) (ast.Node, bool, error) {
	for _, suffix := range p.suffixes {
		saved := p.pos
		node, err := suffix(prev)
		if err == nil {
			return node, true, nil
		}
		if !errors.Is(err, errNoMatch) {
			return nil, false, err
		}
		p.pos = saved
	}
	return nil, false, nil
}

// empty_u8: LBRACKET NUMBER RBRACKET
func (p *Parser) parseEmptyU8() (ast.Node, error) {
	open, err := p.expect(token.LBracket)
	if err != nil {
		return nil, err
	}
	n, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}
	return &ast.EmptyU8Init{At: ast.AtToken(open), Length: n}, nil
}

// or_u8: NUMBER (OR or_u8)?
func (p *Parser) parseOrU8() (ast.Node, error) {
	start := p.pos
	n, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	values := []int{n}

	for p.peek(token.Or) {
		p.pos++
		n, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		values = append(values, n)
	}
	return &ast.OrU8Init{At: ast.AtToken(p.tokens[start]), Values: values}, nil
}

// var: IDENT
func (p *Parser) parseVar() (ast.Node, error) {
	ident, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	return &ast.VarRef{At: ast.AtToken(ident), Name: ident.Content}, nil
}

// u8_set: LBRACKET expr RBRACKET ASSIGN expr
func (p *Parser) parseU8Set(target ast.Node) (ast.Node, error) {
	index, err := p.parseSubscript()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.U8Set{At: ast.At{Pos: target.Position()}, Target: target, Index: index, Value: value}, nil
}

// u8_get: LBRACKET expr RBRACKET
func (p *Parser) parseU8Get(target ast.Node) (ast.Node, error) {
	index, err := p.parseSubscript()
	if err != nil {
		return nil, err
	}
	return &ast.U8Get{At: ast.At{Pos: target.Position()}, Target: target, Index: index}, nil
}

func (p *Parser) parseSubscript() (ast.Node, error) {
	if _, err := p.expect(token.LBracket); err != nil {
		return nil, err
	}
	index, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}
	return index, nil
}

// binary: (ADD | SUB | MUL | LT | LEQ | GT | GEQ | EQ | NEQ) expr
func (p *Parser) parseBinary(left ast.Node) (ast.Node, error) {
	if p.pos >= len(p.tokens) {
		return nil, p.noMatch()
	}
	op := p.tokens[p.pos]
	if !op.Kind.IsArithmetic() && !op.Kind.IsComparison() {
		return nil, p.noMatch()
	}
	p.pos++

	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{At: ast.At{Pos: left.Position()}, Op: op.Kind, Left: left, Right: right}, nil
}

func (p *Parser) peek(kind token.Kind) bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].Kind == kind
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if !p.peek(kind) {
		return token.Token{}, p.noMatch()
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, nil
}

func (p *Parser) expectNumber() (int, error) {
	tok, err := p.expect(token.Number)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(tok.Content)
	if convErr != nil {
		return 0, heerror.Wrap(convErr, fmt.Sprintf("number %s at line %d, column %d is out of range", tok.Content, tok.Line, tok.Column)).
			WithCode(heerror.CodeBadStatement).
			WithOperation("parser.Parse").
			WithPosition(tok.Line, tok.Column)
	}
	return n, nil
}

func (p *Parser) noMatch() error {
	if p.pos > p.furthest {
		p.furthest = p.pos
	}
	return errNoMatch
}

func (p *Parser) badStatement(start int) error {
	first := p.tokens[start]

	near := "end of input"
	if p.furthest < len(p.tokens) {
		tok := p.tokens[p.furthest]
		near = fmt.Sprintf("%q (%s) at line %d, column %d", tok.Content, tok.Kind, tok.Line, tok.Column)
	}

	return heerror.New(fmt.Sprintf("cannot parse statement starting at line %d, column %d: unexpected %s",
		first.Line, first.Column, near)).
		WithCode(heerror.CodeBadStatement).
		WithOperation("parser.Parse").
		WithPosition(first.Line, first.Column).
		WithDetail("token", first.Content)
}
