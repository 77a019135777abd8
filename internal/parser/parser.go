// Package parser implements a hand-written recursive-descent parser
// over the token stream produced by internal/lexer, building the
// internal/ast tree for CREATE TABLE and CREATE TYPE statements.
//
// Error recovery follows panic mode: the first error raised while
// parsing a statement is recorded; subsequent errors in the same
// statement are suppressed until synchronize finds a resync point
// (a consumed ';' or an upcoming CREATE/ALTER/DROP). "Panic mode" here
// is the grammar's error-recovery literature name, not Go's panic/
// recover builtins — the parser tracks it with an ordinary bool.
package parser

import (
	"fmt"

	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/lexer"
	"pgschemadiff/internal/token"
)

// Parser holds the token stream and recovery state for one parse run.
// Not safe for concurrent use; each call to ParseSource builds its own.
type Parser struct {
	src       string
	toks      []token.Token
	pos       int
	panicking bool
	errors    []ParseError
}

func newParser(src string, toks []token.Token) *Parser {
	if len(toks) == 0 {
		toks = []token.Token{{Kind: token.EOF, Line: 1, Column: 1}}
	}
	return &Parser{src: src, toks: toks}
}

// ParseSource tokenizes and parses source, returning whatever Schema
// could be built — possibly partial if errors were recorded — plus
// every accumulated ParseError in insertion order.
func ParseSource(source string) (*ast.Schema, []ParseError) {
	p := newParser(source, lexer.Tokenize(source))
	schema := ast.NewSchema()
	p.parseAllStatements(schema)
	return schema, p.errors
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) curIs(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// expect consumes the current token if it matches k, otherwise records
// a parse error (subject to panic-mode suppression) and leaves the
// stream positioned where it was.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.curIs(k) {
		return p.advance(), true
	}
	p.errorf("expected %s, got %s", k, p.cur().Kind)
	return token.Token{}, false
}

// consumeOptional advances past the current token iff it matches k.
func (p *Parser) consumeOptional(k token.Kind) {
	if p.curIs(k) {
		p.advance()
	}
}

func (p *Parser) errorf(format string, args ...any) {
	if p.panicking {
		return
	}
	p.panicking = true
	p.errors = append(p.errors, ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.cur().Line,
		Column:  p.cur().Column,
	})
}

// parseAllStatements is the driver loop: skip leading ';', stop at EOF,
// else parse one statement; on error synchronize and clear the panic
// flag; require ';' or EOF between statements.
func (p *Parser) parseAllStatements(schema *ast.Schema) {
	for {
		for p.curIs(token.SEMICOLON) {
			p.advance()
		}
		if p.curIs(token.EOF) {
			return
		}
		p.panicking = false
		p.parseStatement(schema)
		if p.panicking {
			p.synchronize()
			p.panicking = false
			continue
		}
		if p.curIs(token.SEMICOLON) {
			p.advance()
		} else if !p.curIs(token.EOF) {
			p.errorf("expected ';' or end of input, got %s", p.cur().Kind)
			p.synchronize()
			p.panicking = false
		}
	}
}

// synchronize advances until either a ';' has just been consumed or the
// next token starts a new top-level statement (CREATE/ALTER/DROP).
func (p *Parser) synchronize() {
	for {
		if p.curIs(token.EOF) {
			return
		}
		if p.curIs(token.SEMICOLON) {
			p.advance()
			return
		}
		if p.curIs(token.CREATE) || p.curIs(token.ALTER) || p.curIs(token.DROP) {
			return
		}
		p.advance()
	}
}

// parseStatement dispatches on CREATE, looking ahead through the
// optional GLOBAL|LOCAL and TEMP|TEMPORARY|UNLOGGED modifiers to
// distinguish CREATE TABLE from CREATE TYPE. Any other statement kind
// (INDEX, TRIGGER, FUNCTION, PROCEDURE, ALTER, DROP, ...) is out of
// parser scope: it is acknowledged only by erroring and resynchronizing.
func (p *Parser) parseStatement(schema *ast.Schema) {
	if _, ok := p.expect(token.CREATE); !ok {
		return
	}

	scope := ast.TempScopeNone
	persistence := ast.PersistNormal
	switch {
	case p.curIs(token.GLOBAL):
		scope = ast.TempScopeGlobal
		p.advance()
	case p.curIs(token.LOCAL):
		scope = ast.TempScopeLocal
		p.advance()
	}
	switch {
	case p.curIs(token.TEMP), p.curIs(token.TEMPORARY):
		persistence = ast.PersistTemporary
		p.advance()
	case p.curIs(token.UNLOGGED):
		persistence = ast.PersistUnlogged
		p.advance()
	}

	switch {
	case p.curIs(token.TABLE):
		p.advance()
		if tbl := p.parseCreateTableBody(persistence, scope); tbl != nil {
			schema.AddTable(tbl)
		}
	case p.curIs(token.TYPE):
		p.advance()
		if typ := p.parseCreateTypeBody(); typ != nil {
			schema.AddType(typ)
		}
	default:
		p.errorf("unsupported CREATE statement (only TABLE and TYPE are parsed), got %s", p.cur().Kind)
	}
}
