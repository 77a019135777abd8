package parser

import (
	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/token"
)

// span returns the literal source text spanning token indices [lo, hi) —
// from the first token's start offset to the last token's end offset —
// sliced directly out of the original source, so the captured
// ast.Expression is the exact source substring (spec.md §3), not a
// reconstruction with normalized whitespace.
func (p *Parser) span(lo, hi int) ast.Expression {
	if lo >= hi {
		return ""
	}
	return ast.Expression(p.src[p.toks[lo].Offset:p.toks[hi-1].EndOffset])
}

// captureParenExpression expects the current token to be '(', consumes
// through its matching ')' by paren-depth tracking, and returns the
// inner text as a literal slice of the source. This is the capture
// routine shared by every grammar production whose expression blob is
// parenthesized (CHECK, GENERATED ... AS, identity sequence options,
// index_params, partition elements, EXCLUDE elements and WHERE);
// unparenthesized DEFAULT expressions and partition bound values use
// the two scanners below.
func (p *Parser) captureParenExpression() ast.Expression {
	if !p.curIs(token.LPAREN) {
		p.errorf("expected '(' to start expression, got %s", p.cur().Kind)
		return ""
	}
	start := p.pos
	depth := 0
	for {
		switch p.cur().Kind {
		case token.LPAREN:
			depth++
			p.advance()
		case token.RPAREN:
			depth--
			p.advance()
			if depth == 0 {
				return p.span(start+1, p.pos-1)
			}
		case token.EOF:
			p.errorf("unterminated expression: missing ')'")
			return p.span(start+1, p.pos)
		default:
			p.advance()
		}
	}
}

// captureExpressionUntilConstraintBoundary captures an unparenthesized
// expression (as in "DEFAULT expr") up to the next token that could only
// start a new clause, tracking paren depth so a call like
// nextval('s'::regclass) is captured whole.
func (p *Parser) captureExpressionUntilConstraintBoundary() ast.Expression {
	start := p.pos
	depth := 0
	for {
		k := p.cur().Kind
		if k == token.EOF {
			break
		}
		if depth == 0 && defaultExprStopKinds[k] {
			break
		}
		switch k {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return p.span(start, p.pos)
			}
			depth--
		}
		p.advance()
	}
	return p.span(start, p.pos)
}

var defaultExprStopKinds = map[token.Kind]bool{
	token.COMMA: true, token.RPAREN: true,
	token.COLLATE: true, token.STORAGE: true, token.COMPRESSION: true,
	token.CONSTRAINT: true, token.NOT: true, token.NULL: true, token.CHECK: true,
	token.DEFAULT: true, token.GENERATED: true, token.UNIQUE: true, token.PRIMARY: true,
	token.REFERENCES: true, token.DEFERRABLE: true, token.INITIALLY: true, token.ENFORCED: true,
}

// captureSimpleExpression captures a comma/paren-delimited expression at
// depth zero — used for partition bound values and IN-list elements.
func (p *Parser) captureSimpleExpression() ast.Expression {
	start := p.pos
	depth := 0
	for {
		k := p.cur().Kind
		if k == token.EOF {
			break
		}
		if depth == 0 && (k == token.COMMA || k == token.RPAREN) {
			break
		}
		switch k {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
		p.advance()
	}
	return p.span(start, p.pos)
}

func (p *Parser) parseExpressionList() []ast.Expression {
	var exprs []ast.Expression
	for {
		exprs = append(exprs, p.captureSimpleExpression())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return exprs
}
