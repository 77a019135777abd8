package parser

import (
	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/token"
)

// parseTableConstraint parses a table-scoped constraint: an optional
// CONSTRAINT name prefix followed by one of CHECK, UNIQUE, PRIMARY KEY,
// FOREIGN KEY, EXCLUDE, or NOT NULL.
func (p *Parser) parseTableConstraint() *ast.TableConstraint {
	name := ""
	if p.curIs(token.CONSTRAINT) {
		p.advance()
		if tok, ok := p.expect(token.IDENT); ok {
			name = tok.Text
		}
	}

	var tc ast.TableConstraint
	switch {
	case p.curIs(token.CHECK):
		p.advance()
		tc = ast.NewTableConstraint(ast.TblConstraintCheck)
		tc.CheckExpr = p.captureParenExpression()

	case p.curIs(token.NOT):
		p.advance()
		p.expect(token.NULL)
		tc = ast.NewTableConstraint(ast.TblConstraintNotNull)
		if tok, ok := p.expect(token.IDENT); ok {
			tc.Column = tok.Text
		}
		if p.curIs(token.NO) && p.curIsIdentText(p.peek(), "INHERIT") {
			p.advance()
			p.advance()
			tc.NoInherit = ast.SetBool(true)
		}

	case p.curIs(token.UNIQUE):
		p.advance()
		tc = ast.NewTableConstraint(ast.TblConstraintUnique)
		tc.NullsDistinct = p.parseOptionalNullsDistinct()
		tc.Columns = p.parseParenNameList()
		tc.IndexParams = p.parseOptionalIndexParams()

	case p.curIs(token.PRIMARY):
		p.advance()
		p.expect(token.KEY)
		tc = ast.NewTableConstraint(ast.TblConstraintPrimaryKey)
		tc.Columns = p.parseParenNameList()
		tc.IndexParams = p.parseOptionalIndexParams()

	case p.curIs(token.FOREIGN):
		p.advance()
		p.expect(token.KEY)
		tc = ast.NewTableConstraint(ast.TblConstraintForeignKey)
		tc.Columns = p.parseParenNameList()
		p.expect(token.REFERENCES)
		reftable, _ := p.parseQualifiedName()
		tc.RefTable = reftable
		tc.RefColumns = p.parseOptionalParenNameList()
		p.parseReferentialClauses(&tc.RefMatch, &tc.OnDelete, &tc.OnUpdate)

	case p.curIs(token.EXCLUDE):
		p.advance()
		tc = ast.NewTableConstraint(ast.TblConstraintExclude)
		if p.curIs(token.USING) {
			p.advance()
			if tok, ok := p.expect(token.IDENT); ok {
				tc.IndexMethod = tok.Text
			}
		}
		tc.Elements = p.parseExcludeElementList()
		if p.curIs(token.WHERE) {
			p.advance()
			tc.Where = p.captureParenExpression()
		}

	default:
		p.errorf("expected table constraint, got %s", p.cur().Kind)
		return nil
	}

	tc.Name = name
	p.parseConstraintTiming(&tc.Deferrable, &tc.InitiallyDeferred, &tc.Enforced)
	return &tc
}

// parseExcludeElementList parses EXCLUDE's "( elem WITH operator, ... )"
// list. Exclusion operators are arbitrary SQL operator lexemes outside
// the fixed punctuation table; the parser captures whatever single token
// (or bare word) follows WITH verbatim rather than attempting to
// tokenize the full Postgres operator grammar.
func (p *Parser) parseExcludeElementList() []ast.ExcludeElement {
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	var elems []ast.ExcludeElement
	for {
		var el ast.ExcludeElement
		if p.curIs(token.LPAREN) {
			el.Expr = p.captureParenExpression()
		} else if tok, ok := p.expect(token.IDENT); ok {
			el.Expr = ast.Expression(tok.Text)
		}
		if _, ok := p.expect(token.WITH); ok {
			el.Operator = p.advance().Text
		}
		elems = append(elems, el)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return elems
}
