package parser

import (
	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/token"
)

// parseColumnDef parses one column definition: name, data type, then any
// number of COLLATE/STORAGE/COMPRESSION clauses and column constraints,
// in the order they appear.
func (p *Parser) parseColumnDef() *ast.ColumnDef {
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	rawType := p.parseDataType()
	col := ast.NewColumnDef(nameTok.Text, rawType)
	for {
		switch {
		case p.curIs(token.COLLATE):
			p.advance()
			if tok, ok := p.expect(token.IDENT); ok {
				s := tok.Text
				col.Collation = &s
			}
		case p.curIs(token.STORAGE):
			p.advance()
			col.Storage = p.parseStorageKind()
		case p.curIs(token.COMPRESSION):
			p.advance()
			if tok, ok := p.expect(token.IDENT); ok {
				s := tok.Text
				col.Compression = &s
			}
		case p.isColumnConstraintStart():
			col.Constraints = append(col.Constraints, p.parseColumnConstraint())
		default:
			return col
		}
	}
}

func (p *Parser) isColumnConstraintStart() bool {
	switch p.cur().Kind {
	case token.CONSTRAINT, token.NOT, token.NULL, token.CHECK, token.DEFAULT,
		token.GENERATED, token.UNIQUE, token.PRIMARY, token.REFERENCES:
		return true
	}
	return false
}

func (p *Parser) parseColumnConstraint() ast.ColumnConstraint {
	name := ""
	if p.curIs(token.CONSTRAINT) {
		p.advance()
		if tok, ok := p.expect(token.IDENT); ok {
			name = tok.Text
		}
	}

	var cc ast.ColumnConstraint
	switch {
	case p.curIs(token.NOT):
		p.advance()
		p.expect(token.NULL)
		cc = ast.NewColumnConstraint(ast.ColConstraintNotNull)

	case p.curIs(token.NULL):
		p.advance()
		cc = ast.NewColumnConstraint(ast.ColConstraintNull)

	case p.curIs(token.CHECK):
		p.advance()
		cc = ast.NewColumnConstraint(ast.ColConstraintCheck)
		cc.CheckExpr = p.captureParenExpression()
		if p.curIs(token.NO) && p.curIsIdentText(p.peek(), "INHERIT") {
			p.advance()
			p.advance()
			cc.NoInherit = ast.SetBool(true)
		}

	case p.curIs(token.DEFAULT):
		p.advance()
		cc = ast.NewColumnConstraint(ast.ColConstraintDefault)
		cc.DefaultExpr = p.captureExpressionUntilConstraintBoundary()

	case p.curIs(token.GENERATED):
		p.advance()
		always := false
		switch {
		case p.curIs(token.ALWAYS):
			p.advance()
			always = true
		case p.curIs(token.BY):
			p.advance()
			p.expect(token.DEFAULT)
		default:
			p.errorf("expected ALWAYS or BY DEFAULT after GENERATED, got %s", p.cur().Kind)
		}
		p.expect(token.AS)
		if p.curIs(token.IDENTITY) {
			p.advance()
			cc = ast.NewColumnConstraint(ast.ColConstraintGeneratedIdentity)
			if always {
				cc.IdentityType = ast.IdentityAlways
			} else {
				cc.IdentityType = ast.IdentityByDefault
			}
			if p.curIs(token.LPAREN) {
				cc.SequenceOptions = p.captureParenExpression()
			}
		} else {
			cc = ast.NewColumnConstraint(ast.ColConstraintGeneratedAlways)
			cc.GeneratedExpr = p.captureParenExpression()
			switch {
			case p.curIs(token.STORED):
				p.advance()
				cc.GeneratedStorage = ast.GeneratedStored
			case p.curIs(token.VIRTUAL):
				p.advance()
				cc.GeneratedStorage = ast.GeneratedVirtual
			}
		}

	case p.curIs(token.UNIQUE):
		p.advance()
		cc = ast.NewColumnConstraint(ast.ColConstraintUnique)
		cc.NullsDistinct = p.parseOptionalNullsDistinct()
		cc.IndexParams = p.parseOptionalIndexParams()

	case p.curIs(token.PRIMARY):
		p.advance()
		p.expect(token.KEY)
		cc = ast.NewColumnConstraint(ast.ColConstraintPrimaryKey)
		cc.IndexParams = p.parseOptionalIndexParams()

	case p.curIs(token.REFERENCES):
		p.advance()
		cc = ast.NewColumnConstraint(ast.ColConstraintReferences)
		reftable, _ := p.parseQualifiedName()
		cc.RefTable = reftable
		if p.curIs(token.LPAREN) {
			p.advance()
			if tok, ok := p.expect(token.IDENT); ok {
				cc.RefColumn = tok.Text
			}
			p.expect(token.RPAREN)
		}
		p.parseReferentialClauses(&cc.RefMatch, &cc.OnDelete, &cc.OnUpdate)

	default:
		p.errorf("expected column constraint, got %s", p.cur().Kind)
	}

	cc.Name = name
	p.parseConstraintTiming(&cc.Deferrable, &cc.InitiallyDeferred, &cc.Enforced)
	return cc
}

// curIsIdentText reports whether tok is an IDENT whose text matches want
// case-insensitively. Used for the few grammar words (INHERIT, CATEGORY,
// COLLATION, ...) that are not in the fixed keyword table and so lex as
// plain identifiers.
func (p *Parser) curIsIdentText(tok token.Token, want string) bool {
	return tok.Kind == token.IDENT && equalFold(tok.Text, want)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'a' && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if cb >= 'a' && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// parseConstraintTiming consumes any number, in any order, of the
// trailing DEFERRABLE/NOT DEFERRABLE, INITIALLY DEFERRED/IMMEDIATE, and
// ENFORCED/NOT ENFORCED clauses common to both column and table
// constraints.
func (p *Parser) parseConstraintTiming(deferrable, initiallyDeferred, enforced *ast.OptBool) {
	for {
		switch {
		case p.curIs(token.DEFERRABLE):
			p.advance()
			*deferrable = ast.SetBool(true)
		case p.curIs(token.NOT) && p.peek().Kind == token.DEFERRABLE:
			p.advance()
			p.advance()
			*deferrable = ast.SetBool(false)
		case p.curIs(token.INITIALLY):
			p.advance()
			switch {
			case p.curIs(token.DEFERRED):
				p.advance()
				*initiallyDeferred = ast.SetBool(true)
			case p.curIs(token.IMMEDIATE):
				p.advance()
				*initiallyDeferred = ast.SetBool(false)
			default:
				p.errorf("expected DEFERRED or IMMEDIATE after INITIALLY, got %s", p.cur().Kind)
				return
			}
		case p.curIs(token.ENFORCED):
			p.advance()
			*enforced = ast.SetBool(true)
		case p.curIs(token.NOT) && p.peek().Kind == token.ENFORCED:
			p.advance()
			p.advance()
			*enforced = ast.SetBool(false)
		default:
			return
		}
	}
}

func (p *Parser) parseOptionalNullsDistinct() ast.OptBool {
	if !p.curIs(token.NULLS) {
		return ast.Unspecified
	}
	p.advance()
	if p.curIs(token.NOT) {
		p.advance()
		p.expect(token.DISTINCT)
		return ast.SetBool(false)
	}
	p.expect(token.DISTINCT)
	return ast.SetBool(true)
}

// parseOptionalIndexParams captures the optional INCLUDE (...)/WITH
// (...)/USING INDEX TABLESPACE ident trailer of a UNIQUE or PRIMARY KEY
// constraint as a single raw text blob, the same "no expression AST"
// treatment as Expression.
func (p *Parser) parseOptionalIndexParams() *string {
	var parts []string
	if p.curIs(token.INCLUDE) {
		p.advance()
		parts = append(parts, "INCLUDE"+string(p.captureParenExpression()))
	}
	if p.curIs(token.WITH) {
		p.advance()
		parts = append(parts, "WITH"+string(p.captureParenExpression()))
	}
	if p.curIs(token.USING) {
		p.advance()
		if tok, ok := p.expect(token.IDENT); ok {
			parts = append(parts, "USING "+tok.Text)
		}
		if p.curIs(token.TABLESPACE) {
			p.advance()
			if tok, ok := p.expect(token.IDENT); ok {
				parts = append(parts, "TABLESPACE "+tok.Text)
			}
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := parts[0]
	for _, part := range parts[1:] {
		joined += " " + part
	}
	return &joined
}

func (p *Parser) parseReferentialClauses(match *ast.ReferentialMatch, onDelete, onUpdate *ast.ReferentialAction) {
	for {
		switch {
		case p.curIs(token.MATCH):
			p.advance()
			switch {
			case p.curIs(token.FULL):
				p.advance()
				*match = ast.MatchFull
			case p.curIs(token.PARTIAL):
				p.advance()
				*match = ast.MatchPartial
			case p.curIs(token.SIMPLE):
				p.advance()
				*match = ast.MatchSimple
			default:
				p.errorf("expected FULL, PARTIAL, or SIMPLE after MATCH, got %s", p.cur().Kind)
				return
			}
		case p.curIs(token.ON):
			p.advance()
			switch {
			case p.curIs(token.DELETE):
				p.advance()
				*onDelete = p.parseReferentialAction()
			case p.curIs(token.UPDATE):
				p.advance()
				*onUpdate = p.parseReferentialAction()
			default:
				p.errorf("expected DELETE or UPDATE after ON, got %s", p.cur().Kind)
				return
			}
		default:
			return
		}
	}
}

func (p *Parser) parseReferentialAction() ast.ReferentialAction {
	switch {
	case p.curIs(token.CASCADE):
		p.advance()
		return ast.ActionCascade
	case p.curIs(token.RESTRICT):
		p.advance()
		return ast.ActionRestrict
	case p.curIs(token.NO):
		p.advance()
		p.expect(token.ACTION)
		return ast.ActionNoAction
	case p.curIs(token.SET):
		p.advance()
		switch {
		case p.curIs(token.NULL):
			p.advance()
			return ast.ActionSetNull
		case p.curIs(token.DEFAULT):
			p.advance()
			return ast.ActionSetDefault
		default:
			p.errorf("expected NULL or DEFAULT after SET, got %s", p.cur().Kind)
			return ast.ActionUnspecified
		}
	default:
		p.errorf("expected referential action, got %s", p.cur().Kind)
		return ast.ActionUnspecified
	}
}
