package parser

import (
	"strings"

	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/token"
)

// parseCreateTypeBody parses everything after "CREATE TYPE", dispatching
// among the four forms in §4.3.2: enum, range, composite, and base.
func (p *Parser) parseCreateTypeBody() *ast.CreateTypeStmt {
	ifNotExists := false
	if p.curIs(token.IF) {
		p.advance()
		p.expect(token.NOT)
		p.expect(token.EXISTS)
		ifNotExists = true
	}

	name, ok := p.parseQualifiedName()
	if !ok {
		return nil
	}

	var typ *ast.CreateTypeStmt
	switch {
	case p.curIs(token.AS):
		p.advance()
		switch {
		case p.curIs(token.ENUM):
			p.advance()
			typ = ast.NewCreateTypeStmt(ast.TypeEnum, name)
			typ.Labels = p.parseStringList()
		case p.curIs(token.RANGE):
			p.advance()
			typ = ast.NewCreateTypeStmt(ast.TypeRange, name)
			p.parseRangeKVList(typ)
		case p.curIs(token.LPAREN):
			typ = ast.NewCreateTypeStmt(ast.TypeComposite, name)
			typ.Attrs = p.parseCompositeAttrs()
		default:
			p.errorf("expected ENUM, RANGE, or '(' after AS, got %s", p.cur().Kind)
			return nil
		}
	case p.curIs(token.LPAREN):
		typ = ast.NewCreateTypeStmt(ast.TypeBase, name)
		p.parseBaseKVList(typ)
	default:
		p.errorf("expected AS or '(' after type name, got %s", p.cur().Kind)
		return nil
	}

	if typ != nil {
		typ.IfNotExists = ifNotExists
	}
	return typ
}

func (p *Parser) parseStringList() []string {
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	var out []string
	for {
		tok, ok := p.expect(token.STRING)
		if !ok {
			break
		}
		out = append(out, tok.Text)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return out
}

func (p *Parser) parseCompositeAttrs() []ast.CompositeAttr {
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	var attrs []ast.CompositeAttr
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		nameTok, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		attr := ast.CompositeAttr{Name: nameTok.Text, RawType: p.parseDataType()}
		if p.curIs(token.COLLATE) {
			p.advance()
			if tok, ok := p.expect(token.IDENT); ok {
				s := tok.Text
				attr.Collation = &s
			}
		}
		attrs = append(attrs, attr)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return attrs
}

// parseRangeKVList parses "( SUBTYPE = ..., SUBTYPE_OPCLASS = ..., ...)".
// SUBTYPE and CANONICAL have dedicated keyword kinds; the remaining keys
// (SUBTYPE_OPCLASS, COLLATION, SUBTYPE_DIFF, MULTIRANGE_TYPE_NAME) are
// not in the fixed keyword table and so lex as plain identifiers.
func (p *Parser) parseRangeKVList(typ *ast.CreateTypeStmt) {
	if _, ok := p.expect(token.LPAREN); !ok {
		return
	}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		p.parseRangeKV(typ)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
}

func (p *Parser) parseRangeKV(typ *ast.CreateTypeStmt) {
	switch {
	case p.curIs(token.SUBTYPE):
		p.advance()
		p.consumeOptional(token.EQ)
		typ.Subtype = p.readKVStringValue()
	case p.curIs(token.CANONICAL):
		p.advance()
		p.consumeOptional(token.EQ)
		v := p.readKVStringValue()
		typ.Canonical = &v
	case p.curIs(token.IDENT):
		key := strings.ToUpper(p.advance().Text)
		p.consumeOptional(token.EQ)
		switch key {
		case "SUBTYPE_OPCLASS":
			v := p.readKVStringValue()
			typ.SubtypeOpClass = &v
		case "COLLATION":
			v := p.readKVStringValue()
			typ.Collation = &v
		case "SUBTYPE_DIFF":
			v := p.readKVStringValue()
			typ.Diff = &v
		case "MULTIRANGE_TYPE_NAME":
			v := p.readKVStringValue()
			typ.Multirange = &v
		default:
			p.errorf("unexpected range type option %q", key)
			p.readKVStringValue()
		}
	default:
		p.errorf("unexpected range type option %s", p.cur().Kind)
		p.advance()
	}
}

// parseBaseKVList parses the base-type "( INPUT = ..., OUTPUT = ..., ...
// )" key/value list. CATEGORY is the one key outside the fixed keyword
// table; it lexes as a plain identifier and is matched by text.
func (p *Parser) parseBaseKVList(typ *ast.CreateTypeStmt) {
	if _, ok := p.expect(token.LPAREN); !ok {
		return
	}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		p.parseBaseKV(typ)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
}

func (p *Parser) parseBaseKV(typ *ast.CreateTypeStmt) {
	switch {
	case p.curIs(token.INPUT):
		p.advance()
		p.consumeOptional(token.EQ)
		typ.Input = p.readKVStringValue()
	case p.curIs(token.OUTPUT):
		p.advance()
		p.consumeOptional(token.EQ)
		typ.Output = p.readKVStringValue()
	case p.curIs(token.RECEIVE):
		p.advance()
		p.consumeOptional(token.EQ)
		v := p.readKVStringValue()
		typ.Receive = &v
	case p.curIs(token.SEND):
		p.advance()
		p.consumeOptional(token.EQ)
		v := p.readKVStringValue()
		typ.Send = &v
	case p.curIs(token.TYPMOD_IN):
		p.advance()
		p.consumeOptional(token.EQ)
		v := p.readKVStringValue()
		typ.TypmodIn = &v
	case p.curIs(token.TYPMOD_OUT):
		p.advance()
		p.consumeOptional(token.EQ)
		v := p.readKVStringValue()
		typ.TypmodOut = &v
	case p.curIs(token.ANALYZE):
		p.advance()
		p.consumeOptional(token.EQ)
		v := p.readKVStringValue()
		typ.AnalyzeFn = &v
	case p.curIs(token.INTERNALLENGTH):
		p.advance()
		p.consumeOptional(token.EQ)
		typ.InternalLength = p.readKVStringValue()
	case p.curIs(token.PASSEDBYVALUE):
		p.advance()
		typ.PassedByValue = p.readKVFlagValue()
	case p.curIs(token.ALIGNMENT):
		p.advance()
		p.consumeOptional(token.EQ)
		typ.Alignment = p.readKVStringValue()
	case p.curIs(token.STORAGE):
		p.advance()
		p.consumeOptional(token.EQ)
		typ.Storage = p.parseStorageKind()
	case p.curIs(token.LIKE):
		p.advance()
		p.consumeOptional(token.EQ)
		v := p.readKVStringValue()
		typ.LikeType = &v
	case p.curIs(token.PREFERRED):
		p.advance()
		typ.Preferred = p.readKVFlagValue()
	case p.curIs(token.DEFAULT):
		p.advance()
		p.consumeOptional(token.EQ)
		v := p.readKVStringValue()
		typ.DefaultVal = &v
	case p.curIs(token.ELEMENT):
		p.advance()
		p.consumeOptional(token.EQ)
		v := p.readKVStringValue()
		typ.ElementType = &v
	case p.curIs(token.DELIMITER):
		p.advance()
		p.consumeOptional(token.EQ)
		typ.Delimiter = p.readKVStringValue()
	case p.curIs(token.COLLATABLE):
		p.advance()
		typ.Collatable = p.readKVFlagValue()
	case p.curIsIdentText(p.cur(), "CATEGORY"):
		p.advance()
		p.consumeOptional(token.EQ)
		typ.Category = p.readKVStringValue()
	default:
		p.errorf("unexpected base type option %s", p.cur().Kind)
		p.advance()
	}
}
