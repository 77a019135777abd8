package parser

import (
	"strconv"
	"strings"

	"pgschemadiff/internal/ast"
	"pgschemadiff/internal/token"
)

// parseCreateTableBody parses everything after "CREATE ... TABLE",
// following the design-level grammar in §4.3.1.
func (p *Parser) parseCreateTableBody(persistence ast.Persistence, scope ast.TempScope) *ast.TableStmt {
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

	var tbl *ast.TableStmt
	switch {
	case p.curIs(token.OF):
		p.advance()
		typeName, ok := p.parseQualifiedName()
		if !ok {
			return nil
		}
		tbl = ast.NewTableStmt(ast.TableOfType, name)
		tbl.OfType = typeName
		tbl.Elements = p.parseOptionalElementList()

	case p.curIs(token.PARTITION):
		p.advance()
		if _, ok := p.expect(token.OF); !ok {
			return nil
		}
		parent, ok := p.parseQualifiedName()
		if !ok {
			return nil
		}
		tbl = ast.NewTableStmt(ast.TablePartition, name)
		tbl.Parent = parent
		tbl.Elements = p.parseOptionalElementList()
		tbl.Bound, tbl.IsDefault = p.parsePartitionBound()

	case p.curIs(token.LPAREN):
		elements := p.parseElementList()
		tbl = ast.NewTableStmt(ast.TableRegular, name)
		tbl.Elements = elements
		if p.curIs(token.INHERITS) {
			p.advance()
			tbl.Inherits = p.parseParenNameList()
		}

	default:
		p.errorf("expected OF, PARTITION OF, or '(' after table name, got %s", p.cur().Kind)
		return nil
	}

	tbl.Persistence = persistence
	tbl.TempScope = scope
	tbl.IfNotExists = ifNotExists

	if p.curIs(token.PARTITION) {
		p.advance()
		if _, ok := p.expect(token.BY); ok {
			tbl.PartitionBy = p.parsePartitionByClause()
		}
	}
	if p.curIs(token.USING) {
		p.advance()
		if tok, ok := p.expect(token.IDENT); ok {
			s := tok.Text
			tbl.AccessMethod = &s
		}
	}
	switch {
	case p.curIs(token.WITH):
		p.advance()
		if p.curIs(token.OIDS) {
			p.advance() // legacy WITH OIDS; WithoutOids stays false
		} else if _, ok := p.expect(token.LPAREN); ok {
			p.parseWithOptionsInto(tbl)
		}
	case p.curIs(token.WITHOUT):
		p.advance()
		if _, ok := p.expect(token.OIDS); ok {
			tbl.WithoutOids = true
		}
	}
	if p.curIs(token.ON) {
		p.advance()
		if _, ok := p.expect(token.COMMIT); ok {
			switch {
			case p.curIs(token.PRESERVE):
				p.advance()
				p.expect(token.ROWS)
				tbl.OnCommit = ast.OnCommitPreserveRows
			case p.curIs(token.DELETE):
				p.advance()
				p.expect(token.ROWS)
				tbl.OnCommit = ast.OnCommitDeleteRows
			case p.curIs(token.DROP):
				p.advance()
				tbl.OnCommit = ast.OnCommitDrop
			default:
				p.errorf("expected PRESERVE ROWS, DELETE ROWS, or DROP after ON COMMIT, got %s", p.cur().Kind)
			}
		}
	}
	if p.curIs(token.TABLESPACE) {
		p.advance()
		if tok, ok := p.expect(token.IDENT); ok {
			s := tok.Text
			tbl.Tablespace = &s
		}
	}
	return tbl
}

func (p *Parser) parseWithOptionsInto(tbl *ast.TableStmt) {
	if p.curIs(token.RPAREN) {
		p.advance()
		return
	}
	for {
		keyTok, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		value := ""
		if _, ok := p.expect(token.EQ); ok {
			value = p.readKVStringValue()
		}
		tbl.SetWithOption(keyTok.Text, value)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
}

// parsePartitionBound parses the "FOR VALUES ..." clause, or the bare
// DEFAULT, of a PARTITION OF table. Every non-DEFAULT form (IN,
// FROM...TO, WITH MODULUS/REMAINDER) is implemented, per SPEC_FULL.md
// §4's resolution of the "partition-bound parsing not fully implemented"
// ambiguity.
func (p *Parser) parsePartitionBound() (*ast.PartitionBoundSpec, bool) {
	if p.curIs(token.DEFAULT) {
		p.advance()
		return ast.NewDefaultBound(), true
	}
	if _, ok := p.expect(token.FOR); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.VALUES); !ok {
		return nil, false
	}
	switch {
	case p.curIs(token.DEFAULT):
		p.advance()
		return ast.NewDefaultBound(), true
	case p.curIs(token.IN):
		p.advance()
		if _, ok := p.expect(token.LPAREN); !ok {
			return nil, false
		}
		exprs := p.parseExpressionList()
		p.expect(token.RPAREN)
		return ast.NewInBound(exprs), false
	case p.curIs(token.FROM):
		p.advance()
		if _, ok := p.expect(token.LPAREN); !ok {
			return nil, false
		}
		from := p.parseBoundValueList()
		p.expect(token.RPAREN)
		if _, ok := p.expect(token.TO); !ok {
			return nil, false
		}
		if _, ok := p.expect(token.LPAREN); !ok {
			return nil, false
		}
		to := p.parseBoundValueList()
		p.expect(token.RPAREN)
		return ast.NewRangeBound(from, to), false
	case p.curIs(token.WITH):
		p.advance()
		if _, ok := p.expect(token.LPAREN); !ok {
			return nil, false
		}
		modulus, remainder := p.parseHashBoundBody()
		p.expect(token.RPAREN)
		return ast.NewHashBound(modulus, remainder), false
	default:
		p.errorf("expected DEFAULT, IN, FROM, or WITH after FOR VALUES, got %s", p.cur().Kind)
		return nil, false
	}
}

func (p *Parser) parseBoundValueList() []ast.PartitionBoundValue {
	var out []ast.PartitionBoundValue
	for {
		switch {
		case p.curIs(token.MINVALUE):
			p.advance()
			out = append(out, ast.PartitionBoundValue{IsMinValue: true})
		case p.curIs(token.MAXVALUE):
			p.advance()
			out = append(out, ast.PartitionBoundValue{IsMaxValue: true})
		default:
			out = append(out, ast.PartitionBoundValue{Expr: p.captureSimpleExpression()})
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return out
}

func (p *Parser) parseHashBoundBody() (modulus, remainder int) {
	for i := 0; i < 2; i++ {
		switch {
		case p.curIs(token.MODULUS):
			p.advance()
			if tok, ok := p.expect(token.NUMBER); ok {
				modulus, _ = strconv.Atoi(tok.Text)
			}
		case p.curIs(token.REMAINDER):
			p.advance()
			if tok, ok := p.expect(token.NUMBER); ok {
				remainder, _ = strconv.Atoi(tok.Text)
			}
		default:
			p.errorf("expected MODULUS or REMAINDER, got %s", p.cur().Kind)
			return
		}
		if i == 0 && p.curIs(token.COMMA) {
			p.advance()
		}
	}
	return
}

func (p *Parser) parsePartitionByClause() *ast.PartitionByClause {
	var kind ast.PartitionKind
	switch {
	case p.curIs(token.RANGE):
		kind = ast.PartitionRange
		p.advance()
	case p.curIs(token.LIST):
		kind = ast.PartitionList
		p.advance()
	case p.curIs(token.HASH):
		kind = ast.PartitionHash
		p.advance()
	default:
		p.errorf("expected RANGE, LIST, or HASH, got %s", p.cur().Kind)
		return nil
	}
	clause := ast.NewPartitionByClause(kind)
	if _, ok := p.expect(token.LPAREN); !ok {
		return clause
	}
	for {
		clause.Elements = append(clause.Elements, p.parsePartitionElement())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return clause
}

func (p *Parser) parsePartitionElement() ast.PartitionElement {
	var elem ast.PartitionElement
	if p.curIs(token.LPAREN) {
		elem.IsExpr = true
		elem.ColumnOrExpr = string(p.captureParenExpression())
	} else if tok, ok := p.expect(token.IDENT); ok {
		elem.ColumnOrExpr = tok.Text
	}
	if p.curIs(token.COLLATE) {
		p.advance()
		if tok, ok := p.expect(token.IDENT); ok {
			s := tok.Text
			elem.Collation = &s
		}
	}
	if !p.curIs(token.COMMA) && !p.curIs(token.RPAREN) && p.curIs(token.IDENT) {
		tok := p.advance()
		s := tok.Text
		elem.OpClass = &s
	}
	return elem
}

// parseElementList parses a required, parenthesized table element list.
func (p *Parser) parseElementList() []ast.TableElement {
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	var elements []ast.TableElement
	if p.curIs(token.RPAREN) {
		p.advance()
		return elements
	}
	for {
		elements = append(elements, p.parseTableElement())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return elements
}

// parseOptionalElementList handles the OF/PARTITION OF forms, where the
// column-constraint-override list in parens may be entirely absent.
func (p *Parser) parseOptionalElementList() []ast.TableElement {
	if !p.curIs(token.LPAREN) {
		return nil
	}
	return p.parseElementList()
}

func (p *Parser) parseTableElement() ast.TableElement {
	switch {
	case p.curIs(token.LIKE):
		return ast.LikeElement(p.parseLikeClause())
	case p.curIs(token.CONSTRAINT), p.curIs(token.CHECK), p.curIs(token.UNIQUE),
		p.curIs(token.PRIMARY), p.curIs(token.FOREIGN), p.curIs(token.EXCLUDE), p.curIs(token.NOT):
		return ast.ConstraintElement(p.parseTableConstraint())
	default:
		return ast.ColumnElement(p.parseColumnDef())
	}
}

func (p *Parser) parseLikeClause() *ast.LikeClause {
	p.advance() // LIKE
	name, _ := p.parseQualifiedName()
	like := ast.NewLikeClause(name)
	for p.curIs(token.INCLUDING) || p.curIs(token.EXCLUDING) {
		include := p.curIs(token.INCLUDING)
		p.advance()
		if opt, ok := p.parseLikeOption(); ok {
			like.Options = append(like.Options, ast.LikeOptionEntry{Option: opt, Include: include})
		}
	}
	return like
}

func (p *Parser) parseLikeOption() (ast.LikeOption, bool) {
	switch p.cur().Kind {
	case token.COMMENTS:
		p.advance()
		return ast.LikeComments, true
	case token.COMPRESSION:
		p.advance()
		return ast.LikeCompression, true
	case token.CONSTRAINTS:
		p.advance()
		return ast.LikeConstraints, true
	case token.DEFAULTS:
		p.advance()
		return ast.LikeDefaults, true
	case token.GENERATED:
		p.advance()
		return ast.LikeGenerated, true
	case token.IDENTITY:
		p.advance()
		return ast.LikeIdentity, true
	case token.INDEXES:
		p.advance()
		return ast.LikeIndexes, true
	case token.STATISTICS:
		p.advance()
		return ast.LikeStatistics, true
	case token.STORAGE:
		p.advance()
		return ast.LikeStorage, true
	case token.ALL:
		p.advance()
		return ast.LikeAll, true
	default:
		p.errorf("expected LIKE option, got %s", p.cur().Kind)
		return 0, false
	}
}

// parseQualifiedName parses an identifier, optionally schema-qualified
// with '.'.
func (p *Parser) parseQualifiedName() (string, bool) {
	tok, ok := p.expect(token.IDENT)
	if !ok {
		return "", false
	}
	name := tok.Text
	for p.curIs(token.DOT) {
		p.advance()
		tok2, ok2 := p.expect(token.IDENT)
		if !ok2 {
			return name, false
		}
		name += "." + tok2.Text
	}
	return name, true
}

// parseDataType parses a (possibly schema-qualified) type name with an
// optional (n) or (n, m) modifier and any number of [n?] array suffixes,
// reconstructing the original text verbatim in RawType.
func (p *Parser) parseDataType() string {
	name, ok := p.parseQualifiedName()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(name)
	if p.curIs(token.LPAREN) {
		p.advance()
		b.WriteString("(")
		if tok, ok := p.expect(token.NUMBER); ok {
			b.WriteString(tok.Text)
		}
		if p.curIs(token.COMMA) {
			p.advance()
			b.WriteString(",")
			if tok, ok := p.expect(token.NUMBER); ok {
				b.WriteString(tok.Text)
			}
		}
		p.expect(token.RPAREN)
		b.WriteString(")")
	}
	for p.curIs(token.LBRACKET) {
		p.advance()
		b.WriteString("[")
		if p.curIs(token.NUMBER) {
			b.WriteString(p.advance().Text)
		}
		p.expect(token.RBRACKET)
		b.WriteString("]")
	}
	return b.String()
}

func (p *Parser) parseStorageKind() ast.StorageType {
	switch p.cur().Kind {
	case token.PLAIN:
		p.advance()
		return ast.StoragePlain
	case token.EXTERNAL:
		p.advance()
		return ast.StorageExternal
	case token.EXTENDED:
		p.advance()
		return ast.StorageExtended
	case token.MAIN:
		p.advance()
		return ast.StorageMain
	case token.DEFAULT:
		p.advance()
		return ast.StorageDefault
	default:
		p.errorf("expected storage mode, got %s", p.cur().Kind)
		return ast.StorageUnspecified
	}
}

// parseParenNameList parses a required "( ident, ident, ... )" list.
func (p *Parser) parseParenNameList() []string {
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}
	names := p.parseNameListBody()
	p.expect(token.RPAREN)
	return names
}

func (p *Parser) parseOptionalParenNameList() []string {
	if !p.curIs(token.LPAREN) {
		return nil
	}
	return p.parseParenNameList()
}

func (p *Parser) parseNameListBody() []string {
	var names []string
	if p.curIs(token.RPAREN) {
		return names
	}
	for {
		tok, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		names = append(names, tok.Text)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return names
}

// readKVStringValue reads a single-token value for a WITH-options or
// CREATE-TYPE kv entry.
func (p *Parser) readKVStringValue() string {
	if p.curIs(token.VARIABLE) {
		p.advance()
		return "VARIABLE"
	}
	return p.advance().Text
}

// readKVFlagValue reads a CREATE-TYPE base key that accepts either the
// bare-flag form (PASSEDBYVALUE) or an explicit "= true/false" (spec
// §4.3.2): if an '=' follows the keyword, consume it and parse the
// boolean literal; otherwise the bare keyword itself means true.
func (p *Parser) readKVFlagValue() ast.OptBool {
	if !p.curIs(token.EQ) {
		return ast.SetBool(true)
	}
	p.advance()
	text := p.advance().Text
	return ast.SetBool(equalFold(text, "true"))
}
