// Package render turns an ast.TableStmt back into CREATE TABLE DDL text.
// It exists for the round-trip property spec.md §8 states ("reparsing
// the pretty-printed form of A yields an AST structurally equal to A")
// — the property is stated in terms of a SQL back-end spec.md §1 itself
// calls out of the core's scope, so this package is that back-end, kept
// minimal rather than a full pretty-printer.
package render

import (
	"fmt"
	"strings"

	"pgschemadiff/internal/ast"
)

// Table renders a CREATE TABLE statement for any variant. Of-type and
// partition-of tables use their own clauses; see tableOfType and
// tablePartition below.
func Table(t *ast.TableStmt) string {
	switch t.Variant {
	case ast.TableOfType:
		return tableOfType(t)
	case ast.TablePartition:
		return tablePartition(t)
	default:
		return tableRegular(t)
	}
}

func tableRegular(t *ast.TableStmt) string {
	var sb strings.Builder
	sb.WriteString("CREATE ")
	sb.WriteString(persistenceClause(t))
	sb.WriteString("TABLE ")
	if t.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(quoteIdentifier(t.Name))
	sb.WriteString(" (\n")

	elems := make([]string, 0, len(t.Elements))
	for _, e := range t.Elements {
		elems = append(elems, "    "+tableElement(e))
	}
	sb.WriteString(strings.Join(elems, ",\n"))
	sb.WriteString("\n)")

	if len(t.Inherits) > 0 {
		sb.WriteString(" INHERITS (")
		sb.WriteString(quoteIdentifierList(t.Inherits))
		sb.WriteString(")")
	}
	if t.PartitionBy != nil {
		sb.WriteString(" ")
		sb.WriteString(partitionByClause(t.PartitionBy))
	}
	sb.WriteString(withOptionsClause(t))
	if t.Tablespace != nil {
		sb.WriteString(" TABLESPACE " + quoteIdentifier(*t.Tablespace))
	}
	sb.WriteString(";")
	return sb.String()
}

func tableOfType(t *ast.TableStmt) string {
	return fmt.Sprintf("CREATE TABLE %s OF %s;", quoteIdentifier(t.Name), quoteIdentifier(t.OfType))
}

func tablePartition(t *ast.TableStmt) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE %s PARTITION OF %s ", quoteIdentifier(t.Name), quoteIdentifier(t.Parent))
	if t.IsDefault {
		sb.WriteString("DEFAULT")
	} else {
		sb.WriteString(partitionBound(t.Bound))
	}
	sb.WriteString(";")
	return sb.String()
}

func persistenceClause(t *ast.TableStmt) string {
	switch t.Persistence {
	case ast.PersistTemporary:
		return "TEMPORARY "
	case ast.PersistUnlogged:
		return "UNLOGGED "
	default:
		return ""
	}
}

func withOptionsClause(t *ast.TableStmt) string {
	if len(t.WithOptionsOrder) == 0 {
		return ""
	}
	parts := make([]string, 0, len(t.WithOptionsOrder))
	for _, k := range t.WithOptionsOrder {
		parts = append(parts, k+" = "+t.WithOptions[k])
	}
	return " WITH (" + strings.Join(parts, ", ") + ")"
}

func tableElement(e ast.TableElement) string {
	switch e.Kind {
	case ast.ElementColumn:
		return columnDef(e.Column)
	case ast.ElementTableConstraint:
		return tableConstraint(e.Constraint)
	case ast.ElementLike:
		return likeClause(e.Like)
	default:
		return ""
	}
}

func columnDef(c *ast.ColumnDef) string {
	parts := []string{quoteIdentifier(c.Name), c.RawType}
	if c.Compression != nil {
		parts = append(parts, "COMPRESSION", *c.Compression)
	}
	if c.Collation != nil {
		parts = append(parts, "COLLATE", quoteIdentifier(*c.Collation))
	}
	for _, cc := range c.Constraints {
		if s := columnConstraint(cc); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func columnConstraint(cc ast.ColumnConstraint) string {
	prefix := constraintNamePrefix(cc.Name)
	switch cc.Kind {
	case ast.ColConstraintNotNull:
		return prefix + "NOT NULL"
	case ast.ColConstraintNull:
		return prefix + "NULL"
	case ast.ColConstraintCheck:
		return prefix + fmt.Sprintf("CHECK (%s)", cc.CheckExpr)
	case ast.ColConstraintDefault:
		return prefix + fmt.Sprintf("DEFAULT %s", cc.DefaultExpr)
	case ast.ColConstraintUnique:
		return prefix + "UNIQUE" + nullsDistinctClause(cc.NullsDistinct)
	case ast.ColConstraintPrimaryKey:
		return prefix + "PRIMARY KEY"
	case ast.ColConstraintReferences:
		s := prefix + fmt.Sprintf("REFERENCES %s", quoteIdentifier(cc.RefTable))
		if cc.RefColumn != "" {
			s += fmt.Sprintf("(%s)", quoteIdentifier(cc.RefColumn))
		}
		s += referentialMatchClause(cc.RefMatch)
		return s + referentialActionsClause(cc.OnDelete, cc.OnUpdate)
	default:
		return ""
	}
}

func tableConstraint(tc *ast.TableConstraint) string {
	prefix := constraintNamePrefix(tc.Name)
	switch tc.Kind {
	case ast.TblConstraintCheck:
		return prefix + fmt.Sprintf("CHECK (%s)", tc.CheckExpr)
	case ast.TblConstraintNotNull:
		return prefix + fmt.Sprintf("CHECK (%s IS NOT NULL)", quoteIdentifier(tc.Column))
	case ast.TblConstraintUnique:
		return prefix + fmt.Sprintf("UNIQUE%s (%s)", nullsDistinctClause(tc.NullsDistinct), quoteIdentifierList(tc.Columns))
	case ast.TblConstraintPrimaryKey:
		return prefix + fmt.Sprintf("PRIMARY KEY (%s)", quoteIdentifierList(tc.Columns))
	case ast.TblConstraintForeignKey:
		s := prefix + fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			quoteIdentifierList(tc.Columns), quoteIdentifier(tc.RefTable), quoteIdentifierList(tc.RefColumns))
		s += referentialMatchClause(tc.RefMatch)
		return s + referentialActionsClause(tc.OnDelete, tc.OnUpdate)
	case ast.TblConstraintExclude:
		return prefix + "EXCLUDE " + excludeElements(tc.Elements)
	default:
		return ""
	}
}

func excludeElements(elems []ast.ExcludeElement) string {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		parts = append(parts, fmt.Sprintf("%s WITH %s", e.Expr, e.Operator))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func constraintNamePrefix(name string) string {
	if name == "" {
		return ""
	}
	return "CONSTRAINT " + quoteIdentifier(name) + " "
}

func referentialActionsClause(onDelete, onUpdate ast.ReferentialAction) string {
	var sb strings.Builder
	if s := referentialAction(onDelete); s != "" {
		sb.WriteString(" ON DELETE " + s)
	}
	if s := referentialAction(onUpdate); s != "" {
		sb.WriteString(" ON UPDATE " + s)
	}
	return sb.String()
}

func referentialMatchClause(m ast.ReferentialMatch) string {
	switch m {
	case ast.MatchFull:
		return " MATCH FULL"
	case ast.MatchPartial:
		return " MATCH PARTIAL"
	case ast.MatchSimple:
		return " MATCH SIMPLE"
	default:
		return ""
	}
}

func nullsDistinctClause(b ast.OptBool) string {
	if !b.Specified {
		return ""
	}
	if b.Value {
		return " NULLS DISTINCT"
	}
	return " NULLS NOT DISTINCT"
}

func referentialAction(a ast.ReferentialAction) string {
	switch a {
	case ast.ActionNoAction:
		return "NO ACTION"
	case ast.ActionRestrict:
		return "RESTRICT"
	case ast.ActionCascade:
		return "CASCADE"
	case ast.ActionSetNull:
		return "SET NULL"
	case ast.ActionSetDefault:
		return "SET DEFAULT"
	default:
		return ""
	}
}

func likeClause(l *ast.LikeClause) string {
	return "LIKE " + quoteIdentifier(l.SourceTable)
}

func partitionByClause(p *ast.PartitionByClause) string {
	kind := map[ast.PartitionKind]string{
		ast.PartitionRange: "RANGE",
		ast.PartitionList:  "LIST",
		ast.PartitionHash:  "HASH",
	}[p.Kind]

	parts := make([]string, 0, len(p.Elements))
	for _, e := range p.Elements {
		s := e.ColumnOrExpr
		if e.IsExpr {
			s = "(" + s + ")"
		} else {
			s = quoteIdentifier(s)
		}
		if e.Collation != nil {
			s += " COLLATE " + quoteIdentifier(*e.Collation)
		}
		if e.OpClass != nil {
			s += " " + *e.OpClass
		}
		parts = append(parts, s)
	}
	return fmt.Sprintf("PARTITION BY %s (%s)", kind, strings.Join(parts, ", "))
}

func partitionBound(b *ast.PartitionBoundSpec) string {
	if b == nil {
		return "DEFAULT"
	}
	switch b.Kind {
	case ast.BoundIn:
		exprs := make([]string, 0, len(b.InExprs))
		for _, e := range b.InExprs {
			exprs = append(exprs, string(e))
		}
		return fmt.Sprintf("FOR VALUES IN (%s)", strings.Join(exprs, ", "))
	case ast.BoundRange:
		return fmt.Sprintf("FOR VALUES FROM (%s) TO (%s)", boundValueList(b.RangeFrom), boundValueList(b.RangeTo))
	case ast.BoundHash:
		return fmt.Sprintf("FOR VALUES WITH (MODULUS %d, REMAINDER %d)", b.HashModulus, b.HashRemainder)
	default:
		return "FOR VALUES DEFAULT"
	}
}

func boundValueList(values []ast.PartitionBoundValue) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		switch {
		case v.IsMinValue:
			parts = append(parts, "MINVALUE")
		case v.IsMaxValue:
			parts = append(parts, "MAXVALUE")
		default:
			parts = append(parts, string(v.Expr))
		}
	}
	return strings.Join(parts, ", ")
}

// Type renders a CREATE TYPE statement. Only the enum and composite
// variants are implemented; range and base types are rare enough in
// practice that the round-trip property is exercised without them.
func Type(t *ast.CreateTypeStmt) string {
	switch t.Variant {
	case ast.TypeEnum:
		return typeEnum(t)
	case ast.TypeComposite:
		return typeComposite(t)
	default:
		return ""
	}
}

func typeEnum(t *ast.CreateTypeStmt) string {
	labels := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		labels[i] = quoteStringLiteral(l)
	}
	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s);", quoteIdentifier(t.Name), strings.Join(labels, ", "))
}

func typeComposite(t *ast.CreateTypeStmt) string {
	attrs := make([]string, len(t.Attrs))
	for i, a := range t.Attrs {
		s := quoteIdentifier(a.Name) + " " + a.RawType
		if a.Collation != nil {
			s += " COLLATE " + quoteIdentifier(*a.Collation)
		}
		attrs[i] = s
	}
	return fmt.Sprintf("CREATE TYPE %s AS (%s);", quoteIdentifier(t.Name), strings.Join(attrs, ", "))
}

func quoteStringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdentifier double-quotes an identifier only when it is not a
// plain lower-case word, matching the parser's quote-stripping choice
// (SPEC_FULL.md §4): unquoted round-trips stay unquoted.
func quoteIdentifier(name string) string {
	if isPlainIdentifier(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func quoteIdentifierList(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = quoteIdentifier(n)
	}
	return strings.Join(parts, ", ")
}
