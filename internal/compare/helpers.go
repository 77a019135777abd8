package compare

import (
	"fmt"
	"sort"
	"strings"

	"pgschemadiff/internal/ast"
)

// NamesEqual compares two identifiers under the case_sensitive option.
func NamesEqual(a, b string, opts Options) bool {
	if opts.CaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// typeAliases is the fixed alias map normalize_types consults (spec
// §4.4 Options table gives int4/integer, int8/bigint, bool/boolean,
// varchar(n)/character varying(n), timestamptz/timestamp with time
// zone as examples; the remaining entries are the same family of
// Postgres built-in type spellings).
var typeAliases = map[string]string{
	"int4":                        "integer",
	"int":                         "integer",
	"int8":                        "bigint",
	"int2":                        "smallint",
	"bool":                        "boolean",
	"float4":                      "real",
	"float8":                      "double precision",
	"varchar":                     "character varying",
	"char":                        "character",
	"timestamptz":                 "timestamp with time zone",
	"timestamp without time zone": "timestamp",
	"timetz":                      "time with time zone",
	"decimal":                     "numeric",
	"serial4":                     "serial",
	"serial8":                     "bigserial",
}

// NormalizeTypeName canonicalizes a raw data-type spelling for
// comparison: lower-cases it (data types are always case-folded per
// spec §4.4), separates a leading type name from any "(n[,m])" or
// "[]" suffix, looks the name up in the alias map, and reassembles.
// A name with no alias entry falls back unchanged.
func NormalizeTypeName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	name, suffix := splitTypeSuffix(s)
	name = strings.TrimSpace(name)
	if alias, ok := typeAliases[name]; ok {
		name = alias
	}
	return name + suffix
}

// splitTypeSuffix separates a type name from its first "(" or "["
// onward, so "varchar(100)" splits into ("varchar", "(100)").
func splitTypeSuffix(s string) (string, string) {
	if i := strings.IndexAny(s, "([ "); i >= 0 && s[i] != ' ' {
		return s[:i], s[i:]
	}
	// A space-separated multi-word type ("character varying") has no
	// single-token prefix to extract; leave it whole for a literal
	// alias-map lookup instead.
	return s, ""
}

// DataTypesEqual compares two raw type strings under normalize_types.
func DataTypesEqual(a, b string, opts Options) bool {
	if !opts.NormalizeTypes {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	return NormalizeTypeName(a) == NormalizeTypeName(b)
}

// ExpressionsEqual compares two opaque Expression strings under
// ignore_whitespace.
func ExpressionsEqual(a, b ast.Expression, opts Options) bool {
	if !opts.IgnoreWhitespace {
		return a == b
	}
	return collapseWhitespace(string(a)) == collapseWhitespace(string(b))
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// mapTablesByName builds a lookup of tables keyed by name (case-folded
// iff !CaseSensitive), reporting any name collision this folding
// introduces. Grounded on the teacher's mapTablesByName in
// internal/diff/helpers.go.
func mapTablesByName(tables []*ast.TableStmt, opts Options) (map[string]*ast.TableStmt, []string) {
	m := make(map[string]*ast.TableStmt, len(tables))
	original := make(map[string]string, len(tables))
	var collisions []string

	for _, t := range tables {
		key := t.Name
		if !opts.CaseSensitive {
			key = strings.ToLower(key)
		}
		if prev, ok := original[key]; ok {
			if prev != t.Name {
				collisions = append(collisions, fmt.Sprintf("case-insensitive name collision: %q vs %q", prev, t.Name))
			}
			continue
		}
		original[key] = t.Name
		m[key] = t
	}
	return m, collisions
}

func mapColumnsByName(cols []*ast.ColumnDef, opts Options) map[string]*ast.ColumnDef {
	m := make(map[string]*ast.ColumnDef, len(cols))
	for _, c := range cols {
		key := c.Name
		if !opts.CaseSensitive {
			key = strings.ToLower(key)
		}
		m[key] = c
	}
	return m
}

// constraintView is the comparator's uniform projection of a constraint
// regardless of whether it was declared at column or table scope — the
// two ast types carry the same semantic fields under different Go
// struct shapes, and fingerprinting/matching needs one shape to work
// over.
type constraintView struct {
	Name    string
	Kind    string
	Columns []string

	CheckExpr ast.Expression

	RefTable   string
	RefColumns []string
	Match      ast.ReferentialMatch
	OnDelete   ast.ReferentialAction
	OnUpdate   ast.ReferentialAction
}

func viewFromColumnConstraint(col *ast.ColumnDef, cc *ast.ColumnConstraint) *constraintView {
	v := &constraintView{Name: cc.Name, Columns: []string{col.Name}}
	switch cc.Kind {
	case ast.ColConstraintNotNull:
		v.Kind = "NOT NULL"
	case ast.ColConstraintCheck:
		v.Kind, v.CheckExpr = "CHECK", cc.CheckExpr
	case ast.ColConstraintUnique:
		v.Kind = "UNIQUE"
	case ast.ColConstraintPrimaryKey:
		v.Kind = "PRIMARY KEY"
	case ast.ColConstraintReferences:
		v.Kind, v.RefTable = "FOREIGN KEY", cc.RefTable
		if cc.RefColumn != "" {
			v.RefColumns = []string{cc.RefColumn}
		}
		v.Match, v.OnDelete, v.OnUpdate = cc.RefMatch, cc.OnDelete, cc.OnUpdate
	default:
		return nil
	}
	return v
}

func viewFromTableConstraint(tc *ast.TableConstraint) *constraintView {
	v := &constraintView{Name: tc.Name}
	switch tc.Kind {
	case ast.TblConstraintCheck:
		v.Kind, v.CheckExpr = "CHECK", tc.CheckExpr
	case ast.TblConstraintNotNull:
		v.Kind, v.Columns = "NOT NULL", []string{tc.Column}
	case ast.TblConstraintUnique:
		v.Kind, v.Columns = "UNIQUE", tc.Columns
	case ast.TblConstraintPrimaryKey:
		v.Kind, v.Columns = "PRIMARY KEY", tc.Columns
	case ast.TblConstraintExclude:
		v.Kind = "EXCLUDE"
	case ast.TblConstraintForeignKey:
		v.Kind, v.Columns = "FOREIGN KEY", tc.Columns
		v.RefTable, v.RefColumns = tc.RefTable, tc.RefColumns
		v.Match, v.OnDelete, v.OnUpdate = tc.RefMatch, tc.OnDelete, tc.OnUpdate
	default:
		return nil
	}
	return v
}

// fingerprint is the semantic matching key spec §4.4 step 5 defines:
// kind, sorted column list where applicable, referenced table/columns
// for FK, normalized expression text for CHECK, and the referential
// action flags.
func (v *constraintView) fingerprint(opts Options) string {
	cols := append([]string(nil), v.Columns...)
	sort.Strings(cols)
	refCols := append([]string(nil), v.RefColumns...)
	sort.Strings(refCols)
	return fmt.Sprintf("%s|%s|%s|%s|%s|%d|%d|%d",
		v.Kind, strings.Join(cols, ","), v.RefTable, strings.Join(refCols, ","),
		collapseOrKeep(string(v.CheckExpr), opts), v.Match, v.OnDelete, v.OnUpdate)
}

func collapseOrKeep(expr string, opts Options) string {
	if opts.IgnoreWhitespace {
		return collapseWhitespace(expr)
	}
	return expr
}
