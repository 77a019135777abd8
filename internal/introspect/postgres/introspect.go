// Package postgres introspects a live PostgreSQL-family database into an
// ast.Schema, using the same builder constructors the parser populates so
// a schema built either way has the same AST shape (spec.md §6). Values
// are the catalog's own spellings (generated constraint names,
// pg_get_constraintdef's CHECK text, NOT NULL on primary-key columns), so
// an introspected schema and the DDL it was created from do not in
// general compare as equal; foreign keys are read without their
// referenced column list.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"pgschemadiff/internal/ast"
)

// Introspecter reads table, column, constraint, and inheritance metadata
// from pg_catalog/information_schema via a pooled *sql.DB.
type Introspecter struct {
	db *sql.DB
}

// Open connects to dsn using the lib/pq driver. The caller owns the
// returned Introspecter's lifetime and must call Close.
func Open(dsn string) (*Introspecter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	return &Introspecter{db: db}, nil
}

// New wraps an already-open pool, e.g. one obtained from
// database/sql.OpenDB or shared with another component.
func New(db *sql.DB) *Introspecter {
	return &Introspecter{db: db}
}

func (i *Introspecter) Close() error { return i.db.Close() }

// introspectCtx threads the request context and connection pool through
// the per-concern query helpers, mirroring the teacher's introspectCtx
// shape in internal/introspect/mysql.
type introspectCtx struct {
	ctx    context.Context
	db     *sql.DB
	schema string
}

// Introspect builds an ast.Schema for the given pg_catalog schema name
// (typically "public"). Tables are returned in the order
// information_schema reports them; the comparator does not depend on
// that order, only on name-keyed matching.
func (i *Introspecter) Introspect(ctx context.Context, schemaName string) (*ast.Schema, error) {
	ic := &introspectCtx{ctx: ctx, db: i.db, schema: schemaName}

	names, err := listTableNames(ic)
	if err != nil {
		return nil, fmt.Errorf("postgres: list tables: %w", err)
	}

	schema := ast.NewSchema()
	for _, name := range names {
		t, err := introspectTable(ic, name)
		if err != nil {
			return nil, fmt.Errorf("postgres: introspect table %q: %w", name, err)
		}
		schema.AddTable(t)
	}
	return schema, nil
}

func listTableNames(ic *introspectCtx) ([]string, error) {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`, ic.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func introspectTable(ic *introspectCtx, name string) (*ast.TableStmt, error) {
	t := ast.NewTableStmt(ast.TableRegular, name)

	if err := introspectTableProperties(ic, t); err != nil {
		return nil, err
	}
	if err := introspectInherits(ic, t); err != nil {
		return nil, err
	}
	if err := introspectColumns(ic, t); err != nil {
		return nil, err
	}
	if err := introspectConstraints(ic, t); err != nil {
		return nil, err
	}
	return t, nil
}

func introspectTableProperties(ic *introspectCtx, t *ast.TableStmt) error {
	row := ic.db.QueryRowContext(ic.ctx, `
		SELECT c.relpersistence, ts.spcname, am.amname
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		LEFT JOIN pg_tablespace ts ON ts.oid = c.reltablespace
		LEFT JOIN pg_am am ON am.oid = c.relam
		WHERE n.nspname = $1 AND c.relname = $2
	`, ic.schema, t.Name)

	var persistence string
	var tablespace, accessMethod sql.NullString
	if err := row.Scan(&persistence, &tablespace, &accessMethod); err != nil {
		return err
	}

	switch persistence {
	case "t":
		t.Persistence = ast.PersistTemporary
	case "u":
		t.Persistence = ast.PersistUnlogged
	default:
		t.Persistence = ast.PersistNormal
	}
	if tablespace.Valid {
		t.Tablespace = &tablespace.String
	}
	if accessMethod.Valid {
		t.AccessMethod = &accessMethod.String
	}
	return nil
}

// introspectInherits reports the table's parent list in pg_inherits'
// inhseqno order, so comparing it against a parsed INHERITS list stays
// meaningful for the ordered-equality rule compare.CompareTables applies.
func introspectInherits(ic *introspectCtx, t *ast.TableStmt) error {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT p.relname
		FROM pg_inherits i
		JOIN pg_class c ON c.oid = i.inhrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_class p ON p.oid = i.inhparent
		WHERE n.nspname = $1 AND c.relname = $2
		ORDER BY i.inhseqno
	`, ic.schema, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var parent string
		if err := rows.Scan(&parent); err != nil {
			return err
		}
		t.Inherits = append(t.Inherits, parent)
	}
	return rows.Err()
}

func introspectColumns(ic *introspectCtx, t *ast.TableStmt) error {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT
			c.column_name,
			c.data_type,
			c.udt_name,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			c.is_nullable,
			c.column_default,
			c.collation_name
		FROM information_schema.columns c
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`, ic.schema, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, dataType, udtName, nullable string
		var charLen, numPrecision, numScale sql.NullInt64
		var defaultVal, collation sql.NullString
		if err := rows.Scan(&name, &dataType, &udtName, &charLen, &numPrecision, &numScale, &nullable, &defaultVal, &collation); err != nil {
			return err
		}

		col := ast.NewColumnDef(name, rawColumnType(dataType, udtName, charLen, numPrecision, numScale))
		if nullable == "NO" {
			col.Constraints = append(col.Constraints, ast.NewColumnConstraint(ast.ColConstraintNotNull))
		}
		if defaultVal.Valid {
			cc := ast.NewColumnConstraint(ast.ColConstraintDefault)
			cc.DefaultExpr = ast.Expression(defaultVal.String)
			col.Constraints = append(col.Constraints, cc)
		}
		if collation.Valid {
			collationCopy := collation.String
			col.Collation = &collationCopy
		}

		t.Elements = append(t.Elements, ast.ColumnElement(col))
	}
	return rows.Err()
}

// rawColumnType reassembles information_schema's decomposed type report
// back into the parenthesized spelling the parser would have captured,
// so compare.NormalizeTypeName sees the same shape regardless of source.
func rawColumnType(dataType, udtName string, charLen, numPrecision, numScale sql.NullInt64) string {
	switch dataType {
	case "character varying", "character", "bit", "bit varying":
		if charLen.Valid {
			return fmt.Sprintf("%s(%d)", dataType, charLen.Int64)
		}
		return dataType
	case "numeric":
		if numPrecision.Valid && numScale.Valid {
			return fmt.Sprintf("numeric(%d,%d)", numPrecision.Int64, numScale.Int64)
		}
		return dataType
	case "ARRAY":
		return udtName[1:] + "[]" // udt_name for an array is its element type prefixed with "_"
	default:
		return dataType
	}
}

func introspectConstraints(ic *introspectCtx, t *ast.TableStmt) error {
	if err := introspectCheckConstraints(ic, t); err != nil {
		return err
	}
	if err := introspectKeyConstraints(ic, t, "p", ast.TblConstraintPrimaryKey); err != nil {
		return err
	}
	if err := introspectKeyConstraints(ic, t, "u", ast.TblConstraintUnique); err != nil {
		return err
	}
	return introspectForeignKeys(ic, t)
}

func introspectCheckConstraints(ic *introspectCtx, t *ast.TableStmt) error {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT con.conname, pg_get_constraintdef(con.oid)
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2 AND con.contype = 'c'
	`, ic.schema, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, def string
		if err := rows.Scan(&name, &def); err != nil {
			return err
		}
		tc := ast.NewTableConstraint(ast.TblConstraintCheck)
		tc.Name = name
		tc.CheckExpr = ast.Expression(checkExprFromDef(def))
		t.Elements = append(t.Elements, ast.ConstraintElement(&tc))
	}
	return rows.Err()
}

// checkExprFromDef strips pg_get_constraintdef's "CHECK (" prefix and
// the ")" that matches it, found by paren-depth tracking, so CheckExpr
// holds the text inside CHECK (...) even when the definition carries a
// trailing clause such as NO INHERIT.
func checkExprFromDef(def string) string {
	const prefix = "CHECK ("
	if len(def) <= len(prefix) || def[:len(prefix)] != prefix {
		return def
	}
	depth := 1
	for i := len(prefix); i < len(def); i++ {
		switch def[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return def[len(prefix):i]
			}
		}
	}
	return def
}

func introspectKeyConstraints(ic *introspectCtx, t *ast.TableStmt, contype string, kind ast.TableConstraintKind) error {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT con.conname, array_agg(a.attname ORDER BY k.ord)
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord) ON true
		JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = k.attnum
		WHERE n.nspname = $1 AND c.relname = $2 AND con.contype = $3
		GROUP BY con.conname
	`, ic.schema, t.Name, contype)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var cols pq.StringArray
		if err := rows.Scan(&name, &cols); err != nil {
			return err
		}
		tc := ast.NewTableConstraint(kind)
		tc.Name = name
		tc.Columns = []string(cols)
		t.Elements = append(t.Elements, ast.ConstraintElement(&tc))
	}
	return rows.Err()
}

func introspectForeignKeys(ic *introspectCtx, t *ast.TableStmt) error {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT
			con.conname,
			array_agg(DISTINCT a.attname) FILTER (WHERE a.attname IS NOT NULL),
			rc.relname,
			con.confmatchtype,
			con.confupdtype,
			con.confdeltype
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_class rc ON rc.oid = con.confrelid
		LEFT JOIN unnest(con.conkey) AS attnum ON true
		LEFT JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = attnum
		WHERE n.nspname = $1 AND c.relname = $2 AND con.contype = 'f'
		GROUP BY con.conname, rc.relname, con.confmatchtype, con.confupdtype, con.confdeltype
	`, ic.schema, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, refTable, matchType, updType, delType string
		var cols pq.StringArray
		if err := rows.Scan(&name, &cols, &refTable, &matchType, &updType, &delType); err != nil {
			return err
		}
		tc := ast.NewTableConstraint(ast.TblConstraintForeignKey)
		tc.Name = name
		tc.Columns = []string(cols)
		tc.RefTable = refTable
		tc.RefMatch = referentialMatchOf(matchType)
		tc.OnUpdate = referentialActionOf(updType)
		tc.OnDelete = referentialActionOf(delType)
		t.Elements = append(t.Elements, ast.ConstraintElement(&tc))
	}
	return rows.Err()
}

func referentialMatchOf(code string) ast.ReferentialMatch {
	switch code {
	case "f":
		return ast.MatchFull
	case "p":
		return ast.MatchPartial
	case "s":
		return ast.MatchSimple
	default:
		return ast.MatchUnspecified
	}
}

func referentialActionOf(code string) ast.ReferentialAction {
	switch code {
	case "a":
		return ast.ActionNoAction
	case "r":
		return ast.ActionRestrict
	case "c":
		return ast.ActionCascade
	case "n":
		return ast.ActionSetNull
	case "d":
		return ast.ActionSetDefault
	default:
		return ast.ActionUnspecified
	}
}
