package compare

import (
	"strings"

	"pgschemadiff/internal/ast"
)

// compareColumns implements spec §4.4 step 4: match columns by name
// (under the case rule), recording one Diff per added or removed
// column; then for matched pairs compare type, nullability, default,
// collation, storage, and compression, recording one Diff per
// differing attribute.
func compareColumns(srcElems, tgtElems []ast.TableElement, td *TableDiff, opts Options) {
	srcCols := columnsOf(srcElems)
	tgtCols := columnsOf(tgtElems)
	srcMap := mapColumnsByName(srcCols, opts)
	tgtMap := mapColumnsByName(tgtCols, opts)

	for _, c := range tgtCols {
		key := columnKey(c.Name, opts)
		if _, ok := srcMap[key]; !ok {
			td.AddedColumns = append(td.AddedColumns, &ColumnDiff{Name: c.Name, New: c})
			td.addDiff(ColumnAdded, c.Name, "", c.RawType, "column added")
		}
	}
	for _, c := range srcCols {
		key := columnKey(c.Name, opts)
		if _, ok := tgtMap[key]; !ok {
			td.RemovedColumns = append(td.RemovedColumns, &ColumnDiff{Name: c.Name, Old: c})
			td.addDiff(ColumnRemoved, c.Name, c.RawType, "", "column removed")
		}
	}
	for _, newCol := range tgtCols {
		key := columnKey(newCol.Name, opts)
		oldCol, ok := srcMap[key]
		if !ok {
			continue
		}
		cd := diffColumn(oldCol, newCol, opts)
		if cd == nil {
			continue
		}
		td.ModifiedColumns = append(td.ModifiedColumns, cd)
		recordColumnDiffs(td, cd)
	}
}

func columnKey(name string, opts Options) string {
	if opts.CaseSensitive {
		return name
	}
	return strings.ToLower(name)
}

func columnsOf(elems []ast.TableElement) []*ast.ColumnDef {
	var cols []*ast.ColumnDef
	for _, e := range elems {
		if e.Kind == ast.ElementColumn && e.Column != nil {
			cols = append(cols, e.Column)
		}
	}
	return cols
}

func diffColumn(oldCol, newCol *ast.ColumnDef, opts Options) *ColumnDiff {
	cd := &ColumnDiff{Name: newCol.Name, Old: oldCol, New: newCol}
	if !DataTypesEqual(oldCol.RawType, newCol.RawType, opts) {
		cd.TypeChanged = true
	}
	if columnNotNull(oldCol) != columnNotNull(newCol) {
		cd.NullableChanged = true
	}
	if !ExpressionsEqual(columnDefault(oldCol), columnDefault(newCol), opts) {
		cd.DefaultChanged = true
	}
	if ptrStr(oldCol.Collation) != ptrStr(newCol.Collation) {
		cd.CollationChanged = true
	}
	if oldCol.Storage != newCol.Storage {
		cd.StorageChanged = true
	}
	if ptrStr(oldCol.Compression) != ptrStr(newCol.Compression) {
		cd.CompressionChanged = true
	}
	if !cd.TypeChanged && !cd.NullableChanged && !cd.DefaultChanged &&
		!cd.CollationChanged && !cd.StorageChanged && !cd.CompressionChanged {
		return nil
	}
	return cd
}

func recordColumnDiffs(td *TableDiff, cd *ColumnDiff) {
	if cd.TypeChanged {
		td.addDiff(ColumnTypeChanged, cd.Name, cd.Old.RawType, cd.New.RawType, "column type changed")
	}
	if cd.NullableChanged {
		td.addDiff(ColumnNullableChanged, cd.Name, itoa(columnNotNull(cd.Old)), itoa(columnNotNull(cd.New)), "column nullability changed")
	}
	if cd.DefaultChanged {
		td.addDiff(ColumnDefaultChanged, cd.Name, string(columnDefault(cd.Old)), string(columnDefault(cd.New)), "column default changed")
	}
	if cd.CollationChanged {
		td.addDiff(ColumnCollationChanged, cd.Name, ptrStr(cd.Old.Collation), ptrStr(cd.New.Collation), "column collation changed")
	}
	if cd.StorageChanged {
		td.addDiff(ColumnStorageChanged, cd.Name, "", "", "column storage mode changed")
	}
	if cd.CompressionChanged {
		td.addDiff(ColumnCompressionChanged, cd.Name, ptrStr(cd.Old.Compression), ptrStr(cd.New.Compression), "column compression method changed")
	}
}

// columnNotNull reports whether a NotNull column constraint is present.
func columnNotNull(col *ast.ColumnDef) bool {
	for _, cc := range col.Constraints {
		if cc.Kind == ast.ColConstraintNotNull {
			return true
		}
	}
	return false
}

// columnDefault returns the column's DEFAULT expression, or "" if
// absent.
func columnDefault(col *ast.ColumnDef) ast.Expression {
	for _, cc := range col.Constraints {
		if cc.Kind == ast.ColConstraintDefault {
			return cc.DefaultExpr
		}
	}
	return ""
}
