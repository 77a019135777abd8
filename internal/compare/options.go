// Package compare implements the comparator: computing a SchemaDiff from
// two schemas, or a TableDiff from two table statements, under a set of
// options. Comparison is total — it never returns an error; anything it
// cannot make sense of degrades to "no difference recorded" and is
// reported through the injected DiagnosticSink instead.
package compare

// TableFilter decides whether a table name participates in comparison.
// A nil TableFilter compares every table.
type TableFilter func(name string) bool

// Options is the closed set of comparator knobs (spec §4.4).
type Options struct {
	CaseSensitive         bool
	NormalizeTypes        bool
	IgnoreWhitespace      bool
	IgnoreConstraintNames bool
	CompareTablespaces    bool
	CompareStorageParams  bool
	CompareConstraints    bool
	TableFilter           TableFilter
}

// DefaultOptions returns the comparator's default configuration: case-
// sensitive names, type normalization and whitespace-insensitive
// expressions on, constraint names significant, every table-level
// surface compared.
func DefaultOptions() Options {
	return Options{
		CaseSensitive:         true,
		NormalizeTypes:        true,
		IgnoreWhitespace:      true,
		IgnoreConstraintNames: false,
		CompareTablespaces:    true,
		CompareStorageParams:  true,
		CompareConstraints:    true,
	}
}

func (o Options) ShouldCompareTable(name string) bool {
	if o.TableFilter == nil {
		return true
	}
	return o.TableFilter(name)
}
