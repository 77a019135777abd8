// Package ast defines the variant-tagged, immutable-once-built tree
// produced by both the parser and the introspector: schemas, tables,
// columns, constraints, partitions, and user-defined types.
package ast

// Expression is the opaque textual form of a SQL expression: the source
// substring captured by paren-depth scanning. The core deliberately does
// not build an expression AST (see internal/parser's capture helper);
// equality is textual, optionally whitespace-collapsed by the comparator.
type Expression string

// OptBool is a present/absent pair for a boolean flag where "not
// specified" is distinct from an explicit false — e.g. DEFERRABLE vs NOT
// DEFERRABLE vs nothing written at all. Never conflate the zero value
// with "absent"; check Specified first.
type OptBool struct {
	Value     bool
	Specified bool
}

// Unspecified is the zero OptBool, reported by every builder constructor
// until a parser or introspector calls SetBool.
var Unspecified = OptBool{}

// SetBool returns an OptBool carrying value, marked specified.
func SetBool(value bool) OptBool {
	return OptBool{Value: value, Specified: true}
}

// StorageType is a column or base-type's storage mode.
type StorageType int

const (
	StorageUnspecified StorageType = iota
	StoragePlain
	StorageExternal
	StorageExtended
	StorageMain
	StorageDefault
)

// ReferentialMatch is the MATCH clause of a foreign key.
type ReferentialMatch int

const (
	MatchUnspecified ReferentialMatch = iota
	MatchFull
	MatchPartial
	MatchSimple
)

// ReferentialAction is an ON DELETE / ON UPDATE clause.
type ReferentialAction int

const (
	ActionUnspecified ReferentialAction = iota
	ActionNoAction
	ActionRestrict
	ActionCascade
	ActionSetNull
	ActionSetDefault
)
