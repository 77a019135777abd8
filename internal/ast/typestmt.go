package ast

// CreateTypeVariant tags which of the four CREATE TYPE forms a
// CreateTypeStmt represents.
type CreateTypeVariant int

const (
	TypeEnum CreateTypeVariant = iota
	TypeComposite
	TypeRange
	TypeBase
)

// CompositeAttr is one attribute of a composite type.
type CompositeAttr struct {
	Name      string
	RawType   string
	Collation *string
}

// CreateTypeStmt is a single parsed or introspected CREATE TYPE
// statement. Only the fields relevant to Variant are populated.
type CreateTypeStmt struct {
	Variant     CreateTypeVariant
	Name        string
	IfNotExists bool

	// Enum
	Labels []string

	// Composite
	Attrs []CompositeAttr

	// Range
	Subtype        string
	SubtypeOpClass *string
	Collation      *string
	Canonical      *string
	Diff           *string
	Multirange     *string

	// Base
	Input          string
	Output         string
	Receive        *string
	Send           *string
	TypmodIn       *string
	TypmodOut      *string
	AnalyzeFn      *string
	InternalLength string // decimal text or "VARIABLE"; "" if unspecified
	PassedByValue  OptBool
	Alignment      string // single char; "" if unspecified
	Storage        StorageType
	LikeType       *string
	Category       string // single char; "" if unspecified
	Preferred      OptBool
	DefaultVal     *string
	ElementType    *string
	Delimiter      string // single char; "" if unspecified
	Collatable     OptBool
}

// NewCreateTypeStmt returns a CreateTypeStmt of the given variant with
// every optional field absent.
func NewCreateTypeStmt(variant CreateTypeVariant, name string) *CreateTypeStmt {
	return &CreateTypeStmt{Variant: variant, Name: name}
}
