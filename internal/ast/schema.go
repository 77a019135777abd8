package ast

// Schema is an ordered sequence of TableStmts plus parallel, opaque
// sequences for user-defined types, functions, and procedures. Only the
// table sequence is meaningful to the comparator beyond added/removed
// bookkeeping; function/procedure names are carried for completeness of
// introspected schemas but never structurally compared.
type Schema struct {
	Tables         []*TableStmt
	Types          []*CreateTypeStmt
	FunctionNames  []string
	ProcedureNames []string
}

// NewSchema returns an empty Schema ready to be populated by a parser or
// introspector.
func NewSchema() *Schema {
	return &Schema{}
}

// AddTable appends t to the schema's table sequence, preserving the
// order in which statements were parsed or introspected.
func (s *Schema) AddTable(t *TableStmt) {
	s.Tables = append(s.Tables, t)
}

// AddType appends t to the schema's user-defined type sequence.
func (s *Schema) AddType(t *CreateTypeStmt) {
	s.Types = append(s.Types, t)
}

// FindTable returns the first table with the given name, or nil.
func (s *Schema) FindTable(name string) *TableStmt {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}
