package compare

// Severity is a Diff's fixed, kind-derived importance level.
type Severity int

const (
	Info Severity = iota
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "CRITICAL"
	case Warning:
		return "WARNING"
	default:
		return "INFO"
	}
}

// DiffKind is the closed set of schema/table-level change kinds a Diff
// record can carry. Its severity is a deterministic function of kind
// alone (spec §4.4, §8's "r.severity == diff_type_severity(r.type)").
type DiffKind int

const (
	TableAdded DiffKind = iota
	TableRemoved
	TableTypeChanged
	ColumnAdded
	ColumnRemoved
	ColumnTypeChanged
	ColumnNullableChanged
	ColumnDefaultChanged
	ColumnCollationChanged
	ColumnStorageChanged
	ColumnCompressionChanged
	ConstraintAdded
	ConstraintRemoved
	ConstraintModified
	InheritsChanged
	TablespaceChanged
	PartitionChanged
	StorageParamsChanged
)

var kindNames = map[DiffKind]string{
	TableAdded: "TABLE_ADDED", TableRemoved: "TABLE_REMOVED",
	TableTypeChanged: "TABLE_TYPE_CHANGED", ColumnAdded: "COLUMN_ADDED",
	ColumnRemoved: "COLUMN_REMOVED", ColumnTypeChanged: "COLUMN_TYPE_CHANGED",
	ColumnNullableChanged: "COLUMN_NULLABLE_CHANGED", ColumnDefaultChanged: "COLUMN_DEFAULT_CHANGED",
	ColumnCollationChanged: "COLUMN_COLLATION_CHANGED", ColumnStorageChanged: "COLUMN_STORAGE_CHANGED",
	ColumnCompressionChanged: "COLUMN_COMPRESSION_CHANGED", ConstraintAdded: "CONSTRAINT_ADDED",
	ConstraintRemoved: "CONSTRAINT_REMOVED", ConstraintModified: "CONSTRAINT_MODIFIED",
	InheritsChanged: "INHERITS_CHANGED", TablespaceChanged: "TABLESPACE_CHANGED",
	PartitionChanged: "PARTITION_CHANGED", StorageParamsChanged: "STORAGE_PARAMS_CHANGED",
}

func (k DiffKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

var severityByKind = map[DiffKind]Severity{
	TableRemoved:      Critical,
	ColumnRemoved:     Critical,
	ColumnTypeChanged: Critical,

	TableAdded:            Warning,
	ColumnAdded:           Warning,
	ColumnNullableChanged: Warning,
	ConstraintRemoved:     Warning,
	ConstraintModified:    Warning,
	InheritsChanged:       Warning,
	TableTypeChanged:      Warning,

	ColumnDefaultChanged:     Info,
	ColumnCollationChanged:   Info,
	ColumnStorageChanged:     Info,
	ColumnCompressionChanged: Info,
	ConstraintAdded:          Info,
	TablespaceChanged:        Info,
	PartitionChanged:         Info,
	StorageParamsChanged:     Info,
}

// DiffTypeSeverity maps a DiffKind to its fixed Severity. An unrecognized
// kind degrades to Info rather than panicking, consistent with the
// comparator's total-failure policy (spec §4.4, §7).
func DiffTypeSeverity(kind DiffKind) Severity {
	if sev, ok := severityByKind[kind]; ok {
		return sev
	}
	return Info
}
