package output

import (
	"fmt"
	"strings"

	"pgschemadiff/internal/compare"
)

type humanFormatter struct{}

// FormatDiff renders a compact summary followed by a per-table detail
// section, in the same "counts header, then details" shape as the
// teacher's summary formatter.
func (humanFormatter) FormatDiff(d *compare.SchemaDiff) (string, error) {
	if d == nil || d.IsEmpty() {
		return "No changes detected.\n", nil
	}

	var sb strings.Builder
	sb.WriteString("Schema Diff Summary\n")
	sb.WriteString("===================\n\n")

	fmt.Fprintf(&sb, "Tables:      +%d, ~%d, -%d\n", len(d.AddedTables), len(d.ModifiedTables), len(d.RemovedTables))
	fmt.Fprintf(&sb, "Severity:    %d critical, %d warning, %d info\n", d.CriticalCount, d.WarningCount, d.InfoCount)

	writeTableDetails(&sb, d)
	return sb.String(), nil
}

func writeTableDetails(sb *strings.Builder, d *compare.SchemaDiff) {
	if len(d.AddedTables) == 0 && len(d.RemovedTables) == 0 && len(d.ModifiedTables) == 0 {
		return
	}

	sb.WriteString("\nDetails:\n")
	for _, t := range d.AddedTables {
		fmt.Fprintf(sb, "  + %s (new table)\n", t.Name)
	}
	for _, t := range d.RemovedTables {
		fmt.Fprintf(sb, "  - %s (removed table)\n", t.Name)
	}
	for _, td := range d.ModifiedTables {
		fmt.Fprintf(sb, "  ~ %s (%s)\n", td.Name, tableChangeSummary(td))
		for _, diff := range td.Diffs {
			fmt.Fprintf(sb, "      [%s] %s: %s\n", diff.Severity, diff.Kind, diff.Description)
		}
	}
}

func tableChangeSummary(td *compare.TableDiff) string {
	var parts []string
	if n := len(td.AddedColumns); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d cols", n))
	}
	if n := len(td.RemovedColumns); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d cols", n))
	}
	if n := len(td.ModifiedColumns); n > 0 {
		parts = append(parts, fmt.Sprintf("~%d cols", n))
	}
	if n := len(td.AddedConstraints); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d constraints", n))
	}
	if n := len(td.RemovedConstraints); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d constraints", n))
	}
	if n := len(td.ModifiedConstraints); n > 0 {
		parts = append(parts, fmt.Sprintf("~%d constraints", n))
	}
	if len(parts) == 0 {
		return "options changed"
	}
	return strings.Join(parts, ", ")
}
