package output

import (
	"encoding/json"

	"pgschemadiff/internal/compare"
)

type jsonFormatter struct{}

type diffSummary struct {
	AddedTables    int `json:"addedTables"`
	RemovedTables  int `json:"removedTables"`
	ModifiedTables int `json:"modifiedTables"`
	Critical       int `json:"critical"`
	Warning        int `json:"warning"`
	Info           int `json:"info"`
}

type diffPayload struct {
	Format         string               `json:"format"`
	Summary        diffSummary          `json:"summary"`
	AddedTables    []*compare.TableDiff `json:"addedTables,omitempty"`
	RemovedTables  []*compare.TableDiff `json:"removedTables,omitempty"`
	ModifiedTables []*compare.TableDiff `json:"modifiedTables,omitempty"`
}

func (jsonFormatter) FormatDiff(d *compare.SchemaDiff) (string, error) {
	payload := diffPayload{Format: string(FormatJSON)}
	if d != nil {
		payload.AddedTables = d.AddedTables
		payload.RemovedTables = d.RemovedTables
		payload.ModifiedTables = d.ModifiedTables
		payload.Summary = diffSummary{
			AddedTables:    len(d.AddedTables),
			RemovedTables:  len(d.RemovedTables),
			ModifiedTables: len(d.ModifiedTables),
			Critical:       d.CriticalCount,
			Warning:        d.WarningCount,
			Info:           d.InfoCount,
		}
	}
	return marshalJSON(payload)
}

func marshalJSON(payload diffPayload) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
