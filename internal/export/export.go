// Package export renders reconciliation reports as JSON, YAML, CSV or a
// terminal table.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rpattn/leadrecon/internal/domain"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// ParseFormat validates a format name. An empty value selects JSON.
func ParseFormat(raw string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(raw)))
	switch format {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatCSV, FormatTable:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: json, yaml, csv, table", raw)
	}
}

// Report is the outcome of one run as handed to presentation layers.
type Report struct {
	RunID        uuid.UUID           `json:"runId" yaml:"runId"`
	JoinStrategy string              `json:"joinStrategy,omitempty" yaml:"joinStrategy,omitempty"`
	Dimension    domain.Dimension    `json:"dimension" yaml:"dimension"`
	Skipped      []domain.SkipNotice `json:"skipped" yaml:"skipped"`
	Months       []string            `json:"months" yaml:"months"`
	Campaigns    []string            `json:"campaigns" yaml:"campaigns"`
	Totals       domain.Totals       `json:"totals" yaml:"totals"`
	Summaries    []domain.Summary    `json:"summaries" yaml:"summaries"`
	Records      []domain.Record     `json:"records,omitempty" yaml:"records,omitempty"`
}

// Write renders report in format. CSV and table output carry the records
// when the report has them, otherwise the summaries.
func Write(w io.Writer, format Format, report Report) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, report)
	case FormatYAML:
		return WriteYAML(w, report)
	case FormatCSV:
		if len(report.Records) > 0 {
			return WriteRecordsCSV(w, report.Records)
		}
		return WriteSummariesCSV(w, report.Summaries)
	case FormatTable:
		if len(report.Records) > 0 {
			return WriteTable(w, RecordColumns, recordRows(report.Records))
		}
		return WriteTable(w, SummaryColumns, summaryRows(report.Summaries))
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML encodes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	data, err := yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}
