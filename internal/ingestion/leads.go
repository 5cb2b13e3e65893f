// Package ingestion normalizes vendor lead exports, the sales ledger and the
// disposition log into domain records.
package ingestion

import (
	"errors"
	"fmt"

	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/normalize"
	"github.com/rpattn/leadrecon/internal/tabular"
)

// LeadParser normalizes one vendor lead file.
type LeadParser struct {
	rules   VendorRules
	columns []ColumnRule
}

// NewLeadParser creates a parser applying the given vendor rules.
func NewLeadParser(rules VendorRules) *LeadParser {
	return &LeadParser{rules: rules, columns: LeadColumnRules}
}

// Rules returns the vendor rule table in use.
func (p *LeadParser) Rules() VendorRules {
	return p.rules
}

// Parse reads fileName's payload into leads. Any failure is a *FileError and
// means the whole file is excluded.
func (p *LeadParser) Parse(fileName string, payload []byte) ([]domain.Lead, error) {
	vendor, campaign, err := SplitVendorCampaign(fileName)
	if err != nil {
		return nil, newFileError(domain.FileKindLead, fileName, err)
	}

	table, err := readTable(fileName, payload)
	if err != nil {
		return nil, newFileError(domain.FileKindLead, fileName, err)
	}

	columns := ResolveColumns(table.Headers, p.columns)
	leads := make([]domain.Lead, 0, len(table.Rows))
	for _, row := range table.Rows {
		lead := domain.NewLead(vendor, campaign, fileName)
		lead.Email = normalize.Email(table.Cell(row, columns.Index(FieldEmail)))
		lead.FirstName = normalize.Name(table.Cell(row, columns.Index(FieldFirstName)))
		lead.LastName = normalize.Name(table.Cell(row, columns.Index(FieldLastName)))
		lead.Phone = normalize.Phone(table.Cell(row, columns.Index(FieldPhone)))
		lead.Zip = table.Cell(row, columns.Index(FieldZip))
		lead.Cost = normalize.NonNegativeMoney(table.Cell(row, columns.Index(FieldCost)))
		if ts, err := tabular.ParseTimestamp(table.Cell(row, columns.Index(FieldCreatedAt))); err == nil {
			lead.CreatedAt = &ts
		}
		p.rules.Apply(&lead)
		leads = append(leads, lead)
	}
	return leads, nil
}

// readTable decodes a payload, mapping decoder failures onto the ingestion
// sentinels.
func readTable(fileName string, payload []byte) (tabular.Table, error) {
	if len(payload) == 0 {
		return tabular.Table{}, ErrEmptyFile
	}
	table, err := tabular.Read(fileName, payload)
	switch {
	case errors.Is(err, tabular.ErrNoRows):
		return tabular.Table{}, ErrEmptyFile
	case err != nil:
		return tabular.Table{}, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	if len(table.Rows) == 0 {
		return tabular.Table{}, fmt.Errorf("%w: header row only", ErrEmptyFile)
	}
	return table, nil
}
