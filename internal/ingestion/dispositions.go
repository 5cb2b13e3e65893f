package ingestion

import (
	"fmt"

	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/normalize"
)

// DispositionParser reads the outreach disposition log.
type DispositionParser struct {
	columns []ColumnRule
}

// NewDispositionParser creates a disposition log parser.
func NewDispositionParser() *DispositionParser {
	return &DispositionParser{columns: DispositionColumnRules}
}

// Parse reads the log. The file must carry a milestone column and at least one
// key (phone or first+last name). Rows without a milestone are dropped since
// they can never inform a lead.
func (p *DispositionParser) Parse(fileName string, payload []byte) ([]domain.Disposition, error) {
	table, err := readTable(fileName, payload)
	if err != nil {
		return nil, newFileError(domain.FileKindDisposition, fileName, err)
	}

	columns := ResolveColumns(table.Headers, p.columns)
	hasNames := columns.Has(FieldFirstName) && columns.Has(FieldLastName)
	if !columns.Has(FieldMilestone) || (!columns.Has(FieldPhone) && !hasNames) {
		return nil, newFileError(domain.FileKindDisposition, fileName,
			fmt.Errorf("%w: need a milestone column and a phone or first/last name column", ErrMissingColumns))
	}

	dispositions := make([]domain.Disposition, 0, len(table.Rows))
	for _, row := range table.Rows {
		milestone := normalize.Label(table.Cell(row, columns.Index(FieldMilestone)))
		if milestone == "" {
			continue
		}
		dispositions = append(dispositions, domain.Disposition{
			Phone:     normalize.Phone(table.Cell(row, columns.Index(FieldPhone))),
			FirstName: normalize.Name(table.Cell(row, columns.Index(FieldFirstName))),
			LastName:  normalize.Name(table.Cell(row, columns.Index(FieldLastName))),
			Milestone: milestone,
			Folder:    table.Cell(row, columns.Index(FieldFolder)),
		})
	}
	return dispositions, nil
}
