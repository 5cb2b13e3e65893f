package ingestion

import (
	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/normalize"
)

// SalesParser normalizes the sales/policy ledger.
type SalesParser struct {
	columns []ColumnRule
}

// NewSalesParser creates a sales ledger parser.
func NewSalesParser() *SalesParser {
	return &SalesParser{columns: SalesColumnRules}
}

// Parse reads a CSV or XLSX ledger. Missing policy, premium, items or agent
// columns leave their defaults; unparsable premium and items become zero.
// Without a customer value the customer key is built from first and last name.
func (p *SalesParser) Parse(fileName string, payload []byte) ([]domain.Sale, error) {
	table, err := readTable(fileName, payload)
	if err != nil {
		return nil, newFileError(domain.FileKindSales, fileName, err)
	}

	columns := ResolveColumns(table.Headers, p.columns)
	sales := make([]domain.Sale, 0, len(table.Rows))
	for _, row := range table.Rows {
		customer := normalize.Name(table.Cell(row, columns.Index(FieldCustomer)))
		if customer == "" {
			customer = normalize.CustomerKey(
				table.Cell(row, columns.Index(FieldFirstName)),
				table.Cell(row, columns.Index(FieldLastName)),
			)
		}
		sales = append(sales, domain.Sale{
			Email:         normalize.Email(table.Cell(row, columns.Index(FieldEmail))),
			Customer:      customer,
			PolicyNumber:  table.Cell(row, columns.Index(FieldPolicy)),
			Premium:       normalize.NonNegativeMoney(table.Cell(row, columns.Index(FieldPremium))),
			Items:         normalize.NonNegativeMoney(table.Cell(row, columns.Index(FieldItems))),
			AssignedAgent: normalize.Label(table.Cell(row, columns.Index(FieldAgent))),
		})
	}
	return sales, nil
}
