package domain

import "github.com/shopspring/decimal"

// MonthLayout formats the reporting period of a record.
const MonthLayout = "2006-01"

// SalesMatch names the key that joined a lead to a sales row.
type SalesMatch string

const (
	SalesMatchNone     SalesMatch = ""
	SalesMatchEmail    SalesMatch = "email"
	SalesMatchCustomer SalesMatch = "customer"
)

// Record is a lead after disposition matching and the sales join. A lead that
// matched several sales rows appears once per matched row.
type Record struct {
	Lead `yaml:",inline"`

	PolicyNumber   string          `json:"policy_number,omitempty" yaml:"policy_number,omitempty"`
	Premium        decimal.Decimal `json:"premium" yaml:"premium"`
	Items          decimal.Decimal `json:"items" yaml:"items"`
	AssignedAgent  string          `json:"assigned_agent,omitempty" yaml:"assigned_agent,omitempty"`
	SalesMatchedBy SalesMatch      `json:"sales_matched_by,omitempty" yaml:"sales_matched_by,omitempty"`

	IsConnected bool   `json:"is_connected" yaml:"is_connected"`
	IsQuoted    bool   `json:"is_quoted" yaml:"is_quoted"`
	IsSold      bool   `json:"is_sold" yaml:"is_sold"`
	Month       string `json:"month,omitempty" yaml:"month,omitempty"`
}

// NewRecord wraps a lead with default sales fields.
func NewRecord(lead Lead) Record {
	record := Record{
		Lead:    lead,
		Premium: decimal.Zero,
		Items:   decimal.Zero,
	}
	if lead.CreatedAt != nil {
		record.Month = lead.CreatedAt.Format(MonthLayout)
	}
	return record
}

// WithSale returns a copy of the record carrying the sale's fields.
func (r Record) WithSale(sale Sale, matchedBy SalesMatch) Record {
	r.PolicyNumber = sale.PolicyNumber
	r.Premium = sale.Premium
	r.Items = sale.Items
	r.AssignedAgent = sale.AssignedAgent
	r.SalesMatchedBy = matchedBy
	r.IsSold = sale.PolicyNumber != ""
	return r
}
