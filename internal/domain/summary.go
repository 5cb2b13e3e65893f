package domain

import "github.com/shopspring/decimal"

// Dimension is the grouping applied by the aggregator.
type Dimension string

const (
	DimensionCampaign Dimension = "campaign"
	DimensionVendor   Dimension = "vendor"
	DimensionAgent    Dimension = "agent"
	DimensionZip      Dimension = "zip"
)

// ParseDimension maps user input to a dimension, reporting false when unknown.
func ParseDimension(raw string) (Dimension, bool) {
	switch Dimension(raw) {
	case DimensionCampaign, DimensionVendor, DimensionAgent, DimensionZip:
		return Dimension(raw), true
	case "":
		return DimensionCampaign, true
	}
	return "", false
}

// Summary holds the metrics of one group of records.
type Summary struct {
	Key      string `json:"key" yaml:"key"`
	Vendor   string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Campaign string `json:"campaign,omitempty" yaml:"campaign,omitempty"`
	Agent    string `json:"agent,omitempty" yaml:"agent,omitempty"`
	Zip      string `json:"zip,omitempty" yaml:"zip,omitempty"`

	Leads     int `json:"leads" yaml:"leads"`
	Rows      int `json:"rows" yaml:"rows"`
	Policies  int `json:"policies" yaml:"policies"`
	Customers int `json:"customers" yaml:"customers"`
	Connects  int `json:"connects" yaml:"connects"`
	Quotes    int `json:"quotes" yaml:"quotes"`

	Premium decimal.Decimal `json:"premium" yaml:"premium"`
	Items   decimal.Decimal `json:"items" yaml:"items"`
	Spend   decimal.Decimal `json:"spend" yaml:"spend"`

	ConnectRate     float64 `json:"connect_rate" yaml:"connect_rate"`
	QuoteRate       float64 `json:"quote_rate" yaml:"quote_rate"`
	PolicyCloseRate float64 `json:"policy_close_rate" yaml:"policy_close_rate"`
	LeadCloseRate   float64 `json:"lead_close_rate" yaml:"lead_close_rate"`
	ItemCloseRate   float64 `json:"item_close_rate" yaml:"item_close_rate"`
	WarmCloseRate   float64 `json:"warm_close_rate" yaml:"warm_close_rate"`
	SpendToEarn     float64 `json:"spend_to_earn" yaml:"spend_to_earn"`
	CostPerLead     float64 `json:"cost_per_lead" yaml:"cost_per_lead"`
	CostPerPolicy   float64 `json:"cost_per_policy" yaml:"cost_per_policy"`
	CostPerCustomer float64 `json:"cost_per_customer" yaml:"cost_per_customer"`
	CostPerItem     float64 `json:"cost_per_item" yaml:"cost_per_item"`
}

// Totals is the headline KPI block over a filtered record set.
type Totals struct {
	Premium     decimal.Decimal `json:"premium" yaml:"premium"`
	Spend       decimal.Decimal `json:"spend" yaml:"spend"`
	SpendToEarn float64         `json:"spend_to_earn" yaml:"spend_to_earn"`
	Leads       int             `json:"leads" yaml:"leads"`
	ConnectRate float64         `json:"connect_rate" yaml:"connect_rate"`
	QuoteRate   float64         `json:"quote_rate" yaml:"quote_rate"`
	CloseRate   float64         `json:"close_rate" yaml:"close_rate"`
}
