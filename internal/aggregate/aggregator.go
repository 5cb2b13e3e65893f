// Package aggregate groups reconciled records and derives performance metrics.
package aggregate

import (
	"cmp"
	"slices"

	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/normalize"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Query selects the grouping, filters and ordering of a summary.
type Query struct {
	Dimension domain.Dimension
	Month     string
	Campaign  string
	Sort      domain.SummarySort
}

// Aggregator turns reconciled records into per-group summaries.
type Aggregator struct{}

// NewAggregator creates an aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Filter keeps the records inside the query's month and campaign. Empty
// filters keep everything.
func (a *Aggregator) Filter(records []domain.Record, q Query) []domain.Record {
	filtered := make([]domain.Record, 0, len(records))
	for _, record := range records {
		if q.Month != "" && record.Month != q.Month {
			continue
		}
		if q.Campaign != "" && !normalize.SameLabel(record.Campaign, q.Campaign) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// Summarize filters records, groups them by the query's dimension and returns
// one summary per group. Agent and ZIP groupings skip records without a value.
func (a *Aggregator) Summarize(records []domain.Record, q Query) []domain.Summary {
	dimension := q.Dimension
	if dimension == "" {
		dimension = domain.DimensionCampaign
	}

	groups := make(map[string]*group)
	for _, record := range a.Filter(records, q) {
		summary, ok := groupFor(dimension, record)
		if !ok {
			continue
		}
		g, exists := groups[summary.Key]
		if !exists {
			g = newGroup(summary)
			groups[summary.Key] = g
		}
		g.add(record)
	}

	summaries := make([]domain.Summary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, g.summary())
	}
	sortSummaries(summaries, q.Sort)
	return summaries
}

// Totals computes the headline KPIs over the filtered records.
func (a *Aggregator) Totals(records []domain.Record, q Query) domain.Totals {
	g := newGroup(domain.Summary{})
	for _, record := range a.Filter(records, q) {
		g.add(record)
	}
	summary := g.summary()
	return domain.Totals{
		Premium:     summary.Premium,
		Spend:       summary.Spend,
		SpendToEarn: summary.SpendToEarn,
		Leads:       summary.Leads,
		ConnectRate: summary.ConnectRate,
		QuoteRate:   summary.QuoteRate,
		CloseRate:   summary.PolicyCloseRate,
	}
}

// Months lists the distinct reporting months, oldest first.
func Months(records []domain.Record) []string {
	return distinctSorted(records, func(r domain.Record) string { return r.Month })
}

// Campaigns lists the distinct campaign names in alphabetical order.
func Campaigns(records []domain.Record) []string {
	return distinctSorted(records, func(r domain.Record) string { return r.Campaign })
}

func distinctSorted(records []domain.Record, value func(domain.Record) string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, record := range records {
		v := value(record)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

func groupFor(dimension domain.Dimension, record domain.Record) (domain.Summary, bool) {
	switch dimension {
	case domain.DimensionVendor:
		return domain.Summary{Key: record.Vendor, Vendor: record.Vendor}, true
	case domain.DimensionAgent:
		if record.AssignedAgent == "" {
			return domain.Summary{}, false
		}
		return domain.Summary{Key: record.AssignedAgent, Agent: record.AssignedAgent}, true
	case domain.DimensionZip:
		if record.Zip == "" {
			return domain.Summary{}, false
		}
		return domain.Summary{Key: record.Zip, Zip: record.Zip}, true
	default:
		return domain.Summary{
			Key:      record.Vendor + "_" + record.Campaign,
			Vendor:   record.Vendor,
			Campaign: record.Campaign,
		}, true
	}
}

// group accumulates one summary. Leads, connects, quotes and customers are
// distinct underlying leads; spend is counted once per lead row so fan-out
// rows do not repeat it; premium and items add up every matched sales row.
type group struct {
	base      domain.Summary
	rows      int
	leads     map[string]struct{}
	connects  map[string]struct{}
	quotes    map[string]struct{}
	customers map[string]struct{}
	policies  map[string]struct{}
	costed    map[uuid.UUID]struct{}
	premium   decimal.Decimal
	items     decimal.Decimal
	spend     decimal.Decimal
}

func newGroup(base domain.Summary) *group {
	return &group{
		base:      base,
		leads:     make(map[string]struct{}),
		connects:  make(map[string]struct{}),
		quotes:    make(map[string]struct{}),
		customers: make(map[string]struct{}),
		policies:  make(map[string]struct{}),
		costed:    make(map[uuid.UUID]struct{}),
		premium:   decimal.Zero,
		items:     decimal.Zero,
		spend:     decimal.Zero,
	}
}

func (g *group) add(record domain.Record) {
	g.rows++
	key := record.DistinctKey()
	g.leads[key] = struct{}{}
	if record.IsConnected {
		g.connects[key] = struct{}{}
	}
	if record.IsQuoted {
		g.quotes[key] = struct{}{}
	}
	if record.IsSold {
		g.customers[key] = struct{}{}
	}
	if record.PolicyNumber != "" {
		g.policies[record.PolicyNumber] = struct{}{}
	}
	if _, ok := g.costed[record.ID]; !ok {
		g.costed[record.ID] = struct{}{}
		g.spend = g.spend.Add(record.Cost)
	}
	g.premium = g.premium.Add(record.Premium)
	g.items = g.items.Add(record.Items)
}

func (g *group) summary() domain.Summary {
	s := g.base
	s.Rows = g.rows
	s.Leads = len(g.leads)
	s.Connects = len(g.connects)
	s.Quotes = len(g.quotes)
	s.Customers = len(g.customers)
	s.Policies = len(g.policies)
	s.Premium = g.premium
	s.Items = g.items
	s.Spend = g.spend

	leads := float64(s.Leads)
	policies := float64(s.Policies)
	premium := g.premium.InexactFloat64()
	items := g.items.InexactFloat64()
	spend := g.spend.InexactFloat64()

	s.ConnectRate = ratio(float64(s.Connects), leads)
	s.QuoteRate = ratio(float64(s.Quotes), leads)
	s.PolicyCloseRate = ratio(policies, leads)
	s.LeadCloseRate = ratio(float64(s.Customers), leads)
	s.ItemCloseRate = ratio(items, leads)
	s.WarmCloseRate = ratio(policies, float64(s.Quotes))
	s.SpendToEarn = ratio(premium, spend)
	s.CostPerLead = ratio(spend, leads)
	s.CostPerPolicy = ratio(spend, policies)
	s.CostPerCustomer = ratio(spend, float64(s.Customers))
	s.CostPerItem = ratio(spend, items)
	return s
}

// ratio divides, returning 0 when the denominator is 0.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func sortSummaries(summaries []domain.Summary, sort domain.SummarySort) {
	field := sort.Field
	if field == "" {
		field = domain.SummarySortFieldKey
	}
	direction := sort.Direction
	if direction == "" {
		direction = domain.SortDirectionAsc
		if field != domain.SummarySortFieldKey {
			direction = domain.SortDirectionDesc
		}
	}

	slices.SortStableFunc(summaries, func(a, b domain.Summary) int {
		order := 0
		if field != domain.SummarySortFieldKey {
			order = cmp.Compare(metric(a, field), metric(b, field))
			if direction == domain.SortDirectionDesc {
				order = -order
			}
		} else if direction == domain.SortDirectionDesc {
			return cmp.Compare(b.Key, a.Key)
		}
		if order != 0 {
			return order
		}
		return cmp.Compare(a.Key, b.Key)
	})
}

func metric(s domain.Summary, field domain.SummarySortField) float64 {
	switch field {
	case domain.SummarySortFieldLeads:
		return float64(s.Leads)
	case domain.SummarySortFieldPolicies:
		return float64(s.Policies)
	case domain.SummarySortFieldPremium:
		return s.Premium.InexactFloat64()
	case domain.SummarySortFieldSpend:
		return s.Spend.InexactFloat64()
	case domain.SummarySortFieldConnectRate:
		return s.ConnectRate
	case domain.SummarySortFieldQuoteRate:
		return s.QuoteRate
	case domain.SummarySortFieldPolicyCloseRate:
		return s.PolicyCloseRate
	case domain.SummarySortFieldSpendToEarn:
		return s.SpendToEarn
	case domain.SummarySortFieldCostPerLead:
		return s.CostPerLead
	default:
		return 0
	}
}
