package domain

import "strings"

// SortDirection represents ordering direction for sortable fields.
type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// SummarySortField enumerates metrics summaries can be ordered by.
type SummarySortField string

const (
	SummarySortFieldKey             SummarySortField = "key"
	SummarySortFieldLeads           SummarySortField = "leads"
	SummarySortFieldPolicies        SummarySortField = "policies"
	SummarySortFieldPremium         SummarySortField = "premium"
	SummarySortFieldSpend           SummarySortField = "spend"
	SummarySortFieldConnectRate     SummarySortField = "connect_rate"
	SummarySortFieldQuoteRate       SummarySortField = "quote_rate"
	SummarySortFieldPolicyCloseRate SummarySortField = "policy_close_rate"
	SummarySortFieldSpendToEarn     SummarySortField = "spend_to_earn"
	SummarySortFieldCostPerLead     SummarySortField = "cost_per_lead"
)

// SummarySort captures ordering preferences for summary listings.
type SummarySort struct {
	Field     SummarySortField
	Direction SortDirection
}

var summarySortFields = map[SummarySortField]struct{}{
	SummarySortFieldKey:             {},
	SummarySortFieldLeads:           {},
	SummarySortFieldPolicies:        {},
	SummarySortFieldPremium:         {},
	SummarySortFieldSpend:           {},
	SummarySortFieldConnectRate:     {},
	SummarySortFieldQuoteRate:       {},
	SummarySortFieldPolicyCloseRate: {},
	SummarySortFieldSpendToEarn:     {},
	SummarySortFieldCostPerLead:     {},
}

// ParseSummarySort reads "field" or "field:direction". The key sorts ascending
// and metrics descending unless a direction is given. An empty value sorts by key.
func ParseSummarySort(raw string) (SummarySort, bool) {
	field, direction, hasDirection := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), ":")
	sort := SummarySort{Field: SummarySortField(field)}
	if sort.Field == "" {
		sort.Field = SummarySortFieldKey
	}
	if _, ok := summarySortFields[sort.Field]; !ok {
		return SummarySort{}, false
	}

	switch SortDirection(direction) {
	case SortDirectionAsc, SortDirectionDesc:
		sort.Direction = SortDirection(direction)
	default:
		if hasDirection {
			return SummarySort{}, false
		}
		sort.Direction = SortDirectionDesc
		if sort.Field == SummarySortFieldKey {
			sort.Direction = SortDirectionAsc
		}
	}
	return sort, true
}
