package ingestion

import (
	"strings"

	"github.com/rpattn/leadrecon/internal/domain"

	"github.com/shopspring/decimal"
)

// CostTransform rewrites the parsed per-row cost of a lead.
type CostTransform func(cost decimal.Decimal) decimal.Decimal

// VendorRule attaches vendor specific cost handling to the vendors it matches.
// Pooled vendors have their per-row cost discarded; the allocator later
// spreads a manually supplied total across them.
type VendorRule struct {
	Name      string
	Match     func(vendor string) bool
	Transform CostTransform
	Pooled    bool
}

// VendorRules is an ordered rule table; the first matching rule applies.
type VendorRules []VendorRule

var (
	centsThreshold = decimal.NewFromInt(100)
	centsDivisor   = decimal.NewFromInt(100)
)

// DefaultCentsVendors are vendor codes whose large costs are reported in cents.
var DefaultCentsVendors = []string{"eq"}

// DefaultPooledVendorPrefix selects the vendor billed as one pooled total.
const DefaultPooledVendorPrefix = "smartfinancial"

// DefaultVendorRules returns the built-in rule table.
func DefaultVendorRules() VendorRules {
	return NewVendorRules(DefaultCentsVendors, DefaultPooledVendorPrefix)
}

// NewVendorRules builds the rule table from configuration: a cents rule for
// the given codes and a pooled rule for the given prefix. Empty inputs omit
// the corresponding rule.
func NewVendorRules(centsVendors []string, pooledPrefix string) VendorRules {
	var rules VendorRules
	if prefix := strings.TrimSpace(pooledPrefix); prefix != "" {
		rules = append(rules, PooledRule(prefix))
	}
	if len(centsVendors) > 0 {
		rules = append(rules, CentsRule(centsVendors...))
	}
	return rules
}

// CentsRule divides costs above 100 by 100 for the listed vendor codes.
func CentsRule(codes ...string) VendorRule {
	return VendorRule{
		Name:      "cents:" + strings.Join(codes, ","),
		Match:     MatchCode(codes...),
		Transform: CentsToDollars,
	}
}

// PooledRule marks vendors whose name starts with prefix as pooled spend.
func PooledRule(prefix string) VendorRule {
	return VendorRule{
		Name:   "pooled:" + prefix,
		Match:  MatchPrefix(prefix),
		Pooled: true,
	}
}

// MatchCode matches vendors equal to one of codes, ignoring case.
func MatchCode(codes ...string) func(string) bool {
	return func(vendor string) bool {
		vendor = strings.TrimSpace(vendor)
		for _, code := range codes {
			if strings.EqualFold(vendor, strings.TrimSpace(code)) {
				return true
			}
		}
		return false
	}
}

// MatchPrefix matches vendors starting with prefix, ignoring case.
func MatchPrefix(prefix string) func(string) bool {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	return func(vendor string) bool {
		return prefix != "" && strings.HasPrefix(strings.ToLower(strings.TrimSpace(vendor)), prefix)
	}
}

// CentsToDollars treats costs above 100 as cents.
func CentsToDollars(cost decimal.Decimal) decimal.Decimal {
	if cost.GreaterThan(centsThreshold) {
		return cost.Div(centsDivisor)
	}
	return cost
}

// Lookup returns the first rule matching vendor.
func (r VendorRules) Lookup(vendor string) (VendorRule, bool) {
	for _, rule := range r {
		if rule.Match != nil && rule.Match(vendor) {
			return rule, true
		}
	}
	return VendorRule{}, false
}

// IsPooled reports whether vendor is billed as pooled spend.
func (r VendorRules) IsPooled(vendor string) bool {
	rule, ok := r.Lookup(vendor)
	return ok && rule.Pooled
}

// Apply rewrites the lead's cost according to its vendor's rule.
func (r VendorRules) Apply(lead *domain.Lead) {
	rule, ok := r.Lookup(lead.Vendor)
	if !ok {
		return
	}
	if rule.Pooled {
		lead.Cost = decimal.Zero
		return
	}
	if rule.Transform != nil {
		lead.Cost = rule.Transform(lead.Cost)
	}
}
