package matching

import (
	"strings"

	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/normalize"
)

// DefaultReturnedMarker flags disposition rows filed under a returned folder.
const DefaultReturnedMarker = "!"

var (
	// DefaultConnectedMilestones indicate contact was made with the lead.
	DefaultConnectedMilestones = []string{"Contacted", "Quoted", "Not interested", "Xdate", "Sold"}
	// DefaultQuotedMilestones indicate the lead received a quote.
	DefaultQuotedMilestones = []string{"Quoted"}
)

// DispositionConfig tunes disposition matching.
type DispositionConfig struct {
	ReturnedMarker      string
	ConnectedMilestones []string
	QuotedMilestones    []string
}

// DefaultDispositionConfig returns the built-in matching configuration.
func DefaultDispositionConfig() DispositionConfig {
	return DispositionConfig{
		ReturnedMarker:      DefaultReturnedMarker,
		ConnectedMilestones: DefaultConnectedMilestones,
		QuotedMilestones:    DefaultQuotedMilestones,
	}
}

// DispositionMatcher resolves lead milestones by phone, then by name.
type DispositionMatcher struct {
	returnedMarker string
	connected      map[string]struct{}
	quoted         map[string]struct{}
}

// NewDispositionMatcher creates a matcher from cfg.
func NewDispositionMatcher(cfg DispositionConfig) *DispositionMatcher {
	return &DispositionMatcher{
		returnedMarker: cfg.ReturnedMarker,
		connected:      milestoneSet(cfg.ConnectedMilestones),
		quoted:         milestoneSet(cfg.QuotedMilestones),
	}
}

func milestoneSet(milestones []string) map[string]struct{} {
	set := make(map[string]struct{}, len(milestones))
	for _, milestone := range milestones {
		if key := milestoneKey(milestone); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func milestoneKey(milestone string) string {
	return strings.ToLower(normalize.Label(milestone))
}

// IsReturned reports whether the disposition sits in a returned folder.
func (m *DispositionMatcher) IsReturned(d domain.Disposition) bool {
	return m.returnedMarker != "" && strings.Contains(d.Folder, m.returnedMarker)
}

// Match returns a copy of leads with milestones filled in. Returned rows are
// discarded first. Each phone and each FIRST|LAST key maps to the first
// remaining disposition carrying it. Unmatched leads keep an empty milestone.
func (m *DispositionMatcher) Match(leads []domain.Lead, dispositions []domain.Disposition) []domain.Lead {
	eligible := make([]domain.Disposition, 0, len(dispositions))
	for _, d := range dispositions {
		if m.IsReturned(d) {
			continue
		}
		eligible = append(eligible, d)
	}

	milestone := func(d domain.Disposition) string { return d.Milestone }
	resolver := NewResolver(
		KeyStrategy[string]{
			Name:    string(domain.MilestoneSourcePhone),
			LeadKey: func(l domain.Lead) string { return l.Phone },
			Lookup:  FirstWins(eligible, func(d domain.Disposition) string { return d.Phone }, milestone),
		},
		KeyStrategy[string]{
			Name:    string(domain.MilestoneSourceName),
			LeadKey: func(l domain.Lead) string { return normalize.NameKey(l.FirstName, l.LastName) },
			Lookup: FirstWins(eligible, func(d domain.Disposition) string {
				return normalize.NameKey(d.FirstName, d.LastName)
			}, milestone),
		},
	)

	matched := make([]domain.Lead, len(leads))
	for idx, lead := range leads {
		if value, source, ok := resolver.Resolve(lead); ok {
			lead.Milestone = value
			lead.MilestoneSource = domain.MilestoneSource(source)
		}
		matched[idx] = lead
	}
	return matched
}

// IsConnected reports whether milestone counts as a connect.
func (m *DispositionMatcher) IsConnected(milestone string) bool {
	_, ok := m.connected[milestoneKey(milestone)]
	return ok
}

// IsQuoted reports whether milestone counts as a quote.
func (m *DispositionMatcher) IsQuoted(milestone string) bool {
	_, ok := m.quoted[milestoneKey(milestone)]
	return ok
}

// Flag sets the connect and quote flags of every record from its milestone.
func (m *DispositionMatcher) Flag(records []domain.Record) {
	for idx := range records {
		records[idx].IsConnected = m.IsConnected(records[idx].Milestone)
		records[idx].IsQuoted = m.IsQuoted(records[idx].Milestone)
	}
}
