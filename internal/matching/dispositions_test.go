package matching

import (
	"testing"

	"github.com/rpattn/leadrecon/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lead(phone, first, last string) domain.Lead {
	l := domain.NewLead("V", "C", "V_C.csv")
	l.Phone = phone
	l.FirstName = first
	l.LastName = last
	return l
}

func TestDispositionMatcherPhoneThenName(t *testing.T) {
	matcher := NewDispositionMatcher(DefaultDispositionConfig())
	leads := []domain.Lead{
		lead("5551234567", "JANE", "DOE"),
		lead("5550000000", "JOHN", "SMITH"),
		lead("", "ANN", ""),
	}
	dispositions := []domain.Disposition{
		{Phone: "5551234567", FirstName: "X", LastName: "Y", Milestone: "Quoted"},
		{Phone: "5559999999", FirstName: "JOHN", LastName: "SMITH", Milestone: "Contacted"},
		{FirstName: "ANN", LastName: "", Milestone: "Sold"},
	}

	matched := matcher.Match(leads, dispositions)
	require.Len(t, matched, 3)

	assert.Equal(t, "Quoted", matched[0].Milestone)
	assert.Equal(t, domain.MilestoneSourcePhone, matched[0].MilestoneSource)
	assert.Equal(t, "Contacted", matched[1].Milestone)
	assert.Equal(t, domain.MilestoneSourceName, matched[1].MilestoneSource)
	assert.False(t, matched[2].HasMilestone(), "partial names never match")

	assert.Empty(t, leads[0].Milestone, "input leads are not mutated")
}

func TestDispositionMatcherExcludesReturned(t *testing.T) {
	matcher := NewDispositionMatcher(DefaultDispositionConfig())
	leads := []domain.Lead{lead("5551234567", "JANE", "DOE")}
	dispositions := []domain.Disposition{
		{Phone: "5551234567", FirstName: "JANE", LastName: "DOE", Milestone: "Sold", Folder: "!Returned"},
		{FirstName: "JANE", LastName: "DOE", Milestone: "Sold", Folder: "Returned!"},
	}

	matched := matcher.Match(leads, dispositions)
	assert.False(t, matched[0].HasMilestone())
}

func TestDispositionMatcherDeterministicDuplicates(t *testing.T) {
	matcher := NewDispositionMatcher(DefaultDispositionConfig())
	leads := []domain.Lead{lead("5551234567", "", ""), lead("5551234567", "", "")}
	dispositions := []domain.Disposition{
		{Phone: "5551234567", Milestone: "Contacted"},
		{Phone: "5551234567", Milestone: "Sold"},
	}

	matched := matcher.Match(leads, dispositions)
	assert.Equal(t, "Contacted", matched[0].Milestone)
	assert.Equal(t, matched[0].Milestone, matched[1].Milestone)
}

func TestDispositionMatcherFlags(t *testing.T) {
	matcher := NewDispositionMatcher(DefaultDispositionConfig())
	records := []domain.Record{
		{Lead: domain.Lead{Milestone: "quoted"}},
		{Lead: domain.Lead{Milestone: " Not  interested "}},
		{Lead: domain.Lead{Milestone: "Voicemail"}},
		{},
	}

	matcher.Flag(records)

	assert.True(t, records[0].IsConnected)
	assert.True(t, records[0].IsQuoted)
	assert.True(t, records[1].IsConnected)
	assert.False(t, records[1].IsQuoted)
	assert.False(t, records[2].IsConnected)
	assert.False(t, records[3].IsConnected)
}

func TestDispositionMatcherCustomMarker(t *testing.T) {
	matcher := NewDispositionMatcher(DispositionConfig{ReturnedMarker: "#"})
	assert.True(t, matcher.IsReturned(domain.Disposition{Folder: "#old"}))
	assert.False(t, matcher.IsReturned(domain.Disposition{Folder: "!old"}))
	assert.False(t, NewDispositionMatcher(DispositionConfig{}).IsReturned(domain.Disposition{Folder: "!old"}))
}
