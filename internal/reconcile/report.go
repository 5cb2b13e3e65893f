package reconcile

import (
	"github.com/rpattn/leadrecon/internal/aggregate"
	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/export"
)

// NewReport summarizes result under q. Records are attached, filtered the same
// way as the summaries, only when includeRecords is set.
func NewReport(aggregator *aggregate.Aggregator, result Result, q aggregate.Query, includeRecords bool) export.Report {
	if q.Dimension == "" {
		q.Dimension = domain.DimensionCampaign
	}
	report := export.Report{
		RunID:        result.RunID,
		JoinStrategy: string(result.JoinStrategy),
		Dimension:    q.Dimension,
		Skipped:      result.Skipped,
		Months:       result.Months,
		Campaigns:    result.Campaigns,
		Totals:       aggregator.Totals(result.Records, q),
		Summaries:    aggregator.Summarize(result.Records, q),
	}
	if includeRecords {
		report.Records = aggregator.Filter(result.Records, q)
	}
	return report
}
