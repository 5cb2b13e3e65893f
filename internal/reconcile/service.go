// Package reconcile runs the lead reconciliation pipeline end to end: parse
// every input file, spread pooled spend, resolve milestones and join sales.
package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/rpattn/leadrecon/internal/aggregate"
	"github.com/rpattn/leadrecon/internal/allocation"
	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/ingestion"
	"github.com/rpattn/leadrecon/internal/logging"
	"github.com/rpattn/leadrecon/internal/matching"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// File is one uploaded input.
type File struct {
	Name string
	Data []byte
}

// Request describes the inputs of one run.
type Request struct {
	Leads        []File
	Sales        *File
	Dispositions *File
	PooledSpend  decimal.Decimal
	// JoinStrategy overrides the service default when set.
	JoinStrategy matching.JoinStrategy
}

// Result is the reconciled record set of one run.
type Result struct {
	RunID        uuid.UUID
	Records      []domain.Record
	Skipped      []domain.SkipNotice
	Months       []string
	Campaigns    []string
	JoinStrategy matching.JoinStrategy
}

// Config wires the pipeline stages.
type Config struct {
	VendorRules  ingestion.VendorRules
	Dispositions matching.DispositionConfig
	JoinStrategy matching.JoinStrategy
}

// DefaultConfig returns the built-in pipeline configuration.
func DefaultConfig() Config {
	return Config{
		VendorRules:  ingestion.DefaultVendorRules(),
		Dispositions: matching.DefaultDispositionConfig(),
		JoinStrategy: matching.JoinAuto,
	}
}

// Service coordinates one reconciliation run per call.
type Service struct {
	leads        *ingestion.LeadParser
	sales        *ingestion.SalesParser
	dispositions *ingestion.DispositionParser
	allocator    *allocation.Allocator
	matcher      *matching.DispositionMatcher
	joinStrategy matching.JoinStrategy
}

// NewService constructs a reconciliation service.
func NewService(cfg Config) *Service {
	return &Service{
		leads:        ingestion.NewLeadParser(cfg.VendorRules),
		sales:        ingestion.NewSalesParser(),
		dispositions: ingestion.NewDispositionParser(),
		allocator:    allocation.NewAllocator(cfg.VendorRules),
		matcher:      matching.NewDispositionMatcher(cfg.Dispositions),
		joinStrategy: cfg.JoinStrategy,
	}
}

// Run executes the pipeline. Files that cannot be used are reported in
// Result.Skipped and never abort the run. A run without any valid lead file
// or without a sales file fails with ErrInsufficientInput; the partial result
// still carries the skip notices.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	started := time.Now()
	result := Result{RunID: uuid.New(), Skipped: []domain.SkipNotice{}}
	logger := logging.FromContext(ctx).With().Str("run_id", result.RunID.String()).Logger()

	if req.Sales == nil {
		return result, &InsufficientInputError{Reason: "no sales file supplied"}
	}

	var leads []domain.Lead
	validFiles := 0
	for _, file := range req.Leads {
		parsed, err := s.leads.Parse(file.Name, file.Data)
		if err != nil {
			result.Skipped = append(result.Skipped, skipNotice(domain.FileKindLead, file.Name, err))
			logger.Warn().Err(err).Str("file", file.Name).Msg("skipping lead file")
			continue
		}
		validFiles++
		leads = append(leads, parsed...)
		logger.Debug().Str("file", file.Name).Int("leads", len(parsed)).Msg("parsed lead file")
	}
	if validFiles == 0 {
		return result, &InsufficientInputError{Reason: "no valid lead files"}
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	sales, err := s.sales.Parse(req.Sales.Name, req.Sales.Data)
	if err != nil {
		result.Skipped = append(result.Skipped, skipNotice(domain.FileKindSales, req.Sales.Name, err))
		logger.Warn().Err(err).Str("file", req.Sales.Name).Msg("skipping sales file")
		sales = nil
	}

	var dispositions []domain.Disposition
	if req.Dispositions != nil {
		dispositions, err = s.dispositions.Parse(req.Dispositions.Name, req.Dispositions.Data)
		if err != nil {
			result.Skipped = append(result.Skipped, skipNotice(domain.FileKindDisposition, req.Dispositions.Name, err))
			logger.Warn().Err(err).Str("file", req.Dispositions.Name).Msg("skipping disposition file")
			dispositions = nil
		}
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	pooled := s.allocator.Allocate(leads, req.PooledSpend)
	logger.Debug().Int("pooled_leads", pooled).Str("pooled_spend", req.PooledSpend.String()).Msg("allocated pooled spend")

	leads = s.matcher.Match(leads, dispositions)

	joinStrategy := req.JoinStrategy
	if joinStrategy == "" {
		joinStrategy = s.joinStrategy
	}
	records, effective := matching.NewIdentityResolver(joinStrategy).Join(leads, sales)
	s.matcher.Flag(records)

	result.Records = records
	result.JoinStrategy = effective
	result.Months = aggregate.Months(records)
	result.Campaigns = aggregate.Campaigns(records)

	logger.Info().
		Int("lead_files", validFiles).
		Int("leads", len(leads)).
		Int("sales", len(sales)).
		Int("dispositions", len(dispositions)).
		Int("records", len(records)).
		Int("skipped", len(result.Skipped)).
		Str("join", string(effective)).
		Dur("duration", time.Since(started)).
		Msg("reconciliation complete")

	return result, nil
}

func skipNotice(kind domain.FileKind, fileName string, err error) domain.SkipNotice {
	var fileErr *ingestion.FileError
	if errors.As(err, &fileErr) {
		return fileErr.Notice()
	}
	return domain.SkipNotice{FileName: fileName, Kind: kind, Reason: err.Error()}
}
