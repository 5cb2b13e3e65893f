package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpattn/leadrecon/internal/aggregate"
	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/export"
	"github.com/rpattn/leadrecon/internal/matching"
	"github.com/rpattn/leadrecon/internal/reconcile"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type reconcileOptions struct {
	leads        []string
	sales        string
	dispositions string
	pooledSpend  string
	join         string
	dimension    string
	month        string
	campaign     string
	sortBy       string
	output       string
	records      bool
}

func newReconcileCmd(root *rootOptions) *cobra.Command {
	opts := &reconcileOptions{}
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation over local files",
		Example: `  leadrecon reconcile --leads EQ_Spring.csv --leads SmartFinancial_Auto.csv \
    --sales sales.xlsx --dispositions dispositions.csv --pooled-spend 500 --dimension agent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.leads, "leads", nil, "vendor lead file named VENDOR_CAMPAIGN.csv (repeatable)")
	flags.StringVar(&opts.sales, "sales", "", "sales ledger (.csv or .xlsx)")
	flags.StringVar(&opts.dispositions, "dispositions", "", "disposition log (.csv or .xlsx)")
	flags.StringVar(&opts.pooledSpend, "pooled-spend", "0", "total spend spread across pooled vendor leads")
	flags.StringVar(&opts.join, "join", "", "sales join key: auto, email or customer (default from config)")
	flags.StringVar(&opts.dimension, "dimension", string(domain.DimensionCampaign), "group by campaign, vendor, agent or zip")
	flags.StringVar(&opts.month, "month", "", "only records created in this month (YYYY-MM)")
	flags.StringVar(&opts.campaign, "campaign", "", "only records of this campaign")
	flags.StringVar(&opts.sortBy, "sort-by", "", "sort summaries by key or a metric, optionally :asc or :desc")
	flags.StringVarP(&opts.output, "output", "o", string(export.FormatJSON), "output format: json, yaml, csv or table")
	flags.BoolVar(&opts.records, "records", false, "include reconciled records in the output")
	_ = cmd.MarkFlagRequired("leads")
	_ = cmd.MarkFlagRequired("sales")

	return cmd
}

func runReconcile(cmd *cobra.Command, root *rootOptions, opts *reconcileOptions) error {
	format, err := export.ParseFormat(opts.output)
	if err != nil {
		return err
	}
	dimension, ok := domain.ParseDimension(opts.dimension)
	if !ok {
		return fmt.Errorf("invalid dimension %q", opts.dimension)
	}
	sort, ok := domain.ParseSummarySort(opts.sortBy)
	if !ok {
		return fmt.Errorf("invalid sort %q", opts.sortBy)
	}
	spend, err := decimal.NewFromString(opts.pooledSpend)
	if err != nil {
		return fmt.Errorf("invalid pooled spend %q: %w", opts.pooledSpend, err)
	}

	req := reconcile.Request{PooledSpend: spend}
	if opts.join != "" {
		if req.JoinStrategy, err = matching.ParseJoinStrategy(opts.join); err != nil {
			return err
		}
	}
	for _, path := range opts.leads {
		file, err := readFile(path)
		if err != nil {
			return err
		}
		req.Leads = append(req.Leads, file)
	}
	sales, err := readFile(opts.sales)
	if err != nil {
		return err
	}
	req.Sales = &sales
	if opts.dispositions != "" {
		dispositions, err := readFile(opts.dispositions)
		if err != nil {
			return err
		}
		req.Dispositions = &dispositions
	}

	serviceCfg, err := root.cfg.ServiceConfig()
	if err != nil {
		return err
	}
	result, err := reconcile.NewService(serviceCfg).Run(cmd.Context(), req)
	if err != nil {
		for _, notice := range result.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s file %s: %s\n", notice.Kind, notice.FileName, notice.Reason)
		}
		return err
	}

	query := aggregate.Query{Dimension: dimension, Month: opts.month, Campaign: opts.campaign, Sort: sort}
	report := reconcile.NewReport(aggregate.NewAggregator(), result, query, opts.records)
	return export.Write(cmd.OutOrStdout(), format, report)
}

func readFile(path string) (reconcile.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return reconcile.File{}, fmt.Errorf("read %s: %w", path, err)
	}
	return reconcile.File{Name: filepath.Base(path), Data: data}, nil
}
