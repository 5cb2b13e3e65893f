package main

import (
	"github.com/rpattn/leadrecon/internal/config"
	"github.com/rpattn/leadrecon/internal/logging"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configDir string
	logLevel  string
	cfg       config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "leadrecon",
		Short: "Lead, disposition and sales reconciliation",
		Long: `leadrecon joins vendor lead exports with a disposition log and a sales
ledger, spreads pooled spend and reports spend, connect and close metrics by
campaign, vendor, agent or ZIP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configDir)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Log.Level = opts.logLevel
			}
			opts.cfg = cfg

			logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
			logging.SetDefault(logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), &logger))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "directory holding config.yaml and .env")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newReconcileCmd(opts))
	return cmd
}
