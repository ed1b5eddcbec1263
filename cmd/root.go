// Package cmd wires the leadscout CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/config"
	"github.com/leadscout/leadscout/internal/logging"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadscout",
		Short: "Discover, score, and capture sales leads from the open web.",
		Long: `leadscout crawls seed URLs politely, extracts contact and fit signals
from company pages, scores each candidate, and exports the ranked results.
The serve command runs the companion scoring and capture service the hunter
can score against.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional; defaults apply when unset)")

	cmd.AddCommand(newHuntCmd())
	cmd.AddCommand(newPondsCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger every subcommand shares.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(logging.Config{
		Development: cfg.Logging.Development,
		Level:       cfg.Logging.Level,
	})
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
