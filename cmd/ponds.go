package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/config"
	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/normalize"
	"github.com/leadscout/leadscout/internal/ponds"
)

// newPondsCmd creates the ponds command, which refreshes the seed URL pool
// without running a hunt.
func newPondsCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "ponds",
		Short: "Refresh the seed URL pool from configured sources.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cmd.Flags().Changed("mode") {
				cfg.Ponds.Mode = mode
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			deny, err := normalize.LoadDenylist(cfg.Paths.DenyDomains)
			if err != nil {
				return fmt.Errorf("load denylist: %w", err)
			}
			client := fetch.NewClient(fetch.Config{
				Timeout:   cfg.Timeout(),
				UserAgent: cfg.HTTP.UserAgent,
				Retries:   cfg.HTTP.Retries,
			}, fetch.NewRateLimiter(cfg.RateLimit()), logger)

			_, err = refreshPonds(cmd.Context(), cfg, deny, client, logger, true)
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "discovery mode: manual or serper (defaults to ponds.mode)")

	return cmd
}

// refreshPonds runs one pond discovery pass. With forceWrite set, or when the
// pond config asks for a urls_file, the discovered URLs land in the seed file
// and nil is returned; in direct mode they are handed back to the caller.
func refreshPonds(ctx context.Context, cfg config.Config, deny *normalize.Denylist, client *fetch.Client, logger *zap.Logger, forceWrite bool) ([]string, error) {
	pondCfg, err := ponds.LoadConfig(cfg.Ponds.ConfigPath)
	if err != nil {
		return nil, err
	}
	finder := ponds.NewFinder(pondCfg, deny, client, logger, cfg.Ponds.SerperKey)

	var result ponds.Result
	switch cfg.Ponds.Mode {
	case ponds.ModeSerper:
		result = finder.DiscoverSerper(ctx)
	default:
		result = finder.DiscoverManual(cfg.Paths.SeedDomains)
	}
	if len(result.URLs) == 0 {
		return nil, fmt.Errorf("pond discovery produced no urls (mode %s)", result.Mode)
	}

	if !forceWrite && pondCfg.OutputMode == ponds.OutputModeDirect {
		return result.URLs, nil
	}

	out := cfg.Paths.SeedURLs
	if pondCfg.OutputFile != "" {
		out = pondCfg.OutputFile
	}
	return nil, finder.WriteURLs(result, out)
}
