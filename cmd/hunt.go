package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/config"
	"github.com/leadscout/leadscout/internal/export"
	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/lead"
	"github.com/leadscout/leadscout/internal/normalize"
	"github.com/leadscout/leadscout/internal/pipeline"
	"github.com/leadscout/leadscout/internal/ponds"
	"github.com/leadscout/leadscout/internal/score"
)

// newHuntCmd creates the hunt command: one full discovery run from seed URLs
// to exported, ranked candidates.
func newHuntCmd() *cobra.Command {
	var (
		maxPages   int
		remoteOnly bool
		useServer  bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "hunt",
		Short: "Crawl seed URLs and export ranked lead candidates.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cmd.Flags().Changed("max-pages") {
				cfg.Hunt.MaxPages = maxPages
			}
			if cmd.Flags().Changed("remote-only") {
				cfg.Hunt.RemoteOnly = remoteOnly
			}
			if cmd.Flags().Changed("use-server") {
				cfg.Hunt.UseServer = useServer
			}
			if cmd.Flags().Changed("refresh-ponds") {
				cfg.Ponds.Refresh = refresh
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runHunt(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "maximum pages to process this run")
	cmd.Flags().BoolVar(&remoteOnly, "remote-only", false, "drop candidates with an explicit on-site signal")
	cmd.Flags().BoolVar(&useServer, "use-server", false, "score via the capture service instead of locally")
	cmd.Flags().BoolVar(&refresh, "refresh-ponds", false, "refresh the seed pool before hunting")

	return cmd
}

func runHunt(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	deny, err := normalize.LoadDenylist(cfg.Paths.DenyDomains)
	if err != nil {
		return fmt.Errorf("load denylist: %w", err)
	}

	limiter := fetch.NewRateLimiter(cfg.RateLimit())
	client := fetch.NewClient(fetch.Config{
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.HTTP.UserAgent,
		Retries:   cfg.HTTP.Retries,
	}, limiter, logger)

	var urls []string
	if cfg.Ponds.Refresh {
		discovered, err := refreshPonds(ctx, cfg, deny, client, logger, false)
		if err != nil {
			logger.Warn("pond refresh failed, continuing with existing seeds", zap.Error(err))
		}
		urls = discovered
	}
	if len(urls) == 0 {
		urls = ponds.ReadSeedURLs(cfg.Paths.SeedURLs)
	}
	if len(urls) == 0 {
		if queries := ponds.ReadSeedQueries(cfg.Paths.SeedQueries); len(queries) > 0 {
			logger.Warn("seed queries exist but no seed urls",
				zap.String("hint", "run leadscout ponds in serper mode to expand them"))
		}
		return fmt.Errorf("no seed urls in %s", cfg.Paths.SeedURLs)
	}

	var scorer score.Scorer = score.Local{}
	if cfg.Hunt.UseServer {
		scorer = score.NewRemote(client, cfg.Server.URL, logger)
	}

	p := pipeline.New(pipeline.Config{
		MaxPages:       cfg.Hunt.MaxPages,
		TierFilter:     cfg.Hunt.TierFilter,
		RemoteOnly:     cfg.Hunt.RemoteOnly,
		IncludeUS:      cfg.Hunt.IncludeUS,
		AllowUSCapture: cfg.Hunt.AllowUSCapture,
		SourceMode:     cfg.Ponds.Mode,
	}, client, fetch.NewCrawlPolicy(cfg.Hunt.RespectRobots, cfg.HTTP.UserAgent, logger), deny, scorer, logger)

	summary, err := p.Run(ctx, urls)
	if err != nil {
		return err
	}
	score.Rank(summary.Candidates)

	now := time.Now()
	for _, target := range strings.Split(cfg.Hunt.ExportTo, ",") {
		switch strings.TrimSpace(target) {
		case "json":
			if _, err := export.JSON(summary.Candidates, cfg.Paths.OutDir, now, logger); err != nil {
				return err
			}
		case "csv":
			if _, err := export.CSV(summary.Candidates, cfg.Paths.OutDir, now, logger); err != nil {
				return err
			}
		case "":
		default:
			logger.Warn("unknown export target", zap.String("target", target))
		}
	}

	if cfg.Hunt.UseServer {
		eligible := make([]lead.Candidate, 0, len(summary.Candidates))
		for _, c := range summary.Candidates {
			if p.ShouldCapture(c) {
				eligible = append(eligible, c)
			}
		}
		appended := export.AppendToServer(ctx, client, cfg.Server.URL, eligible, now, logger)
		logger.Info("leads pushed to capture service",
			zap.Int("appended", appended), zap.Int("eligible", len(eligible)))
	}

	logger.Info("hunt complete",
		zap.String("run_id", summary.RunID),
		zap.Int("processed", summary.Processed),
		zap.Int("candidates", len(summary.Candidates)))
	return nil
}
