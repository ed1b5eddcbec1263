// Package pipeline runs the discovery loop: seed URLs in, scored and filtered
// lead candidates out.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/extract"
	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/lead"
	"github.com/leadscout/leadscout/internal/normalize"
	"github.com/leadscout/leadscout/internal/score"
	"github.com/leadscout/leadscout/internal/signals"
)

// Skip reasons, used as log fields and metric labels.
const (
	SkipInvalidURL      = "invalid_url"
	SkipDuplicateDomain = "duplicate_domain"
	SkipDeniedDomain    = "denied_domain"
	SkipRobots          = "robots_disallowed"
	SkipFetchFailed     = "fetch_failed"
	SkipScoreFailed     = "score_failed"
	SkipTierFilter      = "tier_filter"
	SkipUSReview        = "us_review"
	SkipLowScore        = "low_score"
	SkipNotRemote       = "not_remote"
)

// Tier filter modes.
const (
	TierFilterAB  = "AB"
	TierFilterABC = "ABC"
)

// rawSampleChars bounds the text sample carried on each candidate.
const rawSampleChars = 2000

// Discovery confidence by scoring path.
const (
	discoveryConfidenceRemote = 80
	discoveryConfidenceLocal  = 70
)

// Config controls one discovery run.
type Config struct {
	MaxPages       int
	TierFilter     string // TierFilterAB or TierFilterABC
	RemoteOnly     bool
	IncludeUS      bool
	AllowUSCapture bool
	SourceMode     string
	SourceQuery    string
}

// Summary is the outcome of one run.
type Summary struct {
	RunID      string
	Processed  int
	Skipped    map[string]int
	Candidates []lead.Candidate
}

// Pipeline orchestrates validation, fetching, extraction, signal detection,
// scoring, and filtering for a batch of seed URLs. Processing is strictly
// sequential so the shared rate limiter's pacing holds.
type Pipeline struct {
	cfg    Config
	client *fetch.Client
	policy fetch.CrawlPolicy
	deny   *normalize.Denylist
	scorer score.Scorer
	logger *zap.Logger
	now    func() time.Time
}

// New builds a Pipeline.
func New(cfg Config, client *fetch.Client, policy fetch.CrawlPolicy, deny *normalize.Denylist, scorer score.Scorer, logger *zap.Logger) *Pipeline {
	initMetrics()
	return &Pipeline{
		cfg:    cfg,
		client: client,
		policy: policy,
		deny:   deny,
		scorer: scorer,
		logger: logger,
		now:    time.Now,
	}
}

// Run processes up to MaxPages seed URLs and returns the accepted candidates
// unranked; callers rank the complete batch. Per-URL failures are counted and
// skipped, never fatal. Run stops early only when ctx is canceled.
func (p *Pipeline) Run(ctx context.Context, urls []string) (Summary, error) {
	summary := Summary{
		RunID:   uuid.NewString(),
		Skipped: make(map[string]int),
	}
	logger := p.logger.With(zap.String("run_id", summary.RunID))

	if p.cfg.MaxPages > 0 && len(urls) > p.cfg.MaxPages {
		urls = urls[:p.cfg.MaxPages]
	}
	logger.Info("run started", zap.Int("urls", len(urls)), zap.String("scorer", p.scorer.Name()))

	seenDomains := make(map[string]struct{})
	for _, rawURL := range urls {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		candidate, skipReason := p.processURL(ctx, logger, rawURL, seenDomains)
		summary.Processed++
		pagesProcessedTotal.Inc()

		if skipReason != "" {
			summary.Skipped[skipReason]++
			skipsTotal.WithLabelValues(skipReason).Inc()
			continue
		}

		logger.Info("candidate accepted",
			zap.String("domain", candidate.Domain),
			zap.String("tier", string(candidate.Tier)),
			zap.Int("score", candidate.Score),
			zap.String("country", string(candidate.CountryGuess)))
		candidatesTotal.WithLabelValues(string(candidate.Tier)).Inc()
		summary.Candidates = append(summary.Candidates, *candidate)
	}

	logger.Info("run finished",
		zap.Int("processed", summary.Processed),
		zap.Int("candidates", len(summary.Candidates)))
	return summary, nil
}

// processURL walks one seed URL through the full stage sequence. It returns
// either an accepted candidate or a skip reason.
func (p *Pipeline) processURL(ctx context.Context, logger *zap.Logger, rawURL string, seenDomains map[string]struct{}) (*lead.Candidate, string) {
	if !normalize.IsValidURL(rawURL) {
		logger.Debug("invalid url", zap.String("url", rawURL))
		return nil, SkipInvalidURL
	}

	pageURL := normalize.URL(rawURL)
	domain := normalize.Domain(pageURL)
	if domain == "" {
		logger.Debug("no usable domain", zap.String("url", pageURL))
		return nil, SkipInvalidURL
	}

	if _, dup := seenDomains[domain]; dup {
		logger.Debug("duplicate domain", zap.String("domain", domain))
		return nil, SkipDuplicateDomain
	}
	seenDomains[domain] = struct{}{}

	if p.deny.Denied(domain) {
		logger.Info("denied domain", zap.String("domain", domain))
		return nil, SkipDeniedDomain
	}

	if !p.policy.Allowed(ctx, pageURL) {
		logger.Debug("robots disallowed", zap.String("url", pageURL))
		return nil, SkipRobots
	}

	logger.Info("fetching", zap.String("url", pageURL))
	html, err := p.client.Get(ctx, pageURL)
	if err != nil {
		logger.Warn("fetch failed", zap.String("url", pageURL), zap.Error(err))
		return nil, SkipFetchFailed
	}

	content := extract.Parse(string(html))
	sig := signals.Scan(content.Text, content.Links, pageURL)

	country := normalize.Country(content.Text+" "+content.Title, domain)
	candidate := lead.Candidate{
		Domain:           domain,
		CompanyName:      normalize.CompanyName(pageURL, content.Title),
		CompanyURL:       pageURL,
		Emails:           sig.Emails,
		ContactPageURL:   sig.ContactPageURL,
		CareersPageURL:   sig.CareersPageURL,
		DemoBookingURL:   sig.DemoBookingURL,
		SocialLinks:      sig.SocialLinks,
		VideoKeywords:    sig.VideoKeywords,
		LocationKeywords: sig.LocationKeywords,
		CountryGuess:     country,
		RemoteSignal:     normalize.Remote(content.Text),
		USReviewRequired: country == lead.CountryUS && !p.cfg.IncludeUS,
		SourceQuery:      p.cfg.SourceQuery,
		SourceMode:       p.cfg.SourceMode,
		RawTextSample:    sampleText(content.Text),
		SourceURL:        pageURL,
		DiscoveredAt:     p.now().UTC(),
	}

	result, err := p.scorer.Score(ctx, candidate)
	if err != nil {
		logger.Warn("scoring failed", zap.String("url", pageURL), zap.Error(err))
		return nil, SkipScoreFailed
	}
	candidate.Score = result.Score
	candidate.Tier = result.Tier
	candidate.Confidence = result.Confidence
	candidate.RecommendedContactMethod = result.ContactMethod
	candidate.SuggestedOutreachAngle = result.Angle
	if p.scorer.Name() == "remote" {
		candidate.DiscoveryConfidence = discoveryConfidenceRemote
	} else {
		candidate.DiscoveryConfidence = discoveryConfidenceLocal
	}

	if reason := p.filterReason(candidate); reason != "" {
		logger.Info("candidate filtered",
			zap.String("domain", domain),
			zap.String("tier", string(candidate.Tier)),
			zap.Int("score", candidate.Score),
			zap.String("reason", reason))
		return nil, reason
	}
	return &candidate, ""
}

// filterReason applies the post-scoring gates in order: tier filter, US
// review, the skip tier, then the remote-only gate.
func (p *Pipeline) filterReason(c lead.Candidate) string {
	if p.cfg.TierFilter == TierFilterAB && c.Tier != lead.TierA && c.Tier != lead.TierB {
		return SkipTierFilter
	}
	if c.USReviewRequired && !p.cfg.AllowUSCapture {
		return SkipUSReview
	}
	if c.Tier == lead.TierSkip {
		return SkipLowScore
	}
	if p.cfg.RemoteOnly && c.RemoteSignal == lead.RemoteNo {
		return SkipNotRemote
	}
	return ""
}

// ShouldCapture reports whether a candidate qualifies for the capture store
// under the configured tier filter and US gate.
func (p *Pipeline) ShouldCapture(c lead.Candidate) bool {
	switch p.cfg.TierFilter {
	case TierFilterAB:
		if c.Tier != lead.TierA && c.Tier != lead.TierB {
			return false
		}
	case TierFilterABC:
		if c.Tier == lead.TierSkip {
			return false
		}
	}
	return !c.USReviewRequired || p.cfg.AllowUSCapture
}

func sampleText(s string) string {
	runes := []rune(s)
	if len(runes) <= rawSampleChars {
		return s
	}
	return string(runes[:rawSampleChars])
}
