package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/lead"
	"github.com/leadscout/leadscout/internal/normalize"
	"github.com/leadscout/leadscout/internal/score"
)

const richPage = `<html>
<head><title>Acme Studio | Video Production</title></head>
<body>
<p>We are a Toronto, Canada based remote-first video production team.
Contact hello@acme.ca for details.</p>
<a href="/contact">Contact</a>
<a href="/careers">Careers</a>
</body>
</html>`

func newPipeline(cfg Config, deny *normalize.Denylist) *Pipeline {
	client := fetch.NewClient(fetch.Config{
		Timeout:   2 * time.Second,
		UserAgent: "leadscout-test/1.0",
	}, fetch.NewRateLimiter(0), zap.NewNop())
	if deny == nil {
		deny = normalize.NewDenylist(nil)
	}
	return New(cfg, client, fetch.AllowAll{}, deny, score.Local{}, zap.NewNop())
}

func TestRunAssemblesCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(richPage))
	}))
	defer srv.Close()

	p := newPipeline(Config{
		TierFilter: TierFilterABC,
		SourceMode: "manual",
	}, nil)

	summary, err := p.Run(context.Background(), []string{srv.URL})
	require.NoError(t, err)
	require.NotEmpty(t, summary.RunID)
	require.Equal(t, 1, summary.Processed)
	require.Empty(t, summary.Skipped)
	require.Len(t, summary.Candidates, 1)

	c := summary.Candidates[0]
	require.Equal(t, "127.0.0.1", c.Domain)
	require.Equal(t, "Acme Studio", c.CompanyName, "title beats the domain-derived name")
	require.Equal(t, []string{"hello@acme.ca"}, c.Emails)
	require.Equal(t, srv.URL+"/contact", c.ContactPageURL)
	require.Equal(t, srv.URL+"/careers", c.CareersPageURL)
	require.Equal(t, []string{"video", "production"}, c.VideoKeywords)
	require.Equal(t, []string{"canada", "remote"}, c.LocationKeywords)
	require.Equal(t, lead.CountryCA, c.CountryGuess)
	require.Equal(t, lead.RemoteYes, c.RemoteSignal)
	require.False(t, c.USReviewRequired)

	// 30 email + 15 contact + 10 video + 15 remote + 20 CA + 5 careers.
	require.Equal(t, 95, c.Score)
	require.Equal(t, lead.TierA, c.Tier)
	require.Equal(t, lead.ContactEmail, c.RecommendedContactMethod)
	require.Equal(t, lead.AngleAccessibility, c.SuggestedOutreachAngle)
	require.Equal(t, discoveryConfidenceLocal, c.DiscoveryConfidence)
	require.Equal(t, "manual", c.SourceMode)
	require.Equal(t, srv.URL, c.SourceURL)
	require.False(t, c.DiscoveredAt.IsZero())
	require.NotEmpty(t, c.RawTextSample)
}

func TestRunDedupsByDomain(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(richPage))
	}))
	defer srv.Close()

	p := newPipeline(Config{TierFilter: TierFilterABC}, nil)
	summary, err := p.Run(context.Background(), []string{srv.URL + "/x", srv.URL + "/y"})
	require.NoError(t, err)
	require.Equal(t, 2, summary.Processed)
	require.Equal(t, 1, hits, "second URL on the same domain is never fetched")
	require.Equal(t, 1, summary.Skipped[SkipDuplicateDomain])
	require.Len(t, summary.Candidates, 1)
}

func TestRunSkipsInvalidAndDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(richPage))
	}))
	defer srv.Close()

	p := newPipeline(Config{TierFilter: TierFilterABC},
		normalize.NewDenylist([]string{"127.0.0.1"}))

	summary, err := p.Run(context.Background(), []string{"not a url", srv.URL})
	require.NoError(t, err)
	require.Equal(t, 2, summary.Processed)
	require.Equal(t, 1, summary.Skipped[SkipInvalidURL])
	require.Equal(t, 1, summary.Skipped[SkipDeniedDomain])
	require.Empty(t, summary.Candidates)
}

func TestRunSkipsURLWithNoUsableDomain(t *testing.T) {
	// "https://www./page" parses, but the www-stripped domain is empty.
	p := newPipeline(Config{TierFilter: TierFilterABC}, nil)
	summary, err := p.Run(context.Background(), []string{"https://www./page"})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Skipped[SkipInvalidURL])
	require.Empty(t, summary.Candidates)
}

func TestRunSkipsFetchFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := newPipeline(Config{TierFilter: TierFilterABC}, nil)
	summary, err := p.Run(context.Background(), []string{srv.URL})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Skipped[SkipFetchFailed])
	require.Empty(t, summary.Candidates)
}

func TestRunTierFilterAB(t *testing.T) {
	// A page with only an email scores 30: tier C.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>Write to hi@plainsite.io</body></html>`))
	}))
	defer srv.Close()

	p := newPipeline(Config{TierFilter: TierFilterAB}, nil)
	summary, err := p.Run(context.Background(), []string{srv.URL})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Skipped[SkipTierFilter])
	require.Empty(t, summary.Candidates)
}

func TestRunLowScoreSkip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>nothing of interest</body></html>`))
	}))
	defer srv.Close()

	p := newPipeline(Config{TierFilter: TierFilterABC}, nil)
	summary, err := p.Run(context.Background(), []string{srv.URL})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Skipped[SkipLowScore])
}

func TestRunRemoteOnlyGate(t *testing.T) {
	// Email + contact page reach 45, then the on-site penalty lands on 25:
	// tier C, which the ABC filter admits, leaving the remote gate to fire.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			On-site only role in our office. Write to hi@plainsite.io
			<a href="/contact">Contact</a>
		</body></html>`))
	}))
	defer srv.Close()

	p := newPipeline(Config{TierFilter: TierFilterABC, RemoteOnly: true}, nil)
	summary, err := p.Run(context.Background(), []string{srv.URL})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Skipped[SkipNotRemote])
	require.Empty(t, summary.Candidates)
}

func TestRunHonorsMaxPages(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(richPage))
	}))
	defer srv.Close()

	p := newPipeline(Config{TierFilter: TierFilterABC, MaxPages: 1}, nil)
	summary, err := p.Run(context.Background(), []string{srv.URL, "http://localhost:1/never"})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Processed)
	require.Equal(t, 1, hits)
}

func TestRunUSReviewGate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			Made in the USA, New York based video production team.
			Write to hi@usacorp.com <a href="/contact">Contact</a> <a href="/careers">Jobs</a>
		</body></html>`))
	}))
	defer srv.Close()

	p := newPipeline(Config{TierFilter: TierFilterABC}, nil)
	summary, err := p.Run(context.Background(), []string{srv.URL})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Skipped[SkipUSReview],
		"US candidates need the capture override before they pass")

	// With the override set the same page is accepted.
	p = newPipeline(Config{TierFilter: TierFilterABC, AllowUSCapture: true}, nil)
	summary, err = p.Run(context.Background(), []string{srv.URL})
	require.NoError(t, err)
	require.Len(t, summary.Candidates, 1)
	require.True(t, summary.Candidates[0].USReviewRequired)
	require.Equal(t, lead.CountryUS, summary.Candidates[0].CountryGuess)
}

func TestShouldCapture(t *testing.T) {
	p := newPipeline(Config{TierFilter: TierFilterAB}, nil)
	require.True(t, p.ShouldCapture(lead.Candidate{Tier: lead.TierA}))
	require.True(t, p.ShouldCapture(lead.Candidate{Tier: lead.TierB}))
	require.False(t, p.ShouldCapture(lead.Candidate{Tier: lead.TierC}))
	require.False(t, p.ShouldCapture(lead.Candidate{Tier: lead.TierA, USReviewRequired: true}))

	p = newPipeline(Config{TierFilter: TierFilterABC, AllowUSCapture: true}, nil)
	require.True(t, p.ShouldCapture(lead.Candidate{Tier: lead.TierC}))
	require.False(t, p.ShouldCapture(lead.Candidate{Tier: lead.TierSkip}))
	require.True(t, p.ShouldCapture(lead.Candidate{Tier: lead.TierA, USReviewRequired: true}))
}
