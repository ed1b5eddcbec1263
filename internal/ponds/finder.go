// Package ponds discovers and refreshes "fishing pond" seed URLs from public
// sources, expanding known-good domains and search results into crawlable
// candidate URLs.
package ponds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/normalize"
)

const (
	serperEndpoint    = "https://google.serper.dev/search"
	serperResultCount = 20
	// Serper free-tier quotas are tight; cap the queries per refresh.
	maxSerperQueries = 3
)

// Discovery modes.
const (
	ModeManual = "manual"
	ModeSerper = "serper"
)

// Result is one discovery run's output.
type Result struct {
	URLs          []string  `json:"urls"`
	Mode          string    `json:"mode"`
	Count         int       `json:"count"`
	FilteredCount int       `json:"filtered_count"`
	DiscoveredAt  time.Time `json:"discovered_at"`
}

// Finder expands seed domains and search results into candidate URLs,
// excluding denied domains.
type Finder struct {
	cfg       Config
	deny      *normalize.Denylist
	client    *fetch.Client
	logger    *zap.Logger
	serperKey string
	endpoint  string
}

// NewFinder builds a Finder. serperKey may be empty; Serper discovery then
// degrades to an empty result.
func NewFinder(cfg Config, deny *normalize.Denylist, client *fetch.Client, logger *zap.Logger, serperKey string) *Finder {
	return &Finder{
		cfg:       cfg,
		deny:      deny,
		client:    client,
		logger:    logger,
		serperKey: serperKey,
		endpoint:  serperEndpoint,
	}
}

// DiscoverManual expands the domains listed in seedDomainsPath with the
// configured URL patterns. FilteredCount reports how many seed domains the
// denylist actually removed.
func (f *Finder) DiscoverManual(seedDomainsPath string) Result {
	domains := ReadSeedDomains(seedDomainsPath)
	if len(domains) == 0 {
		f.logger.Warn("no seed domains found", zap.String("path", seedDomainsPath))
		return Result{Mode: ModeManual, DiscoveredAt: time.Now().UTC()}
	}
	f.logger.Info("expanding seed domains",
		zap.Int("domains", len(domains)), zap.String("path", seedDomainsPath))

	var urls []string
	seen := make(map[string]struct{})
	skipped := 0
	for _, domain := range domains {
		if f.deny.Denied(domain) {
			skipped++
			f.logger.Info("skipped denied domain", zap.String("domain", domain))
			continue
		}
		base := "https://" + domain
		for _, pattern := range f.cfg.URLPatterns {
			candidate := base + pattern
			if _, dup := seen[candidate]; dup {
				continue
			}
			seen[candidate] = struct{}{}
			urls = append(urls, candidate)
		}
	}

	f.logger.Info("generated candidate urls", zap.Int("count", len(urls)))
	return Result{
		URLs:          urls,
		Mode:          ModeManual,
		Count:         len(urls),
		FilteredCount: skipped,
		DiscoveredAt:  time.Now().UTC(),
	}
}

// DiscoverSerper searches for relevant companies via the Serper API and
// expands the result domains with the configured URL patterns. Without an API
// key it returns an empty result. Per-query failures are logged and skipped.
func (f *Finder) DiscoverSerper(ctx context.Context) Result {
	if f.serperKey == "" {
		f.logger.Warn("serper mode requested but no api key set; skipping")
		return Result{Mode: ModeSerper, DiscoveredAt: time.Now().UTC()}
	}

	var urls []string
	seen := make(map[string]struct{})
	filtered := 0

	queries := f.cfg.Queries
	if len(queries) > maxSerperQueries {
		queries = queries[:maxSerperQueries]
	}
	for _, query := range queries {
		links, err := f.querySerper(ctx, query)
		if err != nil {
			f.logger.Warn("serper query failed", zap.String("query", query), zap.Error(err))
			continue
		}
		if n := f.cfg.MaxResultsPerQuery; n > 0 && len(links) > n {
			links = links[:n]
		}
		for _, link := range links {
			parsed, err := url.Parse(link)
			if err != nil || parsed.Hostname() == "" {
				continue
			}
			domain := parsed.Hostname()
			if f.deny.Denied(domain) {
				filtered++
				continue
			}

			base := "https://" + domain
			if _, dup := seen[base]; !dup {
				seen[base] = struct{}{}
				urls = append(urls, base)
			}
			for _, pattern := range f.cfg.URLPatterns {
				candidate := base + pattern
				if _, dup := seen[candidate]; dup {
					continue
				}
				seen[candidate] = struct{}{}
				urls = append(urls, candidate)
			}
		}
	}

	f.logger.Info("serper discovery finished",
		zap.Int("urls", len(urls)), zap.Int("filtered", filtered))
	return Result{
		URLs:          urls,
		Mode:          ModeSerper,
		Count:         len(urls),
		FilteredCount: filtered,
		DiscoveredAt:  time.Now().UTC(),
	}
}

type serperResponse struct {
	Organic []struct {
		Link string `json:"link"`
	} `json:"organic"`
}

func (f *Finder) querySerper(ctx context.Context, query string) ([]string, error) {
	body, err := f.client.Post(ctx, f.endpoint,
		map[string]any{"q": query, "num": serperResultCount},
		map[string]string{"X-API-KEY": f.serperKey})
	if err != nil {
		return nil, fmt.Errorf("serper search %q: %w", query, err)
	}

	var resp serperResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode serper response: %w", err)
	}
	var links []string
	for _, r := range resp.Organic {
		if r.Link != "" {
			links = append(links, r.Link)
		}
	}
	return links, nil
}

// WriteURLs persists a discovery result as a newline-delimited seed URL file,
// creating parent directories as needed.
func (f *Finder) WriteURLs(result Result, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create seed output dir: %w", err)
		}
	}
	content := strings.Join(result.URLs, "\n")
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write seed urls: %w", err)
	}
	f.logger.Info("wrote seed urls",
		zap.Int("count", len(result.URLs)), zap.String("path", outputPath))
	return nil
}
