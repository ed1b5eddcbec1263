// Package export writes ranked candidates to dated JSON and CSV files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/lead"
)

// Metadata summarizes one export.
type Metadata struct {
	ExportedAt      time.Time         `json:"exported_at"`
	TotalCandidates int               `json:"total_candidates"`
	Tiers           map[lead.Tier]int `json:"tiers"`
}

// Document is the on-disk JSON shape.
type Document struct {
	Metadata   Metadata         `json:"metadata"`
	Candidates []lead.Candidate `json:"candidates"`
}

// JSON writes candidates to outDir as leads-YYYY-MM-DD.json and returns the
// file path.
func JSON(candidates []lead.Candidate, outDir string, now time.Time, logger *zap.Logger) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(outDir, fmt.Sprintf("leads-%s.json", now.UTC().Format("2006-01-02")))

	doc := Document{
		Metadata: Metadata{
			ExportedAt:      now.UTC(),
			TotalCandidates: len(candidates),
			Tiers:           tierCounts(candidates),
		},
		Candidates: candidates,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write json export: %w", err)
	}

	logger.Info("exported json", zap.String("path", path), zap.Int("candidates", len(candidates)))
	return path, nil
}

// tierCounts always reports all four tiers, zeroes included, so downstream
// dashboards need no missing-key handling.
func tierCounts(candidates []lead.Candidate) map[lead.Tier]int {
	counts := map[lead.Tier]int{
		lead.TierA:    0,
		lead.TierB:    0,
		lead.TierC:    0,
		lead.TierSkip: 0,
	}
	for _, c := range candidates {
		counts[c.Tier]++
	}
	return counts
}
