package score

import (
	"fmt"
	"strings"

	"github.com/leadscout/leadscout/internal/keywords"
	"github.com/leadscout/leadscout/internal/lead"
)

// Per-bucket score ceilings. A lead drowning in one theme cannot crowd out
// the others.
const (
	maxVideoProduction  = 30
	maxContentMarketing = 25
	maxSeniority        = 15
	maxRemoteCanada     = 10
	maxRecency          = 10
	maxAccessibility    = 10

	maxEvidence = 5
)

// BucketResult is the outcome of the weighted-bucket policy.
type BucketResult struct {
	Score    int       `json:"score"`
	Tier     lead.Tier `json:"tier"`
	Evidence []string  `json:"evidence"`
}

// ComputeBuckets applies the weighted-bucket policy to detected signals and
// normalized fields. The title and location fields contribute extra seniority
// and remote/Canada hits beyond what page scanning found.
func ComputeBuckets(signals []lead.SignalMatch, fields lead.ExtractedFields) BucketResult {
	matched := func(cat lead.Category) []string {
		for _, s := range signals {
			if s.Category == cat {
				return s.Matched
			}
		}
		return nil
	}

	var score int
	var evidence []string

	vid := matched(lead.CategoryVideoProduction)
	score += bucketScore(len(vid), maxVideoProduction, 8)
	for _, m := range head(vid, 3) {
		evidence = append(evidence, "🎬 "+m)
	}

	cm := matched(lead.CategoryContentMarketing)
	score += bucketScore(len(cm), maxContentMarketing, 7)
	for _, m := range head(cm, 2) {
		evidence = append(evidence, "📢 "+m)
	}

	seniority := mergeHits(matched(lead.CategorySeniority), fields.Title, keywords.Signal[lead.CategorySeniority])
	score += bucketScore(len(seniority), maxSeniority, 8)
	if len(seniority) > 0 {
		evidence = append(evidence, fmt.Sprintf("👤 seniority: %s", seniority[0]))
	}

	remoteCanada := mergeHits(matched(lead.CategoryRemoteCanada), fields.Location, keywords.Signal[lead.CategoryRemoteCanada])
	score += bucketScore(len(remoteCanada), maxRemoteCanada, 5)
	if len(remoteCanada) > 0 {
		evidence = append(evidence, "🌍 "+remoteCanada[0])
	}

	rec := matched(lead.CategoryRecency)
	score += bucketScore(len(rec), maxRecency, 5)
	if len(rec) > 0 {
		evidence = append(evidence, "🕒 "+rec[0])
	}

	acc := matched(lead.CategoryAccessibility)
	score += bucketScore(len(acc), maxAccessibility, 5)
	if len(acc) > 0 {
		evidence = append(evidence, "♿ "+acc[0])
	}

	score = min(score, 100)

	tier := lead.TierC
	switch {
	case score >= 75:
		tier = lead.TierA
	case score >= 50:
		tier = lead.TierB
	}

	return BucketResult{Score: score, Tier: tier, Evidence: head(evidence, maxEvidence)}
}

func bucketScore(hits, max, perHit int) int {
	return min(hits*perHit, max)
}

func head(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

// mergeHits unions the detected matches with the keywords present in an extra
// field, preserving first-seen order.
func mergeHits(detected []string, field string, dictionary []string) []string {
	seen := make(map[string]struct{}, len(detected))
	out := make([]string, 0, len(detected))
	for _, m := range detected {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	lower := strings.ToLower(field)
	for _, kw := range dictionary {
		if !strings.Contains(lower, kw) {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
