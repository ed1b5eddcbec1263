// Package score holds the lead scoring strategies. Two deterministic policies
// coexist: the candidate-level scorer used for local runs, and the weighted
// bucket engine the analyze service applies to extracted fields. A third
// strategy delegates to a running analyze service over HTTP.
package score

import (
	"context"
	"sort"

	"github.com/leadscout/leadscout/internal/lead"
)

// Result is the outcome of scoring one candidate.
type Result struct {
	Score         int
	Tier          lead.Tier
	Confidence    int
	ContactMethod lead.ContactMethod
	Angle         lead.OutreachAngle
	Evidence      []string
}

// Scorer scores a fully assembled candidate. Implementations must be safe for
// sequential reuse across a run.
type Scorer interface {
	Name() string
	Score(ctx context.Context, c lead.Candidate) (Result, error)
}

// Rank orders candidates by tier (A before B before C before SKIP), then by
// score descending within a tier. The sort is stable so equal candidates keep
// their discovery order.
func Rank(candidates []lead.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := candidates[i].Tier.Rank(), candidates[j].Tier.Rank()
		if ri != rj {
			return ri < rj
		}
		return candidates[i].Score > candidates[j].Score
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
