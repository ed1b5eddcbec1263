package score

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadscout/leadscout/internal/lead"
)

func TestComputeBucketsWeightsAndCaps(t *testing.T) {
	signals := []lead.SignalMatch{
		// 5 hits × 8 would be 40; the bucket caps at 30.
		{Category: lead.CategoryVideoProduction, Matched: []string{"video", "producer", "webinar", "podcast", "editing"}},
		// 2 hits × 7 = 14.
		{Category: lead.CategoryContentMarketing, Matched: []string{"content", "marketing"}},
		// 1 hit × 5 = 5.
		{Category: lead.CategoryRecency, Matched: []string{"just posted"}},
	}

	res := ComputeBuckets(signals, lead.ExtractedFields{})
	require.Equal(t, 49, res.Score)
	require.Equal(t, lead.TierC, res.Tier)
}

func TestComputeBucketsTitleAddsSeniority(t *testing.T) {
	fields := lead.ExtractedFields{Title: "Senior Director of Video"}

	// "director" arrives both from detection and from the title; the union
	// counts it once.
	signals := []lead.SignalMatch{
		{Category: lead.CategorySeniority, Matched: []string{"director"}},
	}
	res := ComputeBuckets(signals, fields)

	// Union is {director, senior}: 2 × 8 capped at 15.
	require.Equal(t, 15, res.Score)
	require.Contains(t, res.Evidence, "👤 seniority: director")
}

func TestComputeBucketsLocationAddsRemoteCanada(t *testing.T) {
	res := ComputeBuckets(nil, lead.ExtractedFields{Location: "Remote – Toronto, Canada"})

	// {remote, canada, toronto}: 3 × 5 capped at 10.
	require.Equal(t, 10, res.Score)
	require.Equal(t, []string{"🌍 remote"}, res.Evidence)
}

func TestComputeBucketsTierThresholds(t *testing.T) {
	aSignals := []lead.SignalMatch{
		{Category: lead.CategoryVideoProduction, Matched: []string{"video", "producer", "webinar", "podcast"}},       // 30
		{Category: lead.CategoryContentMarketing, Matched: []string{"content", "marketing", "brand", "campaigns"}},  // 25
		{Category: lead.CategorySeniority, Matched: []string{"director", "senior"}},                                 // 15
		{Category: lead.CategoryRemoteCanada, Matched: []string{"remote", "canada"}},                                // 10
	}
	res := ComputeBuckets(aSignals, lead.ExtractedFields{})
	require.Equal(t, 80, res.Score)
	require.Equal(t, lead.TierA, res.Tier)

	bSignals := aSignals[:2] // 30 + 25 = 55
	res = ComputeBuckets(bSignals, lead.ExtractedFields{})
	require.Equal(t, 55, res.Score)
	require.Equal(t, lead.TierB, res.Tier)
}

func TestComputeBucketsEvidenceCappedAtFive(t *testing.T) {
	signals := []lead.SignalMatch{
		{Category: lead.CategoryVideoProduction, Matched: []string{"video", "producer", "webinar", "podcast"}},
		{Category: lead.CategoryContentMarketing, Matched: []string{"content", "marketing", "brand"}},
		{Category: lead.CategorySeniority, Matched: []string{"director"}},
		{Category: lead.CategoryRecency, Matched: []string{"recently"}},
		{Category: lead.CategoryAccessibility, Matched: []string{"captions"}},
	}
	res := ComputeBuckets(signals, lead.ExtractedFields{})

	require.Len(t, res.Evidence, 5)
	// First three video hits, then the first two content hits fill the cap.
	require.Equal(t, []string{"🎬 video", "🎬 producer", "🎬 webinar", "📢 content", "📢 marketing"}, res.Evidence)
}

func TestComputeBucketsEmptyInput(t *testing.T) {
	res := ComputeBuckets(nil, lead.ExtractedFields{})
	require.Equal(t, 0, res.Score)
	require.Equal(t, lead.TierC, res.Tier)
	require.Empty(t, res.Evidence)
}

func TestComputeBucketsScoreNeverExceedsHundred(t *testing.T) {
	full := []lead.SignalMatch{
		{Category: lead.CategoryVideoProduction, Matched: []string{"1", "2", "3", "4", "5", "6"}},
		{Category: lead.CategoryContentMarketing, Matched: []string{"1", "2", "3", "4", "5"}},
		{Category: lead.CategorySeniority, Matched: []string{"1", "2", "3"}},
		{Category: lead.CategoryRemoteCanada, Matched: []string{"1", "2", "3"}},
		{Category: lead.CategoryRecency, Matched: []string{"1", "2", "3"}},
		{Category: lead.CategoryAccessibility, Matched: []string{"1", "2", "3"}},
	}
	res := ComputeBuckets(full, lead.ExtractedFields{})
	require.Equal(t, 100, res.Score)
	require.Equal(t, lead.TierA, res.Tier)
}
