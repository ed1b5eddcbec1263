package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/lead"
)

var exportTime = time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)

func sampleCandidates() []lead.Candidate {
	return []lead.Candidate{
		{
			Domain:                   "acme.ca",
			CompanyName:              "Acme Studio",
			CompanyURL:               "https://acme.ca",
			Emails:                   []string{"hello@acme.ca", "sales@acme.ca"},
			VideoKeywords:            []string{"video", "webinar"},
			LocationKeywords:         []string{"canada", "remote"},
			CountryGuess:             lead.CountryCA,
			RemoteSignal:             lead.RemoteYes,
			Score:                    85,
			Tier:                     lead.TierA,
			RecommendedContactMethod: lead.ContactEmail,
			SuggestedOutreachAngle:   lead.AngleSpeed,
			Confidence:               90,
		},
		{
			Domain:           "us-corp.com",
			CompanyName:      "US Corp",
			CompanyURL:       "https://us-corp.com",
			CountryGuess:     lead.CountryUS,
			RemoteSignal:     lead.RemoteUnknown,
			USReviewRequired: true,
			Score:            50,
			Tier:             lead.TierB,
		},
	}
}

func TestJSONExport(t *testing.T) {
	dir := t.TempDir()
	path, err := JSON(sampleCandidates(), dir, exportTime, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "leads-2026-08-27.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, 2, doc.Metadata.TotalCandidates)
	require.Equal(t, map[lead.Tier]int{
		lead.TierA: 1, lead.TierB: 1, lead.TierC: 0, lead.TierSkip: 0,
	}, doc.Metadata.Tiers)
	require.Len(t, doc.Candidates, 2)
	require.Equal(t, "acme.ca", doc.Candidates[0].Domain)
}

func TestJSONExportEmpty(t *testing.T) {
	path, err := JSON(nil, t.TempDir(), exportTime, zap.NewNop())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Zero(t, doc.Metadata.TotalCandidates)
	require.Equal(t, 0, doc.Metadata.Tiers[lead.TierA], "all tiers present even when empty")
}

func TestCSVExport(t *testing.T) {
	dir := t.TempDir()
	path, err := CSV(sampleCandidates(), dir, exportTime, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "leads-2026-08-27.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, csvHeader, records[0])

	first := records[1]
	require.Equal(t, "Acme Studio", first[0])
	require.Equal(t, "85", first[3])
	require.Equal(t, "A", first[4])
	require.Equal(t, "no", first[7])
	require.Equal(t, "hello@acme.ca; sales@acme.ca", first[8])
	require.Equal(t, "video; webinar", first[14])

	second := records[2]
	require.Equal(t, "yes", second[7], "us_review_required renders as yes/no")
	require.Equal(t, "", second[8], "empty email list renders empty")
}

func TestCSVExportWritesToNewDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not", "yet", "there")
	_, err := CSV(nil, dir, exportTime, zap.NewNop())
	require.NoError(t, err)
}
