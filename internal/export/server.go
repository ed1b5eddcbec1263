package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/lead"
)

type appendRequest struct {
	Lead lead.Row `json:"lead"`
}

type appendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AppendToServer pushes candidates to the capture service's /append-lead
// endpoint and reports how many were accepted. Duplicates and per-candidate
// failures are logged and skipped.
func AppendToServer(ctx context.Context, client *fetch.Client, serverURL string, candidates []lead.Candidate, now time.Time, logger *zap.Logger) int {
	endpoint := strings.TrimRight(serverURL, "/") + "/append-lead"
	appended := 0
	for _, c := range candidates {
		body, err := client.Post(ctx, endpoint, appendRequest{Lead: toRow(c, now)}, nil)
		if err != nil {
			// The service answers duplicate page URLs with 409.
			var status *fetch.StatusError
			if errors.As(err, &status) && status.Code == http.StatusConflict {
				logger.Debug("lead already captured", zap.String("company", c.CompanyName))
				continue
			}
			logger.Warn("lead append request failed",
				zap.String("company", c.CompanyName), zap.Error(err))
			continue
		}
		var resp appendResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			logger.Warn("lead append response malformed",
				zap.String("company", c.CompanyName), zap.Error(err))
			continue
		}
		if !resp.Success {
			logger.Warn("lead append rejected",
				zap.String("company", c.CompanyName), zap.String("message", resp.Message))
			continue
		}
		appended++
	}
	return appended
}

// toRow flattens a discovered candidate into the capture row shape. Page
// discovery has no person-level fields, so the company name doubles as the
// lead name.
func toRow(c lead.Candidate, now time.Time) lead.Row {
	evidence := c.RawTextSample
	if len(evidence) > 500 {
		evidence = evidence[:500]
	}
	if evidence == "" {
		evidence = "Hunter discovery"
	}
	return lead.Row{
		TimestampISO:           now.UTC().Format(time.RFC3339),
		Name:                   c.CompanyName,
		Title:                  "Hunter Discovery",
		Company:                c.CompanyName,
		Location:               string(c.CountryGuess),
		PageURL:                c.CompanyURL,
		Score:                  c.Score,
		Tier:                   c.Tier,
		Evidence:               evidence,
		SuggestedContactMethod: string(c.RecommendedContactMethod),
		SuggestedAngle:         string(c.SuggestedOutreachAngle),
		OutreachHook:           fmt.Sprintf("Discovered via Hunter: %s", c.CompanyName),
		CallToAction:           "Schedule a call",
		OnboardingNextStep:     "60-sec audit",
		Status:                 "new",
		PipelineStage:          "New",
		NextAction:             "Connect",
		Notes: fmt.Sprintf("US Review: %t. Keywords: %s",
			c.USReviewRequired, strings.Join(c.VideoKeywords, ", ")),
	}
}
