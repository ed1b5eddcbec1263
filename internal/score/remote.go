package score

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/lead"
	"github.com/leadscout/leadscout/internal/outreach"
)

// remoteConfidence is fixed: the analyze service does not report one.
const remoteConfidence = 85

// AnalyzeRequest is the payload sent to the analyze service.
type AnalyzeRequest struct {
	PageURL         string               `json:"page_url"`
	ExtractedFields lead.ExtractedFields `json:"extracted_fields"`
	RawTextSample   string               `json:"raw_text_sample"`
	Signals         []lead.SignalMatch   `json:"signals"`
}

// AnalyzeResponse is the analyze service's reply.
type AnalyzeResponse struct {
	NormalizedLead lead.ExtractedFields `json:"normalized_lead"`
	Score          int                  `json:"score"`
	Tier           lead.Tier            `json:"tier"`
	Evidence       []string             `json:"evidence"`
	OutreachReco   outreach.Reco        `json:"outreach_reco"`
}

// Remote delegates scoring to an analyze service over HTTP. A non-2xx reply
// or an undecodable body is a scoring failure for that candidate; the caller
// skips the item and moves on.
type Remote struct {
	client    *fetch.Client
	serverURL string
	logger    *zap.Logger
}

// NewRemote builds a Remote scorer targeting serverURL (no trailing slash
// required).
func NewRemote(client *fetch.Client, serverURL string, logger *zap.Logger) *Remote {
	return &Remote{
		client:    client,
		serverURL: strings.TrimRight(serverURL, "/"),
		logger:    logger,
	}
}

// Name implements Scorer.
func (*Remote) Name() string { return "remote" }

// Score implements Scorer.
func (r *Remote) Score(ctx context.Context, c lead.Candidate) (Result, error) {
	body, err := r.client.Post(ctx, r.serverURL+"/analyze", buildRequest(c), nil)
	if err != nil {
		r.logger.Warn("analyze request failed",
			zap.String("company_url", c.CompanyURL), zap.Error(err))
		return Result{}, fmt.Errorf("analyze %s: %w", c.CompanyURL, err)
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{}, fmt.Errorf("decode analyze response for %s: %w", c.CompanyURL, err)
	}

	return Result{
		Score:      resp.Score,
		Tier:       resp.Tier,
		Confidence: remoteConfidence,
		// The service speaks its own vocabulary; carry it through unchanged.
		ContactMethod: lead.ContactMethod(resp.OutreachReco.SuggestedContactMethod),
		Angle:         lead.OutreachAngle(resp.OutreachReco.SuggestedAngle),
		Evidence:      resp.Evidence,
	}, nil
}

// buildRequest projects a crawled candidate onto the analyze contract. Page
// scanning has no person-level fields, so the company name stands in for the
// lead name and the title is a fixed discovery marker.
func buildRequest(c lead.Candidate) AnalyzeRequest {
	var signals []lead.SignalMatch
	if len(c.VideoKeywords) > 0 {
		signals = append(signals, lead.SignalMatch{
			Category: lead.CategoryVideoProduction,
			Matched:  c.VideoKeywords,
		})
	}
	if c.RemoteSignal == lead.RemoteYes || containsFold(c.LocationKeywords, "remote") {
		var matched []string
		for _, kw := range c.LocationKeywords {
			lower := strings.ToLower(kw)
			if strings.Contains(lower, "remote") || strings.Contains(lower, "canada") {
				matched = append(matched, kw)
			}
		}
		signals = append(signals, lead.SignalMatch{
			Category: lead.CategoryRemoteCanada,
			Matched:  matched,
		})
	}

	location := string(c.CountryGuess)
	if c.CountryGuess == lead.CountryCA {
		location = "Canada"
	}

	return AnalyzeRequest{
		PageURL: c.CompanyURL,
		ExtractedFields: lead.ExtractedFields{
			Name:     c.CompanyName,
			Title:    "Lead from Hunter discovery",
			Company:  c.CompanyName,
			Location: location,
			PageURL:  c.CompanyURL,
		},
		RawTextSample: c.RawTextSample,
		Signals:       signals,
	}
}

func containsFold(list []string, needle string) bool {
	for _, v := range list {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}
