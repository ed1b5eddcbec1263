package score

import (
	"context"

	"github.com/leadscout/leadscout/internal/lead"
)

// Local is the self-contained scoring policy. It weighs contact channels,
// keyword evidence, remote posture, and country preference, and never needs
// the network.
type Local struct{}

// Name implements Scorer.
func (Local) Name() string { return "local" }

// Score implements Scorer. It never fails.
func (Local) Score(_ context.Context, c lead.Candidate) (Result, error) {
	var score, confidence int

	method := lead.ContactUnknown
	if len(c.Emails) > 0 {
		score += 30
		method = lead.ContactEmail
		confidence += 40
	}
	if c.ContactPageURL != "" {
		score += 15
		if method == lead.ContactUnknown {
			method = lead.ContactForm
		}
		confidence += 20
	}
	if c.DemoBookingURL != "" {
		score += 15
		method = lead.ContactBooking
		confidence += 20
	}

	if n := len(c.VideoKeywords); n > 0 {
		score += min(n*5, 20)
		confidence += 15
	}

	switch c.RemoteSignal {
	case lead.RemoteYes:
		score += 15
		confidence += 15
	case lead.RemoteNo:
		score -= 20
	}

	switch c.CountryGuess {
	case lead.CountryCA:
		score += 20
		confidence += 10
	case lead.CountryUS:
		if c.USReviewRequired {
			score -= 10
		}
	}

	if len(c.LocationKeywords) > 2 {
		score += 10
	}
	if c.CareersPageURL != "" {
		score += 5
	}

	score = clamp(score, 0, 100)
	confidence = min(confidence, 100)

	tier := lead.TierC
	switch {
	case score >= 70:
		tier = lead.TierA
	case score >= 45:
		tier = lead.TierB
	case score < 20:
		tier = lead.TierSkip
	}

	return Result{
		Score:         score,
		Tier:          tier,
		Confidence:    confidence,
		ContactMethod: method,
		Angle:         pickAngle(c),
	}, nil
}

func pickAngle(c lead.Candidate) lead.OutreachAngle {
	if hasKeyword(c.VideoKeywords, "training") || hasKeyword(c.VideoKeywords, "learning") {
		return lead.AngleTraining
	}
	if hasKeyword(c.VideoKeywords, "podcast") || hasKeyword(c.VideoKeywords, "webinar") {
		return lead.AngleRepurposing
	}
	if c.RemoteSignal == lead.RemoteYes {
		return lead.AngleAccessibility
	}
	return lead.AngleSpeed
}

func hasKeyword(list []string, kw string) bool {
	for _, v := range list {
		if v == kw {
			return true
		}
	}
	return false
}
