package outreach

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadscout/leadscout/internal/lead"
)

func sig(cats ...lead.Category) []lead.SignalMatch {
	var out []lead.SignalMatch
	for _, c := range cats {
		out = append(out, lead.SignalMatch{Category: c, Matched: []string{"x"}})
	}
	return out
}

func TestPickMethodPriority(t *testing.T) {
	linkedin := lead.ExtractedFields{PageURL: "https://www.LinkedIn.com/in/someone", Company: "Acme"}
	require.Equal(t, MethodLinkedIn, Build(linkedin, sig(lead.CategoryContentMarketing)).SuggestedContactMethod,
		"a LinkedIn page always gets a LinkedIn message")

	withCM := lead.ExtractedFields{PageURL: "https://acme.io", Company: "Acme"}
	require.Equal(t, MethodCommentDM, Build(withCM, sig(lead.CategoryContentMarketing)).SuggestedContactMethod)

	require.Equal(t, MethodEmail, Build(withCM, nil).SuggestedContactMethod)

	noCompany := lead.ExtractedFields{PageURL: "https://acme.io"}
	require.Equal(t, MethodContactForm, Build(noCompany, nil).SuggestedContactMethod)
}

func TestPickAnglePriority(t *testing.T) {
	require.Equal(t, AngleAccessibility,
		Build(lead.ExtractedFields{}, sig(lead.CategoryAccessibility, lead.CategoryVideoProduction)).SuggestedAngle)
	require.Equal(t, AngleSpeed,
		Build(lead.ExtractedFields{}, sig(lead.CategoryVideoProduction, lead.CategoryContentMarketing)).SuggestedAngle)
	require.Equal(t, AngleRepurposing,
		Build(lead.ExtractedFields{}, sig(lead.CategoryContentMarketing)).SuggestedAngle)
	require.Equal(t, AngleOverflow,
		Build(lead.ExtractedFields{}, nil).SuggestedAngle)
}

func TestStepFollowsAngle(t *testing.T) {
	require.Equal(t, StepAudit, pickStep(AngleAccessibility))
	require.Equal(t, StepPilotClip, pickStep(AngleSpeed))
	require.Equal(t, StepRepurposing, pickStep(AngleRepurposing))
	require.Equal(t, StepCall, pickStep(AngleOverflow))
	require.Equal(t, StepCall, pickStep(AngleTraining))
}

func TestHookUsesNameAndFallsBack(t *testing.T) {
	named := Build(lead.ExtractedFields{Name: "Jordan", Company: "Acme"}, sig(lead.CategoryVideoProduction))
	require.Contains(t, named.OutreachHook, "Hi Jordan")

	anon := Build(lead.ExtractedFields{}, sig(lead.CategoryVideoProduction))
	require.Contains(t, anon.OutreachHook, "Hi there")
}

func TestMessageLengthBudgets(t *testing.T) {
	fields := lead.ExtractedFields{Name: "Jordan", Company: "Acme"}
	for _, s := range [][]lead.SignalMatch{
		nil,
		sig(lead.CategoryAccessibility),
		sig(lead.CategoryVideoProduction),
		sig(lead.CategoryContentMarketing),
	} {
		reco := Build(fields, s)
		require.LessOrEqual(t, len(reco.OutreachHook), maxHookChars)
		require.LessOrEqual(t, len(reco.CallToAction), maxCTAChars)
		require.NotEmpty(t, reco.OutreachHook)
		require.NotEmpty(t, reco.CallToAction)
	}
}
