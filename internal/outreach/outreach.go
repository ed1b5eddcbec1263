// Package outreach turns scored signals into a first-touch recommendation:
// channel, pitch angle, opening hook, call to action, and onboarding step.
// The rules are deterministic; no templating or LLM involved.
package outreach

import (
	"strings"

	"github.com/leadscout/leadscout/internal/lead"
)

// Method is the recommended first-touch channel, in the analyze service's
// vocabulary (distinct from the local scorer's lead.ContactMethod).
type Method string

// Methods, in rule-priority order.
const (
	MethodLinkedIn    Method = "LinkedIn message"
	MethodCommentDM   Method = "Comment-then-DM"
	MethodEmail       Method = "Email"
	MethodContactForm Method = "Contact form"
)

// Angle is the pitch framing.
type Angle string

// Angles.
const (
	AngleSpeed         Angle = "Speed"
	AngleAccessibility Angle = "Accessibility"
	AngleRepurposing   Angle = "Repurposing"
	AngleOverflow      Angle = "Overflow capacity"
	AngleTraining      Angle = "Training/L&D"
)

// Step is the concrete no-commitment next action offered to the lead.
type Step string

// Onboarding steps.
const (
	StepPilotClip   Step = "Pilot clip"
	StepAudit       Step = "60-sec audit"
	StepRepurposing Step = "Repurposing plan"
	StepCall        Step = "10-min call"
)

const (
	maxHookChars = 300
	maxCTAChars  = 180
)

// Reco is the full recommendation, wire-compatible with the analyze response.
type Reco struct {
	SuggestedContactMethod Method `json:"suggested_contact_method"`
	SuggestedAngle         Angle  `json:"suggested_angle"`
	OutreachHook           string `json:"outreach_hook"`
	CallToAction           string `json:"call_to_action"`
	OnboardingNextStep     Step   `json:"onboarding_next_step"`
}

// Build produces the recommendation for one analyzed lead.
func Build(fields lead.ExtractedFields, signals []lead.SignalMatch) Reco {
	angle := pickAngle(signals)
	step := pickStep(angle)
	return Reco{
		SuggestedContactMethod: pickMethod(fields, signals),
		SuggestedAngle:         angle,
		OutreachHook:           truncate(hook(fields, angle), maxHookChars),
		CallToAction:           truncate(callToAction(step), maxCTAChars),
		OnboardingNextStep:     step,
	}
}

func hasCategory(signals []lead.SignalMatch, cat lead.Category) bool {
	for _, s := range signals {
		if s.Category == cat {
			return true
		}
	}
	return false
}

func pickMethod(fields lead.ExtractedFields, signals []lead.SignalMatch) Method {
	if strings.Contains(strings.ToLower(fields.PageURL), "linkedin.com") {
		return MethodLinkedIn
	}
	if hasCategory(signals, lead.CategoryContentMarketing) {
		return MethodCommentDM
	}
	if fields.Company != "" {
		return MethodEmail
	}
	return MethodContactForm
}

// pickAngle checks the strongest differentiator first. A lead that matches
// both accessibility and video keywords gets the accessibility pitch.
func pickAngle(signals []lead.SignalMatch) Angle {
	switch {
	case hasCategory(signals, lead.CategoryAccessibility):
		return AngleAccessibility
	case hasCategory(signals, lead.CategoryVideoProduction):
		return AngleSpeed
	case hasCategory(signals, lead.CategoryContentMarketing):
		return AngleRepurposing
	}
	return AngleOverflow
}

func pickStep(angle Angle) Step {
	switch angle {
	case AngleSpeed:
		return StepPilotClip
	case AngleAccessibility:
		return StepAudit
	case AngleRepurposing:
		return StepRepurposing
	}
	return StepCall
}

func hook(fields lead.ExtractedFields, angle Angle) string {
	name := fields.Name
	if name == "" {
		name = "there"
	}
	company := ""
	if fields.Company != "" {
		company = " at " + fields.Company
	}

	switch angle {
	case AngleSpeed:
		return "Hi " + name + " – I help teams ship video edits in 3–4 hours when timelines get tight. Would a free 60-second audit of one of your clips show you what that speed looks like?"
	case AngleAccessibility:
		return "Hi " + name + " – every video I deliver comes with captions, readable fonts, and sound-off optimization as standard. Interested in a free accessibility audit of a recent asset?"
	case AngleRepurposing:
		return "Hi " + name + " – I turn one long-form piece into 5+ accessibility-ready shorts in under a day. Could I map out a quick repurposing plan for you?"
	case AngleTraining:
		return "Hi " + name + " – I produce learning videos with built-in captions and readable design, shipped fast. Could a 10-minute call explore how that supports your training programs?"
	}
	return "Hi " + name + " – when your team" + company + " hits a video crunch, I offer 3–4 hour turnaround with accessibility baked in. Open to a quick 10-minute call about overflow capacity?"
}

func callToAction(step Step) string {
	switch step {
	case StepPilotClip:
		return "Send me one raw clip and I'll turn around an edited sample within 4 hours – no charge, no strings."
	case StepAudit:
		return "Drop me a link to any existing video and I'll send back a 60-second accessibility audit – totally free."
	case StepRepurposing:
		return "Share one long-form piece and I'll map out a repurposing plan with 5+ deliverables – on the house."
	}
	return "Would a quick 10-minute call this week work? Happy to share how I plug into teams like yours."
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
