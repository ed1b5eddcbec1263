// Package lead defines the core domain types shared across the discovery
// pipeline, the scoring strategies, and the capture service.
package lead

import "time"

// Tier is the coarse lead-quality bucket derived from a score.
type Tier string

// Tier values, best to worst.
const (
	TierA    Tier = "A"
	TierB    Tier = "B"
	TierC    Tier = "C"
	TierSkip Tier = "SKIP"
)

// Rank returns the sort rank for a tier; lower is better.
func (t Tier) Rank() int {
	switch t {
	case TierA:
		return 0
	case TierB:
		return 1
	case TierC:
		return 2
	case TierSkip:
		return 3
	}
	return 4
}

// Category is one of the six fixed signal keyword themes.
type Category string

// Signal categories. Detection always runs in this order.
const (
	CategoryVideoProduction  Category = "video_production"
	CategoryContentMarketing Category = "content_marketing"
	CategorySeniority        Category = "seniority"
	CategoryRemoteCanada     Category = "remote_canada"
	CategoryRecency          Category = "recency"
	CategoryAccessibility    Category = "accessibility"
)

// SignalMatch carries the exact phrases found for one category.
type SignalMatch struct {
	Category Category `json:"category"`
	Matched  []string `json:"matched"`
}

// CountryGuess is the inferred country of a candidate.
type CountryGuess string

// Country guesses.
const (
	CountryCA      CountryGuess = "CA"
	CountryUS      CountryGuess = "US"
	CountryOther   CountryGuess = "OTHER"
	CountryUnknown CountryGuess = "UNKNOWN"
)

// RemoteSignal is the inferred remote-work posture of a candidate.
type RemoteSignal string

// Remote signals.
const (
	RemoteYes     RemoteSignal = "YES"
	RemoteNo      RemoteSignal = "NO"
	RemoteUnknown RemoteSignal = "UNKNOWN"
)

// ContactMethod is the recommended first-touch channel for a candidate.
type ContactMethod string

// Contact methods produced by the local scorer. The remote scorer may carry
// the serving side's own vocabulary through unchanged.
const (
	ContactEmail   ContactMethod = "email"
	ContactForm    ContactMethod = "contact_form"
	ContactBooking ContactMethod = "booking_link"
	ContactUnknown ContactMethod = "unknown"
)

// OutreachAngle is the suggested pitch framing for a candidate.
type OutreachAngle string

// Outreach angles produced by the local scorer.
const (
	AngleSpeed         OutreachAngle = "speed"
	AngleAccessibility OutreachAngle = "accessibility"
	AngleRepurposing   OutreachAngle = "repurposing"
	AngleOverflow      OutreachAngle = "overflow"
	AngleTraining      OutreachAngle = "training"
)

// ExtractedFields are the normalized lead fields exchanged with the scoring
// service.
type ExtractedFields struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	PageURL  string `json:"page_url"`
}

// Candidate is the central aggregate produced once per successfully fetched,
// non-denied, non-duplicate domain. It is scored exactly once and never
// updated in place after ranking.
type Candidate struct {
	Domain      string `json:"domain"`
	CompanyName string `json:"company_name"`
	CompanyURL  string `json:"company_url"`

	// Contact signals.
	Emails         []string `json:"emails"`
	ContactPageURL string   `json:"contact_page_url,omitempty"`
	CareersPageURL string   `json:"careers_page_url,omitempty"`
	DemoBookingURL string   `json:"demo_booking_url,omitempty"`
	SocialLinks    []string `json:"social_links"`

	// Signal keywords.
	VideoKeywords    []string `json:"video_keywords"`
	LocationKeywords []string `json:"location_keywords"`

	// Derived.
	CountryGuess     CountryGuess `json:"country_guess"`
	RemoteSignal     RemoteSignal `json:"remote_signal"`
	USReviewRequired bool         `json:"us_review_required"`

	// Scoring.
	Score                    int           `json:"score"`
	Tier                     Tier          `json:"tier"`
	RecommendedContactMethod ContactMethod `json:"recommended_contact_method"`
	SuggestedOutreachAngle   OutreachAngle `json:"suggested_outreach_angle"`
	Confidence               int           `json:"confidence"`
	DiscoveryConfidence      int           `json:"discovery_confidence"`

	// Discovery metadata.
	SourceQuery string `json:"source_query,omitempty"`
	SourceMode  string `json:"source_mode,omitempty"`

	// Metadata.
	RawTextSample string    `json:"raw_text_sample,omitempty"`
	SourceURL     string    `json:"source_url"`
	DiscoveredAt  time.Time `json:"discovered_at"`
}

// Row is the flat lead record appended to the capture store.
type Row struct {
	TimestampISO           string `json:"timestamp_iso"`
	Name                   string `json:"name"`
	Title                  string `json:"title"`
	Company                string `json:"company"`
	Location               string `json:"location"`
	PageURL                string `json:"page_url"`
	Score                  int    `json:"score"`
	Tier                   Tier   `json:"tier"`
	Evidence               string `json:"evidence"`
	SuggestedContactMethod string `json:"suggested_contact_method"`
	SuggestedAngle         string `json:"suggested_angle"`
	OutreachHook           string `json:"outreach_hook"`
	CallToAction           string `json:"call_to_action"`
	OnboardingNextStep     string `json:"onboarding_next_step"`
	Status                 string `json:"status"`
	PipelineStage          string `json:"pipeline_stage"`
	NextAction             string `json:"next_action"`
	FollowupDate           string `json:"followup_date"`
	Notes                  string `json:"notes"`
}
