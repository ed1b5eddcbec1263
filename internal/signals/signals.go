// Package signals scans extracted page content for the evidence the scorers
// consume: category keyword hits, contact emails, and interesting links.
package signals

import (
	"regexp"
	"strings"

	"github.com/leadscout/leadscout/internal/keywords"
	"github.com/leadscout/leadscout/internal/lead"
	"github.com/leadscout/leadscout/internal/normalize"
)

// maxEmails caps how many distinct addresses a single page contributes.
const maxEmails = 5

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	emailStrict  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// PageSignals is everything a single page contributes to a candidate before
// scoring.
type PageSignals struct {
	Matches          []lead.SignalMatch
	Emails           []string
	ContactPageURL   string
	CareersPageURL   string
	DemoBookingURL   string
	SocialLinks      []string
	VideoKeywords    []string
	LocationKeywords []string
}

// Detect reports, per category and in the fixed category order, the trigger
// phrases present in text. Categories with no hits are omitted.
func Detect(text string) []lead.SignalMatch {
	var matches []lead.SignalMatch
	for _, category := range keywords.CategoryOrder {
		if found := keywords.Contains(text, keywords.Signal[category]); len(found) > 0 {
			matches = append(matches, lead.SignalMatch{Category: category, Matched: found})
		}
	}
	return matches
}

// Emails extracts the distinct plausible addresses from text, skipping
// anything that looks like a placeholder, capped at maxEmails. Addresses keep
// the spelling found on the page; duplicates differing only in case collapse
// to the first occurrence.
func Emails(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, addr := range emailPattern.FindAllString(text, -1) {
		lower := strings.ToLower(addr)
		if !emailStrict.MatchString(addr) {
			continue
		}
		if strings.Contains(lower, "example") || strings.Contains(lower, "test") {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, addr)
		if len(out) == maxEmails {
			break
		}
	}
	return out
}

// Scan combines keyword detection, email extraction, and link classification
// for one page. Relative hrefs are resolved against baseURL.
func Scan(text string, links []string, baseURL string) PageSignals {
	sig := PageSignals{
		Matches:          Detect(text),
		Emails:           Emails(text),
		VideoKeywords:    keywords.Contains(text, keywords.Video),
		LocationKeywords: keywords.Contains(text, keywords.Location),
	}

	// Link categories are checked independently: one href can fill several.
	// Within a category the last matching link wins.
	seenSocial := make(map[string]struct{})
	for _, href := range links {
		lower := strings.ToLower(href)
		if strings.Contains(lower, "contact") {
			sig.ContactPageURL = normalize.Resolve(baseURL, href)
		}
		if strings.Contains(lower, "career") || strings.Contains(lower, "jobs") {
			sig.CareersPageURL = normalize.Resolve(baseURL, href)
		}
		if strings.Contains(lower, "demo") ||
			strings.Contains(lower, "booking") ||
			strings.Contains(lower, "schedule") ||
			strings.Contains(lower, "calendar") {
			sig.DemoBookingURL = normalize.Resolve(baseURL, href)
		}
		if strings.Contains(lower, "twitter.com") ||
			strings.Contains(lower, "facebook.com") ||
			strings.Contains(lower, "instagram.com") ||
			strings.Contains(lower, "youtube.com") {
			resolved := normalize.Resolve(baseURL, href)
			if resolved == "" {
				continue
			}
			if _, dup := seenSocial[resolved]; dup {
				continue
			}
			seenSocial[resolved] = struct{}{}
			sig.SocialLinks = append(sig.SocialLinks, resolved)
		}
	}
	return sig
}
