// Package normalize infers candidate fields (company name, country, remote
// posture) from extracted page content, and provides the URL and denylist
// helpers the rest of the pipeline shares.
package normalize

import (
	"strings"

	"github.com/leadscout/leadscout/internal/keywords"
	"github.com/leadscout/leadscout/internal/lead"
)

// CompanyName derives a display name from the page URL's domain, preferring
// the page title when it is non-empty and between 4 and 99 characters.
// Falls back to "Unknown" when both sources are empty.
func CompanyName(pageURL, title string) string {
	var name string

	if domain := Domain(pageURL); domain != "" {
		first := strings.Split(domain, ".")[0]
		parts := strings.Split(first, "-")
		for i, p := range parts {
			if p != "" {
				parts[i] = strings.ToUpper(p[:1]) + p[1:]
			}
		}
		name = strings.Join(parts, " ")
	}

	if title != "" && len(title) > 3 && len(title) < 100 {
		name = strings.TrimSpace(strings.Split(strings.Split(title, "|")[0], "-")[0])
	}

	if name == "" {
		return "Unknown"
	}
	return name
}

// Country guesses CA/US from indicator counts over the text plus the domain,
// falling back to the TLD and finally UNKNOWN. CA wins only when its
// indicator count is positive and strictly above the US count.
func Country(text, domain string) lead.CountryGuess {
	lower := strings.ToLower(text) + " " + strings.ToLower(domain)

	caMatches := countIndicators(lower, keywords.CanadaIndicators)
	usMatches := countIndicators(lower, keywords.USIndicators)

	switch {
	case caMatches > 0 && caMatches > usMatches:
		return lead.CountryCA
	case usMatches > 0:
		return lead.CountryUS
	case strings.HasSuffix(domain, ".ca"):
		return lead.CountryCA
	case strings.HasSuffix(domain, ".us"):
		return lead.CountryUS
	}
	return lead.CountryUnknown
}

// Remote guesses the remote-work posture from indicator counts over text.
func Remote(text string) lead.RemoteSignal {
	lower := strings.ToLower(text)

	remoteMatches := countIndicators(lower, keywords.RemoteIndicators)
	officeMatches := countIndicators(lower, keywords.OfficeIndicators)

	switch {
	case remoteMatches > 0 && remoteMatches > officeMatches:
		return lead.RemoteYes
	case officeMatches > 0:
		return lead.RemoteNo
	}
	return lead.RemoteUnknown
}

// CleanField collapses runs of whitespace to single spaces and trims.
func CleanField(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func countIndicators(lower string, indicators []string) int {
	count := 0
	for _, ind := range indicators {
		if strings.Contains(lower, ind) {
			count++
		}
	}
	return count
}
