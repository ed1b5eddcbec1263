// Package keywords is the single source of truth for every keyword and
// indicator list used by signal detection, normalization, and scoring.
// Boundary consumers import these tables rather than re-declaring them.
package keywords

import (
	"strings"

	"github.com/leadscout/leadscout/internal/lead"
)

// CategoryOrder fixes the iteration order for signal detection.
var CategoryOrder = []lead.Category{
	lead.CategoryVideoProduction,
	lead.CategoryContentMarketing,
	lead.CategorySeniority,
	lead.CategoryRemoteCanada,
	lead.CategoryRecency,
	lead.CategoryAccessibility,
}

// Signal maps each category to its trigger phrases. Matching is plain
// case-insensitive substring containment, so "lead" also hits inside
// "leadership".
var Signal = map[lead.Category][]string{
	lead.CategoryVideoProduction: {
		"video",
		"producer",
		"webinar",
		"podcast",
		"training video",
		"explainer",
		"animation",
		"motion graphics",
		"post-production",
		"editing",
		"filmmaker",
		"videographer",
	},
	lead.CategoryContentMarketing: {
		"content",
		"marketing",
		"comms",
		"communications",
		"brand",
		"campaigns",
		"content ops",
		"internal comms",
		"enablement",
		"social media",
		"demand gen",
	},
	lead.CategorySeniority: {
		"manager",
		"director",
		"head of",
		"vp ",
		"vice president",
		"lead",
		"senior",
		"chief",
		"founder",
		"co-founder",
		"principal",
	},
	lead.CategoryRemoteCanada: {
		"remote",
		"canada",
		"canadian",
		"toronto",
		"vancouver",
		"montreal",
		"ottawa",
		"calgary",
	},
	lead.CategoryRecency: {
		"just posted",
		"1 day ago",
		"2 days ago",
		"3 days ago",
		"days ago",
		"hours ago",
		"1 week ago",
		"weeks ago",
		"recently",
		"new role",
		"just started",
	},
	lead.CategoryAccessibility: {
		"accessibility",
		"captions",
		"closed captions",
		"subtitles",
		"wcag",
		"ada compliant",
		"sound-off",
		"readable",
		"inclusive design",
		"alt text",
	},
}

// Video feeds the candidate's video_keywords field during page scanning.
var Video = []string{
	"webinar",
	"podcast",
	"training",
	"video",
	"ads",
	"advertisement",
	"social",
	"youtube",
	"case study",
	"testimonial",
	"demo",
	"screencast",
	"animation",
	"editing",
	"production",
}

// Location feeds the candidate's location_keywords field.
var Location = []string{
	"canada",
	"canadian",
	"remote",
	"distributed",
	"on-site",
	"onsite",
	"in-office",
	"hybrid",
	"work from home",
	"wfh",
}

// Indicator lists consumed by the normalizer's country and remote guesses.
var (
	CanadaIndicators = []string{
		"canada",
		"canadian",
		".ca",
		"toronto",
		"vancouver",
		"montreal",
		"calgary",
		"ottawa",
		"winnipeg",
		"provincial",
		"province",
	}

	USIndicators = []string{
		"united states",
		"america",
		"usa",
		".us",
		"new york",
		"los angeles",
		"san francisco",
		"texas",
		"california",
	}

	RemoteIndicators = []string{
		"remote",
		"distributed",
		"work from",
		"wfh",
		"async",
		"global",
		"anywhere",
	}

	OfficeIndicators = []string{
		"on-site",
		"onsite",
		"in-office",
		"office required",
		"location required",
	}
)

// Contains returns the keywords present in text as case-insensitive
// substrings, in dictionary order.
func Contains(text string, list []string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range list {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}
