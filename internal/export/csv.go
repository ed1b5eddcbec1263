package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/lead"
)

// csvHeader is the fixed 17-column layout spreadsheet users depend on.
var csvHeader = []string{
	"company_name",
	"domain",
	"company_url",
	"score",
	"tier",
	"country_guess",
	"remote_signal",
	"us_review_required",
	"emails",
	"contact_page_url",
	"careers_page_url",
	"demo_booking_url",
	"recommended_contact_method",
	"suggested_outreach_angle",
	"video_keywords",
	"location_keywords",
	"confidence",
}

// CSV writes candidates to outDir as leads-YYYY-MM-DD.csv and returns the
// file path. Multi-valued fields are joined with "; ".
func CSV(candidates []lead.Candidate, outDir string, now time.Time, logger *zap.Logger) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(outDir, fmt.Sprintf("leads-%s.csv", now.UTC().Format("2006-01-02")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv export: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range candidates {
		if err := w.Write(csvRow(c)); err != nil {
			return "", fmt.Errorf("write csv row for %s: %w", c.Domain, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv export: %w", err)
	}

	logger.Info("exported csv", zap.String("path", path), zap.Int("candidates", len(candidates)))
	return path, nil
}

func csvRow(c lead.Candidate) []string {
	usReview := "no"
	if c.USReviewRequired {
		usReview = "yes"
	}
	return []string{
		c.CompanyName,
		c.Domain,
		c.CompanyURL,
		strconv.Itoa(c.Score),
		string(c.Tier),
		string(c.CountryGuess),
		string(c.RemoteSignal),
		usReview,
		strings.Join(c.Emails, "; "),
		c.ContactPageURL,
		c.CareersPageURL,
		c.DemoBookingURL,
		string(c.RecommendedContactMethod),
		string(c.SuggestedOutreachAngle),
		strings.Join(c.VideoKeywords, "; "),
		strings.Join(c.LocationKeywords, "; "),
		strconv.Itoa(c.Confidence),
	}
}
