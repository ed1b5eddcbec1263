package ponds

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output modes for discovered seed URLs.
const (
	OutputModeURLsFile = "urls_file"
	OutputModeDirect   = "direct"
)

// Config drives seed discovery: the search queries, the per-domain URL
// patterns to expand, and where the refreshed seed list goes.
type Config struct {
	Queries            []string `json:"queries"`
	RequiredTerms      []string `json:"required_terms"`
	CanadaBoostTerms   []string `json:"canada_boost_terms"`
	URLPatterns        []string `json:"url_patterns"`
	MaxResultsPerQuery int      `json:"max_results_per_query"`
	AllowUS            bool     `json:"allow_us"`
	OutputMode         string   `json:"output_mode"`
	OutputFile         string   `json:"output_file"`
}

// LoadConfig reads a pond configuration file. A missing or malformed file is
// fatal to the run, unlike seed lists which degrade to empty.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read pond config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse pond config %s: %w", path, err)
	}
	return cfg, nil
}
