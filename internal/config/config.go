// Package config loads and validates run configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob for a discovery run and the capture service.
type Config struct {
	Hunt    HuntConfig    `mapstructure:"hunt"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Server  ServerConfig  `mapstructure:"server"`
	Ponds   PondsConfig   `mapstructure:"ponds"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// HuntConfig governs the discovery pipeline's filters and limits.
type HuntConfig struct {
	MaxPages       int    `mapstructure:"max_pages"`
	TierFilter     string `mapstructure:"tier_filter"` // "AB" or "ABC"
	RemoteOnly     bool   `mapstructure:"remote_only"`
	IncludeUS      bool   `mapstructure:"include_us"`
	AllowUSCapture bool   `mapstructure:"allow_us_capture"`
	UseServer      bool   `mapstructure:"use_server"`
	ExportTo       string `mapstructure:"export_to"` // comma-separated: json,csv,server
	RespectRobots  bool   `mapstructure:"respect_robots"`
}

// HTTPConfig configures the polite HTTP client.
type HTTPConfig struct {
	RateLimitMs int    `mapstructure:"rate_limit_ms"`
	TimeoutMs   int    `mapstructure:"timeout_ms"`
	UserAgent   string `mapstructure:"user_agent"`
	Retries     int    `mapstructure:"retries"`
}

// PathsConfig points at the data files a run consumes and produces.
type PathsConfig struct {
	SeedURLs    string `mapstructure:"seed_urls"`
	SeedQueries string `mapstructure:"seed_queries"`
	SeedDomains string `mapstructure:"seed_domains"`
	DenyDomains string `mapstructure:"deny_domains"`
	OutDir      string `mapstructure:"out_dir"`
}

// ServerConfig covers both roles: the URL the hunter scores against, and the
// port plus store path the serve command binds.
type ServerConfig struct {
	URL       string `mapstructure:"url"`
	Port      int    `mapstructure:"port"`
	StorePath string `mapstructure:"store_path"`
}

// PondsConfig controls seed refreshing.
type PondsConfig struct {
	Refresh    bool   `mapstructure:"refresh"`
	Mode       string `mapstructure:"mode"` // "manual" or "serper"
	ConfigPath string `mapstructure:"config_path"`
	SerperKey  string `mapstructure:"serper_key"`
}

// LoggingConfig toggles zap development features and the minimum level.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load builds a Config from disk and environment. Environment variables use
// the LEADSCOUT prefix, e.g. LEADSCOUT_HTTP_RATE_LIMIT_MS.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hunt.max_pages", 50)
	v.SetDefault("hunt.tier_filter", "AB")
	v.SetDefault("hunt.remote_only", false)
	v.SetDefault("hunt.include_us", false)
	v.SetDefault("hunt.allow_us_capture", false)
	v.SetDefault("hunt.use_server", false)
	v.SetDefault("hunt.export_to", "json,csv")
	v.SetDefault("hunt.respect_robots", false)
	v.SetDefault("http.rate_limit_ms", 800)
	v.SetDefault("http.timeout_ms", 15000)
	v.SetDefault("http.user_agent", "Mozilla/5.0 (compatible; HunterBot/1.0)")
	v.SetDefault("http.retries", 3)
	v.SetDefault("paths.seed_urls", "data/seeds.urls.txt")
	v.SetDefault("paths.seed_queries", "data/seeds.queries.txt")
	v.SetDefault("paths.seed_domains", "data/seeds.domains.txt")
	v.SetDefault("paths.deny_domains", "data/deny.domains.txt")
	v.SetDefault("paths.out_dir", "out")
	v.SetDefault("server.url", "http://localhost:3789")
	v.SetDefault("server.port", 3789)
	v.SetDefault("server.store_path", "data/captures.db")
	v.SetDefault("ponds.refresh", false)
	v.SetDefault("ponds.mode", "manual")
	v.SetDefault("ponds.config_path", "data/seeds.ponds.json")
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.level", "")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Hunt.MaxPages <= 0 {
		return fmt.Errorf("hunt.max_pages must be > 0")
	}
	if c.Hunt.TierFilter != "AB" && c.Hunt.TierFilter != "ABC" {
		return fmt.Errorf("hunt.tier_filter must be AB or ABC")
	}
	if c.HTTP.RateLimitMs < 0 {
		return fmt.Errorf("http.rate_limit_ms must be >= 0")
	}
	if c.HTTP.TimeoutMs <= 0 {
		return fmt.Errorf("http.timeout_ms must be > 0")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Ponds.Mode != "manual" && c.Ponds.Mode != "serper" {
		return fmt.Errorf("ponds.mode must be manual or serper")
	}
	return nil
}

// RateLimit converts the configured pacing into a duration.
func (c Config) RateLimit() time.Duration {
	return time.Duration(c.HTTP.RateLimitMs) * time.Millisecond
}

// Timeout converts the configured HTTP timeout into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutMs) * time.Millisecond
}
