// Package config holds runtime configuration for the swim-meets pipeline.
//
// Source listing markup changes without notice, so everything that binds the
// scraper to a particular site — base URL, row selector, cell layout — lives
// here as data rather than in code. Values are resolved through viper from,
// in priority order: flags bound by the CLI, SWIMMEETS_* environment
// variables, an optional YAML config file, and the defaults below.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// CellMap maps semantic fields to td indexes within a listing row.
// An index of -1 means the source does not carry that field.
type CellMap struct {
	Date    int `mapstructure:"date" yaml:"date"`
	Name    int `mapstructure:"name" yaml:"name"`
	Details int `mapstructure:"details" yaml:"details"`
	Number  int `mapstructure:"number" yaml:"number"`
	Region  int `mapstructure:"region" yaml:"region"`
	City    int `mapstructure:"city" yaml:"city"`
	Venue   int `mapstructure:"venue" yaml:"venue"`
	Course  int `mapstructure:"course" yaml:"course"`
	Level   int `mapstructure:"level" yaml:"level"`
}

// Source describes one external listing site profile.
type Source struct {
	Name    string `mapstructure:"name" yaml:"name"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// ListingPath serves sources whose listing page covers the whole range;
	// DatePathFormat (with one %s for an ISO date) serves date-partitioned
	// sources. DatePartitioned selects between them.
	ListingPath     string `mapstructure:"listing_path" yaml:"listing_path"`
	DatePathFormat  string `mapstructure:"date_path_format" yaml:"date_path_format"`
	DatePartitioned bool   `mapstructure:"date_partitioned" yaml:"date_partitioned"`

	RowSelector string `mapstructure:"row_selector" yaml:"row_selector"`
	SkipHeader  bool   `mapstructure:"skip_header" yaml:"skip_header"`

	// SkipExisting short-circuits extraction for records already in the
	// store instead of re-parsing and overwriting them. Listings that only
	// ever append rows can skip; listings whose rows mutate must not.
	SkipExisting bool    `mapstructure:"skip_existing" yaml:"skip_existing"`
	Cells        CellMap `mapstructure:"cells" yaml:"cells"`
}

// ListingURL returns the URL to fetch for the given date.
func (s Source) ListingURL(date time.Time) string {
	if s.DatePartitioned {
		return s.BaseURL + fmt.Sprintf(s.DatePathFormat, date.Format("2006-01-02"))
	}
	return s.BaseURL + s.ListingPath
}

// HTTP configures the page fetcher.
type HTTP struct {
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent         string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxRedirects      int           `mapstructure:"max_redirects" yaml:"max_redirects"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int           `mapstructure:"burst" yaml:"burst"`
	RespectRobots     bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
}

// Scrape configures the orchestrator.
type Scrape struct {
	// RateInterval is the fixed pause between successive per-day fetches.
	RateInterval time.Duration `mapstructure:"rate_interval" yaml:"rate_interval"`
	// ExistsCacheTTL bounds the read-through cache over store existence checks.
	ExistsCacheTTL time.Duration `mapstructure:"exists_cache_ttl" yaml:"exists_cache_ttl"`
	// Source names the active profile in Sources.
	Source  string            `mapstructure:"source" yaml:"source"`
	Sources map[string]Source `mapstructure:"sources" yaml:"sources"`
}

// Config is the root configuration.
type Config struct {
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	HTTP     HTTP   `mapstructure:"http" yaml:"http"`
	Scrape   Scrape `mapstructure:"scrape" yaml:"scrape"`
}

// Default returns the built-in configuration: the swimmingresults.org
// licensed-meets profile plus the date-partitioned streamingresults.org
// profile with its differing cell layout.
func Default() *Config {
	return &Config{
		DataDir:  "~/.local/share/swim-meets",
		LogLevel: "info",
		HTTP: HTTP{
			Timeout:           30 * time.Second,
			UserAgent:         "swim-meets/1.0 (github.com/openswim/swim-meets)",
			MaxRedirects:      5,
			RequestsPerSecond: 1,
			Burst:             1,
			RespectRobots:     true,
		},
		Scrape: Scrape{
			RateInterval:   time.Second,
			ExistsCacheTTL: 10 * time.Minute,
			Source:         "licensed-meets",
			Sources: map[string]Source{
				"licensed-meets": {
					Name:         "licensed-meets",
					BaseURL:      "https://www.swimmingresults.org",
					ListingPath:  "/licensed_meets/",
					RowSelector:  "table tr",
					SkipHeader:   true,
					SkipExisting: true,
					Cells: CellMap{
						Date:    0,
						Name:    1,
						Details: 3,
						Number:  -1,
						Region:  -1,
						City:    -1,
						Venue:   -1,
						Course:  -1,
						Level:   -1,
					},
				},
				"streaming-results": {
					Name:            "streaming-results",
					BaseURL:         "https://www.streamingresults.org",
					DatePathFormat:  "/meetings?date=%s",
					DatePartitioned: true,
					RowSelector:     "table tr.meeting-row",
					Cells: CellMap{
						Date:    -1,
						Name:    1,
						Details: -1,
						Number:  0,
						Region:  2,
						City:    3,
						Venue:   4,
						Course:  5,
						Level:   6,
					},
				},
			},
		},
	}
}

// Load resolves the configuration through viper on top of the defaults.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()

	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("http.timeout", cfg.HTTP.Timeout)
	v.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	v.SetDefault("http.max_redirects", cfg.HTTP.MaxRedirects)
	v.SetDefault("http.requests_per_second", cfg.HTTP.RequestsPerSecond)
	v.SetDefault("http.burst", cfg.HTTP.Burst)
	v.SetDefault("http.respect_robots", cfg.HTTP.RespectRobots)
	v.SetDefault("scrape.rate_interval", cfg.Scrape.RateInterval)
	v.SetDefault("scrape.exists_cache_ttl", cfg.Scrape.ExistsCacheTTL)
	v.SetDefault("scrape.source", cfg.Scrape.Source)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Configured sources extend rather than replace the built-in profiles.
	defaults := Default()
	for name, src := range defaults.Scrape.Sources {
		if _, ok := cfg.Scrape.Sources[name]; !ok {
			if cfg.Scrape.Sources == nil {
				cfg.Scrape.Sources = make(map[string]Source)
			}
			cfg.Scrape.Sources[name] = src
		}
	}
	return cfg, cfg.Validate()
}

// ActiveSource returns the profile selected by Scrape.Source.
func (c *Config) ActiveSource() (Source, error) {
	src, ok := c.Scrape.Sources[c.Scrape.Source]
	if !ok {
		return Source{}, fmt.Errorf("unknown scrape source %q", c.Scrape.Source)
	}
	return src, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Scrape.RateInterval < 0 {
		return fmt.Errorf("scrape.rate_interval must not be negative")
	}
	src, err := c.ActiveSource()
	if err != nil {
		return err
	}
	if src.BaseURL == "" {
		return fmt.Errorf("source %q: base_url is required", c.Scrape.Source)
	}
	if src.RowSelector == "" {
		return fmt.Errorf("source %q: row_selector is required", c.Scrape.Source)
	}
	if src.DatePartitioned && src.DatePathFormat == "" {
		return fmt.Errorf("source %q: date_path_format is required for date-partitioned sources", c.Scrape.Source)
	}
	if !src.DatePartitioned && src.ListingPath == "" {
		return fmt.Errorf("source %q: listing_path is required", c.Scrape.Source)
	}
	return nil
}
