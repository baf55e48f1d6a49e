package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	src, err := cfg.ActiveSource()
	if err != nil {
		t.Fatalf("ActiveSource: %v", err)
	}
	if src.Name != "licensed-meets" {
		t.Errorf("default source = %q, want licensed-meets", src.Name)
	}
	if src.DatePartitioned {
		t.Error("licensed-meets profile is not date partitioned")
	}
	if !src.SkipExisting {
		t.Error("licensed-meets profile should skip records already stored")
	}
	if streaming := cfg.Scrape.Sources["streaming-results"]; streaming.SkipExisting {
		t.Error("streaming-results rows mutate in place and must be re-extracted")
	}
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	v.Set("scrape.rate_interval", "2s")
	v.Set("scrape.source", "streaming-results")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scrape.RateInterval != 2*time.Second {
		t.Errorf("rate_interval = %v, want 2s", cfg.Scrape.RateInterval)
	}
	src, err := cfg.ActiveSource()
	if err != nil {
		t.Fatalf("ActiveSource: %v", err)
	}
	if !src.DatePartitioned {
		t.Error("streaming-results profile should be date partitioned")
	}
}

func TestLoadUnknownSource(t *testing.T) {
	v := viper.New()
	v.Set("scrape.source", "nonexistent")
	if _, err := Load(v); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestListingURL(t *testing.T) {
	cfg := Default()
	day := time.Date(2025, time.November, 18, 0, 0, 0, 0, time.UTC)

	licensed := cfg.Scrape.Sources["licensed-meets"]
	if got := licensed.ListingURL(day); got != "https://www.swimmingresults.org/licensed_meets/" {
		t.Errorf("licensed URL = %q", got)
	}

	streaming := cfg.Scrape.Sources["streaming-results"]
	if got := streaming.ListingURL(day); got != "https://www.streamingresults.org/meetings?date=2025-11-18" {
		t.Errorf("streaming URL = %q", got)
	}
}
