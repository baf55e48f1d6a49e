package scrape

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonboulle/clockwork"

	"github.com/openswim/swim-meets/internal/config"
	"github.com/openswim/swim-meets/internal/logger"
	"github.com/openswim/swim-meets/internal/meeting"
	"github.com/openswim/swim-meets/internal/observability"
	"github.com/openswim/swim-meets/internal/store"
)

// PageFetcher fetches one listing page. Satisfied by *fetch.Fetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Skip records a date unit that produced no records and why.
type Skip struct {
	Date   time.Time
	Reason string
}

// Result collects the per-unit outcomes of a scrape pass. The caller decides
// whether an all-skipped batch is an overall failure.
type Result struct {
	Meetings []*meeting.LiveMeeting
	Skips    []Skip
}

// Scraper drives fetch, extraction, and upsert over a date range.
type Scraper struct {
	fetcher   PageFetcher
	store     store.Store
	extractor *Extractor
	source    config.Source
	interval  time.Duration
	clock     clockwork.Clock
	metrics   *observability.Metrics
}

// New creates a Scraper for one source profile. interval is the fixed pause
// between successive per-day fetches; cacheTTL bounds the extractor's
// existence cache.
func New(fetcher PageFetcher, st store.Store, source config.Source, interval, cacheTTL time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Scraper {
	return &Scraper{
		fetcher:   fetcher,
		store:     st,
		extractor: NewExtractor(source, st, cacheTTL, metrics),
		source:    source,
		interval:  interval,
		clock:     clock,
		metrics:   metrics,
	}
}

// ScrapeMeetings scrapes the inclusive date range one day at a time, or with
// a single fetch for sources whose listing page is not date-partitioned.
// Faults while processing one date are logged and skipped; the only errors
// returned are argument errors.
func (s *Scraper) ScrapeMeetings(ctx context.Context, start, end time.Time) (*Result, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("scrape: start and end dates are required")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("scrape: end date %s before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	logger.Info("scraping meetings", logger.Fields{
		"source": s.source.Name,
		"from":   start.Format("2006-01-02"),
		"to":     end.Format("2006-01-02"),
	})
	started := s.clock.Now()
	result := &Result{}

	if !s.source.DatePartitioned {
		// One listing page covers the whole range.
		s.scrapeUnit(ctx, s.source.ListingURL(start), start, result)
	} else {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			s.scrapeUnit(ctx, s.source.ListingURL(d), d, result)
			// Rate limiting: be respectful to the source server.
			if !d.Equal(end) && s.interval > 0 {
				s.clock.Sleep(s.interval)
			}
		}
	}

	s.metrics.ScrapeDuration.Observe(s.clock.Since(started).Seconds())
	logger.Info("scrape finished", logger.Fields{
		"source":  s.source.Name,
		"saved":   len(result.Meetings),
		"skipped": len(result.Skips),
	})
	return result, nil
}

// RefreshUpcomingMeetings scrapes the window [today, today+7d] and returns
// the number of meetings created or updated.
func (s *Scraper) RefreshUpcomingMeetings(ctx context.Context) (int, error) {
	today := s.clock.Now().UTC().Truncate(24 * time.Hour)
	result, err := s.ScrapeMeetings(ctx, today, today.AddDate(0, 0, 7))
	if err != nil {
		return 0, err
	}
	return len(result.Meetings), nil
}

// scrapeUnit processes one date unit: fetch, extract, upsert. All faults are
// recorded on the result and logged, never propagated.
func (s *Scraper) scrapeUnit(ctx context.Context, url string, date time.Time, result *Result) {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Error("failed to fetch listing page", logger.Fields{
			"url":  url,
			"date": date.Format("2006-01-02"),
		}, err)
		s.metrics.FetchErrors.Inc()
		result.Skips = append(result.Skips, Skip{Date: date, Reason: err.Error()})
		return
	}
	s.metrics.PagesFetched.Inc()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Error("failed to parse listing page", logger.Fields{"url": url}, err)
		result.Skips = append(result.Skips, Skip{Date: date, Reason: err.Error()})
		return
	}

	for _, record := range s.extractor.Extract(doc, date) {
		saved, created, err := s.store.Upsert(record)
		if err != nil {
			logger.Error("failed to save meeting", logger.Fields{"name": record.Name}, err)
			s.metrics.UpsertErrors.Inc()
			continue
		}
		if created {
			s.metrics.MeetingsCreated.Inc()
			logger.Info("created meeting", logger.Fields{
				"name": saved.Name,
				"date": saved.StartDate.Format("2006-01-02"),
			})
		} else {
			s.metrics.MeetingsUpdated.Inc()
		}
		result.Meetings = append(result.Meetings, saved)
	}
}
