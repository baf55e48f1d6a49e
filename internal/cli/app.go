package cli

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/openswim/swim-meets/internal/config"
	"github.com/openswim/swim-meets/internal/fetch"
	"github.com/openswim/swim-meets/internal/meeting"
	"github.com/openswim/swim-meets/internal/observability"
	"github.com/openswim/swim-meets/internal/scrape"
	"github.com/openswim/swim-meets/internal/store"
)

// app wires the store, snapshots, and active source for one command run.
// The store is hydrated from the source's persisted snapshot so commands
// that only read (list, match, export) need no network access.
type app struct {
	cfg       *config.Config
	source    config.Source
	store     *store.Memory
	snapshots *store.Snapshots
	clock     clockwork.Clock

	// previous is the snapshot the store was hydrated from, kept as the
	// baseline for reporting which meetings a scrape newly discovered.
	previous *meeting.Snapshot
}

func newApp(cfg *config.Config) (*app, error) {
	source, err := cfg.ActiveSource()
	if err != nil {
		return nil, err
	}

	snapshots, err := store.NewSnapshots(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing snapshot storage: %w", err)
	}

	snap, err := snapshots.Load(source.Name)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	clock := clockwork.NewRealClock()
	return &app{
		cfg:       cfg,
		source:    source,
		store:     store.NewMemoryFromSnapshot(clock, snap),
		snapshots: snapshots,
		clock:     clock,
		previous:  snap,
	}, nil
}

// newScraper builds the full fetch/extract/upsert pipeline for the active
// source, registering metrics with the default Prometheus registry.
func (a *app) newScraper() *scrape.Scraper {
	fetcher := fetch.New(fetch.Options{
		Timeout:           a.cfg.HTTP.Timeout,
		UserAgent:         a.cfg.HTTP.UserAgent,
		MaxRedirects:      a.cfg.HTTP.MaxRedirects,
		RequestsPerSecond: a.cfg.HTTP.RequestsPerSecond,
		Burst:             a.cfg.HTTP.Burst,
		RespectRobots:     a.cfg.HTTP.RespectRobots,
	})
	return scrape.New(
		fetcher,
		a.store,
		a.source,
		a.cfg.Scrape.RateInterval,
		a.cfg.Scrape.ExistsCacheTTL,
		a.clock,
		observability.NewMetrics(),
	)
}

// save persists the store back to the source's snapshot file.
func (a *app) save() error {
	if err := a.snapshots.SaveMeetings(a.store.All(), a.source.Name, a.clock.Now()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
