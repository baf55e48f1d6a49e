// Package observability exposes Prometheus metrics for the scraping pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for a scrape pass.
type Metrics struct {
	PagesFetched    prometheus.Counter
	FetchErrors     prometheus.Counter
	RowsExtracted   prometheus.Counter
	RowsSkipped     *prometheus.CounterVec // label: reason={parse,existing,empty}
	MeetingsCreated prometheus.Counter
	MeetingsUpdated prometheus.Counter
	UpsertErrors    prometheus.Counter
	ScrapeDuration  prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swim_meets",
			Name:      "pages_fetched_total",
			Help:      "Listing pages fetched successfully.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swim_meets",
			Name:      "fetch_errors_total",
			Help:      "Listing page fetches that failed (non-2xx or transport error).",
		}),
		RowsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swim_meets",
			Name:      "rows_extracted_total",
			Help:      "Listing rows successfully normalized into meeting records.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swim_meets",
			Name:      "rows_skipped_total",
			Help:      "Listing rows skipped, by reason.",
		}, []string{"reason"}),
		MeetingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swim_meets",
			Name:      "meetings_created_total",
			Help:      "Live meetings created by upsert.",
		}),
		MeetingsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swim_meets",
			Name:      "meetings_updated_total",
			Help:      "Live meetings overwritten in place by upsert.",
		}),
		UpsertErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swim_meets",
			Name:      "upsert_errors_total",
			Help:      "Records dropped because validation or save failed.",
		}),
		ScrapeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swim_meets",
			Name:      "scrape_duration_seconds",
			Help:      "Duration of a complete scrape pass over a date range.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}),
	}
}

// NewMetrics creates the metrics and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PagesFetched,
		m.FetchErrors,
		m.RowsExtracted,
		m.RowsSkipped,
		m.MeetingsCreated,
		m.MeetingsUpdated,
		m.UpsertErrors,
		m.ScrapeDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so parallel tests don't
// collide on the default registry.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
