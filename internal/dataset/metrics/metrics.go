package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for dataset ingest.
type Metrics struct {
	IngestedRecords prometheus.Counter
	IngestDuration  prometheus.Histogram
	IngestFailures  prometheus.Counter
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the ingest metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		IngestedRecords: factory.NewCounter(prometheus.CounterOpts{
			Name: "accidentstats_ingested_records_total",
			Help: "Total number of records written by successful ingests",
		}),
		IngestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "accidentstats_ingest_duration_seconds",
			Help:    "Duration of successful ingests, parse through store swap",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		IngestFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "accidentstats_ingest_failures_total",
			Help: "Total number of ingests that left the store unchanged",
		}),
	}
}

// ObserveIngest records a successful ingest of n records.
// Call with time.Now() at the start of the ingest.
func (m *Metrics) ObserveIngest(n int, start time.Time) {
	if m == nil {
		return
	}
	m.IngestedRecords.Add(float64(n))
	m.IngestDuration.Observe(time.Since(start).Seconds())
}

// IncrementFailure records a failed ingest.
func (m *Metrics) IncrementFailure() {
	if m == nil {
		return
	}
	m.IngestFailures.Inc()
}
