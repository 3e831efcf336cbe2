package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the report endpoints.
// Tracks report build latency and cache effectiveness.
type Metrics struct {
	ReportDuration *prometheus.HistogramVec
	CacheLookups   *prometheus.CounterVec
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the report metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "accidentstats_report_duration_seconds",
			Help:    "Duration of report builds that reached the store",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"report", "outcome"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "accidentstats_report_cache_lookups_total",
			Help: "Report cache lookups by result (hit, miss, error)",
		}, []string{"report", "result"}),
	}
}

// ObserveReport records the duration of one report build.
// Call with time.Now() at the start of the build.
func (m *Metrics) ObserveReport(report string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ReportDuration.WithLabelValues(report, outcome).Observe(time.Since(start).Seconds())
}

// IncrementCacheLookup records a cache hit, miss or error for a report.
func (m *Metrics) IncrementCacheLookup(report, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(report, result).Inc()
}
