// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	PostingsStored   *prometheus.CounterVec
	PostingsRejected prometheus.Counter
	ProviderCalls    *prometheus.CounterVec
	ProviderLatency  prometheus.Histogram

	// Benchmark metrics
	BenchmarkRuns     *prometheus.CounterVec
	BenchmarkDuration prometheus.Histogram
	SnapshotsWritten  prometheus.Counter
	ReportsGenerated  prometheus.Counter

	// Health metrics
	LastSuccessfulSweep     prometheus.Gauge
	LastSuccessfulBenchmark prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "salary_benchmark_lab"
	}

	return &Metrics{
		PostingsStored: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "postings_stored_total",
			Help:      "Total number of postings stored by competitor tag",
		}, []string{"competitor"}),
		PostingsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "postings_rejected_total",
			Help:      "Total number of raw records rejected at normalization",
		}),
		ProviderCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "provider_calls_total",
			Help:      "Total number of provider calls by status",
		}, []string{"status"}),
		ProviderLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "provider_latency_seconds",
			Help:      "Provider call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		BenchmarkRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "benchmark",
			Name:      "runs_total",
			Help:      "Total number of benchmark pipeline runs by status",
		}, []string{"status"}),
		BenchmarkDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "benchmark",
			Name:      "duration_seconds",
			Help:      "Benchmark pipeline duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		SnapshotsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "benchmark",
			Name:      "snapshots_written_total",
			Help:      "Total number of benchmark snapshots persisted",
		}),
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),

		LastSuccessfulSweep: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_sweep_timestamp",
			Help:      "Unix timestamp of last successful ingestion sweep",
		}),
		LastSuccessfulBenchmark: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_benchmark_timestamp",
			Help:      "Unix timestamp of last successful benchmark run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordPostingStored increments the stored-postings counter.
func RecordPostingStored(isCompetitor bool) {
	label := "false"
	if isCompetitor {
		label = "true"
	}
	DefaultMetrics.PostingsStored.WithLabelValues(label).Inc()
}

// RecordPostingRejected increments the rejected-records counter.
func RecordPostingRejected() {
	DefaultMetrics.PostingsRejected.Inc()
}

// RecordProviderCall records a provider call outcome and latency.
func RecordProviderCall(seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DefaultMetrics.ProviderCalls.WithLabelValues(status).Inc()
	DefaultMetrics.ProviderLatency.Observe(seconds)
}

// RecordBenchmarkRun records a benchmark pipeline run.
func RecordBenchmarkRun(status string, durationSeconds float64) {
	DefaultMetrics.BenchmarkRuns.WithLabelValues(status).Inc()
	DefaultMetrics.BenchmarkDuration.Observe(durationSeconds)
}

// RecordSnapshotsWritten adds to the persisted-snapshots counter.
func RecordSnapshotsWritten(n int) {
	DefaultMetrics.SnapshotsWritten.Add(float64(n))
}

// RecordReportGenerated increments the reports counter.
func RecordReportGenerated() {
	DefaultMetrics.ReportsGenerated.Inc()
}
