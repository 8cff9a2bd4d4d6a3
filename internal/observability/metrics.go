package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a collection run.
type Metrics struct {
	// Fetch metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,status_error,transport_error,decode_error}
	FetchDuration prometheus.Histogram

	// Run metrics.
	PipelineRunning  prometheus.Gauge
	Locations        prometheus.Gauge
	FailedRows       prometheus.Gauge
	RunDuration      prometheus.Gauge
	LastRunTimestamp prometheus.Gauge

	// Summary statistics of the latest run.
	PollutantMean   *prometheus.GaugeVec // labels: pollutant
	PollutantStdDev *prometheus.GaugeVec // labels: pollutant

	MessagesProduced prometheus.Counter
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.PipelineRunning,
		m.Locations,
		m.FailedRows,
		m.RunDuration,
		m.LastRunTimestamp,
		m.PollutantMean,
		m.PollutantStdDev,
		m.MessagesProduced,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "air_quality",
			Name:      "fetch_requests_total",
			Help:      "Air pollution API requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "air_quality",
			Name:      "fetch_duration_seconds",
			Help:      "Air pollution API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "air_quality",
			Name:      "pipeline_running",
			Help:      "1 while a collection run is in progress.",
		}),
		Locations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "air_quality",
			Name:      "locations",
			Help:      "Number of locations in the last run.",
		}),
		FailedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "air_quality",
			Name:      "failed_rows",
			Help:      "Number of locations whose fetch failed in the last run.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "air_quality",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last collection run.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "air_quality",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time at which the last run completed.",
		}),
		PollutantMean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "air_quality",
			Name:      "pollutant_mean_ugm3",
			Help:      "Mean concentration across locations in the last run.",
		}, []string{"pollutant"}),
		PollutantStdDev: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "air_quality",
			Name:      "pollutant_stddev_ugm3",
			Help:      "Population standard deviation across locations in the last run.",
		}, []string{"pollutant"}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "air_quality",
			Name:      "messages_produced_total",
			Help:      "Rows published to the Kafka topic.",
		}),
	}
}
