package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	pipelineRuns  *prometheus.CounterVec
	sourceErrors  *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	snapshotOps   *prometheus.CounterVec
	scoredSymbols prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		pipelineRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock100_pipeline_runs_total",
				Help: "Prediction pipeline runs by outcome (fresh, cached, fallback, empty)",
			},
			[]string{"outcome"},
		),
		sourceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock100_source_errors_total",
				Help: "Upstream source fetch or parse failures",
			},
			[]string{"source"},
		),
		fetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stock100_source_fetch_seconds",
				Help:    "Duration of upstream source fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		snapshotOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock100_snapshot_ops_total",
				Help: "Snapshot store operations by result",
			},
			[]string{"op", "result"},
		),
		scoredSymbols: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "stock100_scored_symbols",
				Help: "Number of symbols scored in the last fresh run",
			},
		),
	}
}

// RecordRun records a pipeline run outcome.
func (r *Recorder) RecordRun(outcome string) {
	r.pipelineRuns.WithLabelValues(outcome).Inc()
}

// RecordSourceError records an upstream source failure.
func (r *Recorder) RecordSourceError(source string) {
	r.sourceErrors.WithLabelValues(source).Inc()
}

// RecordFetchDuration records how long a source fetch took in seconds.
func (r *Recorder) RecordFetchDuration(source string, seconds float64) {
	r.fetchDuration.WithLabelValues(source).Observe(seconds)
}

// RecordSnapshotOp records a snapshot store operation.
func (r *Recorder) RecordSnapshotOp(op, result string) {
	r.snapshotOps.WithLabelValues(op, result).Inc()
}

// RecordScoredSymbols records the size of the last scored universe.
func (r *Recorder) RecordScoredSymbols(n int) {
	r.scoredSymbols.Set(float64(n))
}
