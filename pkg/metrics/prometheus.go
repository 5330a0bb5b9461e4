package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerFetches *prometheus.CounterVec
	cacheOps        *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
	predictions     *prometheus.CounterVec
	trainJobs       *prometheus.CounterVec
	ticksIngested   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_provider_fetches_total",
				Help: "Total number of upstream provider fetches",
			},
			[]string{"provider", "outcome"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_cache_ops_total",
				Help: "Cache lookups by layer and outcome",
			},
			[]string{"layer", "outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockpulse_last_price",
				Help: "Last observed price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_predictions_total",
				Help: "Predictions served by class",
			},
			[]string{"class"},
		),
		trainJobs: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_train_jobs_total",
				Help: "Training jobs by terminal status",
			},
			[]string{"status"},
		),
		ticksIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_ticks_ingested_total",
				Help: "Live ticks routed to a backend",
			},
			[]string{"backend", "symbol"},
		),
	}
}

// RecordFetch records an upstream provider fetch.
func (r *Recorder) RecordFetch(provider, outcome string) {
	r.providerFetches.WithLabelValues(provider, outcome).Inc()
}

// RecordCache records a cache lookup outcome ("hit" or "miss") for a layer.
func (r *Recorder) RecordCache(layer, outcome string) {
	r.cacheOps.WithLabelValues(layer, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordPrediction records a served prediction class.
func (r *Recorder) RecordPrediction(class string) {
	r.predictions.WithLabelValues(class).Inc()
}

// RecordTrainJob records a training job reaching a terminal status.
func (r *Recorder) RecordTrainJob(status string) {
	r.trainJobs.WithLabelValues(status).Inc()
}

// RecordTickIngested records a live tick routed to a backend.
func (r *Recorder) RecordTickIngested(backend, symbol string) {
	r.ticksIngested.WithLabelValues(backend, symbol).Inc()
}
