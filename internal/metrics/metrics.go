package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"vidscope/internal/services"
)

const namespace = "vidscope"

// Recorder owns a private registry so independent recorders never collide.
type Recorder struct {
	registry *prometheus.Registry

	attemptFailures *prometheus.CounterVec
	retries         *prometheus.CounterVec
	retryDelay      *prometheus.HistogramVec
	gaveUp          *prometheus.CounterVec
	extractions     *prometheus.CounterVec
	records         *prometheus.CounterVec
}

// New builds a Recorder with all collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		// attemptFailures tracks every failed outbound attempt by surface and kind
		attemptFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attempt_failures_total",
				Help:      "Total number of failed outbound attempts",
			},
			[]string{"surface", "kind"},
		),

		// retries tracks scheduled retries per surface
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retries_total",
				Help:      "Total number of scheduled retries",
			},
			[]string{"surface"},
		),

		retryDelay: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "retry_delay_seconds",
				Help:      "Backoff delay before each retry in seconds",
				Buckets:   []float64{0.5, 1, 2, 4, 8, 16},
			},
			[]string{"surface"},
		),

		// gaveUp tracks calls that surfaced a failure to the caller
		gaveUp: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Total number of calls that failed after retries",
			},
			[]string{"surface", "kind"},
		),

		// extractions tracks which tier won per content type
		extractions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extractions_total",
				Help:      "Total number of extractions by winning tier",
			},
			[]string{"content", "tier", "degraded"},
		),

		records: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extracted_records_total",
				Help:      "Total number of records produced by extractions",
			},
			[]string{"content"},
		),
	}
}

// Registry exposes the underlying registry (for Gather or HTTP handlers).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// AttemptFailed implements retry.Observer.
func (r *Recorder) AttemptFailed(surface services.Surface, _ int, err *services.ClassifiedError) {
	r.attemptFailures.WithLabelValues(string(surface), kindLabel(err)).Inc()
}

// RetryScheduled implements retry.Observer.
func (r *Recorder) RetryScheduled(surface services.Surface, _ int, delay time.Duration) {
	r.retries.WithLabelValues(string(surface)).Inc()
	r.retryDelay.WithLabelValues(string(surface)).Observe(delay.Seconds())
}

// GaveUp implements retry.Observer.
func (r *Recorder) GaveUp(surface services.Surface, _ int, err *services.ClassifiedError) {
	r.gaveUp.WithLabelValues(string(surface), kindLabel(err)).Inc()
}

// ExtractionCompleted implements insights.ExtractionObserver.
func (r *Recorder) ExtractionCompleted(content, tier string, degraded bool, records int) {
	content = strings.TrimSpace(content)
	if tier == "" {
		tier = "none"
	}
	r.extractions.WithLabelValues(content, tier, strconv.FormatBool(degraded)).Inc()
	if records > 0 {
		r.records.WithLabelValues(content).Add(float64(records))
	}
}

// WriteTextfile writes the registry in text exposition format to path,
// atomically, for the node-exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func kindLabel(err *services.ClassifiedError) string {
	if err == nil {
		return string(services.KindUnknown)
	}
	return string(err.Kind)
}
