// Package metrics holds the Prometheus collectors for the gateway
package metrics

import (
	"net/http"
	"strconv"
	"time"

	perr "spedicija/internal/platform/errors"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the gateway and the registrar
const (
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid"
	OutcomeUnauthorized = "unauthorized"
	OutcomeModel        = "model_error"
	OutcomePersistence  = "persistence_error"
	OutcomeConflict     = "conflict"
)

// OutcomeOf maps a terminal error to its outcome label
func OutcomeOf(err error) string {
	if err == nil {
		return OutcomeOK
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeValidation, perr.ErrorCodeJSON, perr.ErrorCodeInvalidArgument:
		return OutcomeInvalid
	case perr.ErrorCodeUnauthorized:
		return OutcomeUnauthorized
	case perr.ErrorCodeConflict, perr.ErrorCodeDuplicateKey:
		return OutcomeConflict
	case perr.ErrorCodeModel:
		return OutcomeModel
	default:
		return OutcomePersistence
	}
}

// Metrics holds all Prometheus collectors on a private registry
// A nil *Metrics is valid and records nothing
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	predictionsTotal   *prometheus.CounterVec
	predictionDuration prometheus.Histogram
	registrationsTotal *prometheus.CounterVec

	inferenceInflight  prometheus.Gauge
	auditMirrorDropped prometheus.Counter

	registry *prometheus.Registry
}

// New creates a metrics instance with every collector registered
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spedicija_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spedicija_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		predictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spedicija_predictions_total",
				Help: "Prediction requests by terminal outcome",
			},
			[]string{"outcome"},
		),

		predictionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "spedicija_prediction_duration_seconds",
				Help:    "End to end prediction latency including audit write",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),

		registrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spedicija_registrations_total",
				Help: "Registration attempts by outcome",
			},
			[]string{"outcome"},
		),

		inferenceInflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "spedicija_inference_inflight",
				Help: "Inference calls currently holding a worker slot",
			},
		),

		auditMirrorDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "spedicija_audit_mirror_dropped_total",
				Help: "Audit entries not mirrored to ClickHouse because the queue was full or the insert failed",
			},
		),

		registry: registry,
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.predictionsTotal,
		m.predictionDuration,
		m.registrationsTotal,
		m.inferenceInflight,
		m.auditMirrorDropped,
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordPrediction records the terminal outcome of one prediction
func (m *Metrics) RecordPrediction(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.predictionsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.predictionDuration.Observe(d.Seconds())
	}
}

// RecordRegistration records the outcome of one registration attempt
func (m *Metrics) RecordRegistration(outcome string) {
	if m == nil {
		return
	}
	m.registrationsTotal.WithLabelValues(outcome).Inc()
}

// InferenceStarted marks a worker slot as taken
func (m *Metrics) InferenceStarted() {
	if m == nil {
		return
	}
	m.inferenceInflight.Inc()
}

// InferenceDone releases a worker slot
func (m *Metrics) InferenceDone() {
	if m == nil {
		return
	}
	m.inferenceInflight.Dec()
}

// RecordMirrorDropped counts n audit entries that never reached the mirror
func (m *Metrics) RecordMirrorDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.auditMirrorDropped.Add(float64(n))
}

// Handler returns the Prometheus metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware records request count and latency labelled by the chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		m.RecordHTTPRequest(r.Method, routeName(r), wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// routeName keeps label cardinality bounded: unmatched paths collapse to "unknown"
func routeName(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unknown"
}
