package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PipelineMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	queriesTotal     *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	llmCalls         *prometheus.CounterVec
	digestCache      *prometheus.CounterVec
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisor",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "advisor",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	queriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisor",
			Subsystem: "pipeline",
			Name:      "queries_total",
			Help:      "Total processed queries by status.",
		},
		[]string{"service", "status"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "advisor",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Full pipeline execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	llmCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisor",
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "External generation calls by operation and outcome.",
		},
		[]string{"service", "operation", "outcome"},
	)
	digestCache := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisor",
			Subsystem: "sentiment",
			Name:      "digest_cache_total",
			Help:      "Digest memo lookups by result.",
		},
		[]string{"service", "result"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		queriesTotal,
		pipelineDuration,
		llmCalls,
		digestCache,
	)

	return &PipelineMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		queriesTotal:     queriesTotal,
		pipelineDuration: pipelineDuration,
		llmCalls:         llmCalls,
		digestCache:      digestCache,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/v1/products/") {
		return "/v1/products/{product_id}"
	}
	return path
}

func (m *PipelineMetrics) RecordQuery(service string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.queriesTotal.WithLabelValues(service, status).Inc()
	m.pipelineDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *PipelineMetrics) RecordLLMCall(service, operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.llmCalls.WithLabelValues(service, operation, outcome).Inc()
}

func (m *PipelineMetrics) RecordDigestLookup(service string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.digestCache.WithLabelValues(service, result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
