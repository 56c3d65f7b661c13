package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chordwheel"

// PrometheusHooks records pipeline, cache and HTTP events as Prometheus
// metrics on its own registry.
type PrometheusHooks struct {
	registry *prometheus.Registry

	StageTotal    *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	LoadedWords   prometheus.Histogram
	LayoutNodes   prometheus.Histogram
	LayoutRibbons prometheus.Histogram

	CacheOps      *prometheus.CounterVec
	CacheSetBytes *prometheus.HistogramVec

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPResponseSize     *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPErrorsTotal      *prometheus.CounterVec
}

// NewPrometheusHooks creates hooks backed by a fresh registry that also
// carries the Go runtime and process collectors.
func NewPrometheusHooks() *PrometheusHooks {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	h := &PrometheusHooks{registry: reg}
	h.initPipelineMetrics()
	h.initCacheMetrics()
	h.initHTTPMetrics()
	return h
}

func (h *PrometheusHooks) initPipelineMetrics() {
	h.StageTotal = promauto.With(h.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_total",
			Help:      "Pipeline stage executions by stage and status",
		},
		[]string{"stage", "status"},
	)
	h.StageDuration = promauto.With(h.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Pipeline stage latency in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"stage"},
	)
	h.LoadedWords = promauto.With(h.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "loaded_words",
		Help:      "Words per loaded dataset",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
	h.LayoutNodes = promauto.With(h.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "layout_nodes",
		Help:      "Nodes per computed layout",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
	})
	h.LayoutRibbons = promauto.With(h.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "layout_ribbons",
		Help:      "Ribbons per computed layout",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
	})
}

func (h *PrometheusHooks) initCacheMetrics() {
	h.CacheOps = promauto.With(h.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by key type and result",
		},
		[]string{"key_type", "result"},
	)
	h.CacheSetBytes = promauto.With(h.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cache_set_bytes",
			Help:      "Size of values written to the cache",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"key_type"},
	)
}

func (h *PrometheusHooks) initHTTPMetrics() {
	h.HTTPRequestsTotal = promauto.With(h.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	h.HTTPRequestDuration = promauto.With(h.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	h.HTTPResponseSize = promauto.With(h.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "route"},
	)
	h.HTTPRequestsInFlight = promauto.With(h.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Current number of HTTP requests being processed",
	})
	h.HTTPErrorsTotal = promauto.With(h.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Handler failures by route",
		},
		[]string{"method", "route"},
	)
}

// Registry returns the underlying Prometheus registry.
func (h *PrometheusHooks) Registry() *prometheus.Registry { return h.registry }

// Handler serves the registry in the Prometheus exposition format.
func (h *PrometheusHooks) Handler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{Registry: h.registry})
}

// Register installs h as the global pipeline, cache and HTTP hooks.
func (h *PrometheusHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

// =============================================================================
// PipelineHooks
// =============================================================================

func (h *PrometheusHooks) OnLoadStart(context.Context, string) {}

func (h *PrometheusHooks) OnLoadComplete(_ context.Context, _ string, wordCount int, d time.Duration, err error) {
	h.stage("load", d, err)
	if err == nil {
		h.LoadedWords.Observe(float64(wordCount))
	}
}

func (h *PrometheusHooks) OnLayoutStart(_ context.Context, _ string, nodeCount int) {
	h.LayoutNodes.Observe(float64(nodeCount))
}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, _ string, ribbonCount int, d time.Duration, err error) {
	h.stage("layout", d, err)
	if err == nil {
		h.LayoutRibbons.Observe(float64(ribbonCount))
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.stage("render", d, err)
}

func (h *PrometheusHooks) stage(name string, d time.Duration, err error) {
	h.StageTotal.WithLabelValues(name, status(err)).Inc()
	h.StageDuration.WithLabelValues(name).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// =============================================================================
// CacheHooks
// =============================================================================

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheOps.WithLabelValues(keyType, "set").Inc()
	h.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

// =============================================================================
// HTTPHooks
// =============================================================================

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {
	h.HTTPRequestsInFlight.Inc()
}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, statusCode, size int, d time.Duration) {
	h.HTTPRequestsInFlight.Dec()
	h.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	h.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	h.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(size))
}

func (h *PrometheusHooks) OnError(_ context.Context, method, route string, _ error) {
	h.HTTPErrorsTotal.WithLabelValues(method, route).Inc()
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
