package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/terra-clan/content-engine/internal/engine"
)

// Metrics holds the server's Prometheus collectors. Each Server gets its
// own registry so tests can build several servers in one process.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheResults    *prometheus.CounterVec

	contentItems *prometheus.GaugeVec
	coverage     *prometheus.GaugeVec
	baseline     *prometheus.GaugeVec
}

// NewMetrics registers the collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_engine_http_requests_total",
			Help: "HTTP requests by route pattern and status code",
		}, []string{"route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "content_engine_http_request_duration_seconds",
			Help:    "HTTP request duration by route pattern",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"route"}),

		cacheResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_engine_response_cache_total",
			Help: "Response cache lookups by result",
		}, []string{"result"}),

		contentItems: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "content_engine_items",
			Help: "Loaded content items by kind",
		}, []string{"kind"}),

		coverage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "content_engine_coverage",
			Help: "Live concept coverage metrics",
		}, []string{"metric"}),

		baseline: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "content_engine_coverage_baseline",
			Help: "Checked-in coverage baseline",
		}, []string{"metric"}),
	}
}

// ObserveEngine records content sizes and coverage. Content never changes
// after startup, so this runs once.
func (m *Metrics) ObserveEngine(e *engine.Engine) {
	m.contentItems.WithLabelValues("problems").Set(float64(e.Catalog.Len()))
	m.contentItems.WithLabelValues("categories").Set(float64(len(e.Taxonomy.Categories())))
	m.contentItems.WithLabelValues("concepts").Set(float64(e.Concepts.Len()))
	m.contentItems.WithLabelValues("dsa_concepts").Set(float64(len(e.Paths.Concepts())))
	m.contentItems.WithLabelValues("patterns").Set(float64(len(e.CrossLinks.Patterns())))

	live := e.Coverage()
	m.coverage.WithLabelValues("dsaProblemCount").Set(float64(live.DSAProblemCount))
	m.coverage.WithLabelValues("problemConceptCount").Set(float64(live.ProblemConceptCount))
	m.coverage.WithLabelValues("mappedDsaProblemCount").Set(float64(live.MappedDSAProblemCount))
	m.coverage.WithLabelValues("unmappedDsaProblemCount").Set(float64(live.UnmappedDSAProblemCount))

	b := e.Baseline()
	m.baseline.WithLabelValues("dsaProblemCount").Set(float64(b.DSAProblemCount))
	m.baseline.WithLabelValues("problemConceptCount").Set(float64(b.ProblemConceptCount))
	m.baseline.WithLabelValues("mappedDsaProblemCount").Set(float64(b.MappedDSAProblemCount))
	m.baseline.WithLabelValues("unmappedDsaProblemCount").Set(float64(b.UnmappedDSAProblemCount))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts requests by chi route pattern, not raw path, to keep
// label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) cacheResult(result string) {
	m.cacheResults.WithLabelValues(result).Inc()
}
