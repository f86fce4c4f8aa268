package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
)

// Metrics holds all Prometheus metrics for the dashboard service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	storeErrors      *prometheus.CounterVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	dashboardBuilds  prometheus.Counter
	ordersAggregated prometheus.Counter
	requestsTotal    *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logzz_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		storeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logzz_store_errors_total",
				Help: "Total errors from the Supabase store by table.",
			},
			[]string{"table"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logzz_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logzz_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		dashboardBuilds: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "logzz_dashboard_builds_total",
				Help: "Total dashboard read-model computations.",
			},
		),
		ordersAggregated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "logzz_orders_aggregated_total",
				Help: "Total order records consumed by the aggregation.",
			},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logzz_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrStoreError increments the store error counter for a table.
func (m *Metrics) IncrStoreError(table string) {
	m.storeErrors.WithLabelValues(table).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// RecordDashboardBuild records one aggregation run over n orders.
func (m *Metrics) RecordDashboardBuild(n int) {
	m.dashboardBuilds.Inc()
	m.ordersAggregated.Add(float64(n))
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// GetOpsSnapshot returns a snapshot of operational metrics suitable for the
// GET /v1/metrics/ops endpoint.
func (m *Metrics) GetOpsSnapshot() *domain.OpsMetrics {
	// Prometheus counters expose cumulative values.
	totalRequests := getCounterValue(m.requestsTotal, "success") +
		getCounterValue(m.requestsTotal, "error")
	errorCount := getCounterValue(m.requestsTotal, "error")
	cacheHits := getCounterValue(m.cacheHits, "dashboard")
	cacheMisses := getCounterValue(m.cacheMisses, "dashboard")
	builds := readCounter(m.dashboardBuilds)
	orders := readCounter(m.ordersAggregated)

	errorRate := float64(0)
	cacheHitRate := float64(0)
	avgOrders := float64(0)

	if totalRequests > 0 {
		errorRate = errorCount / totalRequests
	}
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}
	if builds > 0 {
		avgOrders = orders / builds
	}

	return &domain.OpsMetrics{
		TotalRequests:     int64(totalRequests),
		ErrorRate:         errorRate,
		CacheHitRate:      cacheHitRate,
		DashboardBuilds:   int64(builds),
		OrdersAggregated:  int64(orders),
		AvgOrdersPerBuild: avgOrders,
		Period:            "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

// readCounter extracts the current float64 value from a plain Counter.
func readCounter(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
