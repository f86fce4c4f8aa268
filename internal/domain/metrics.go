package domain

// OpsMetrics is a point-in-time snapshot of service counters, exposed on
// GET /v1/metrics/ops for the ops panel. Derived from the Prometheus
// registry, never persisted.
type OpsMetrics struct {
	TotalRequests     int64   `json:"totalRequests"`
	ErrorRate         float64 `json:"errorRate"`
	CacheHitRate      float64 `json:"cacheHitRate"`
	DashboardBuilds   int64   `json:"dashboardBuilds"`
	OrdersAggregated  int64   `json:"ordersAggregated"`
	AvgOrdersPerBuild float64 `json:"avgOrdersPerBuild"`
	Period            string  `json:"period"`
}
