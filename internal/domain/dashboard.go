package domain

// ============================================================
// Dashboard read-model
// ============================================================
//
// The types below are derived, disposable view data computed from the
// filtered order set on every request. JSON keys match what the frontend
// charts bind to (a mix of Portuguese and English, inherited from the
// dashboard it serves). Nothing here is ever persisted.

// KPIs are the scalar summary metrics over the filtered order set.
type KPIs struct {
	Revenue             float64 `json:"faturamentoReal"`
	TotalCommission     float64 `json:"comissaoTotal"`
	TotalSales          int     `json:"totalVendas"`
	CashToCollect       float64 `json:"cashToCollect"`       // dinheiro na rua
	CashCollected       float64 `json:"cashCollected"`       // dinheiro em caixa (agentes)
	RemittancePending   float64 `json:"remittancePending"`   // a repassar
	AverageOrderValue   float64 `json:"averageOrderValue"`   // ticket médio
	DeliverySuccessRate float64 `json:"deliverySuccessRate"` // taxa de entrega, percent
}

// Region is the per-(city, state) rollup used by the logistics view.
// Efficiency and CODCollectionRate are reserved for when per-region
// delivery outcomes land in the table; they are always 0 today.
type Region struct {
	Name              string  `json:"nome"`
	City              string  `json:"cidade"`
	UF                string  `json:"uf"`
	Revenue           float64 `json:"faturamento"`
	Deliveries        int     `json:"entregas"`
	Efficiency        float64 `json:"eficiencia"`
	CODCollectionRate float64 `json:"codCollectionRate"`
}

// SalesPoint is one day bucket of the sales time series.
type SalesPoint struct {
	Day           string  `json:"dia"`
	Projected     float64 `json:"projetado"`
	Realized      float64 `json:"realizado"`
	CashCollected float64 `json:"cashCollected"`
}

// DashboardData is the full read-model rendered by the dashboard: summary
// KPIs, the daily sales series, the region rollup, plus the filtered orders
// and expenses that produced them.
type DashboardData struct {
	KPIs       KPIs         `json:"kpis"`
	SalesChart []SalesPoint `json:"graficoVendas"`
	Orders     []Order      `json:"orders"`
	Regions    []Region     `json:"regions"`
	Expenses   []Expense    `json:"expenses"`
}

// DashboardView is the full GET /v1/dashboard response: the read-model plus
// the future-delivery projections, which render alongside real orders but
// never enter the aggregation.
type DashboardView struct {
	DashboardData
	FutureOrders []Order `json:"futureOrders"`
}
