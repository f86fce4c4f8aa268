package handler

import (
	"net/http"
	"time"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/infra/observability"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services groups the use-case services the router exposes.
type Services struct {
	Dashboard *service.DashboardService
	Orders    *service.OrdersService
	Future    *service.FutureService
	Expenses  *service.ExpensesService
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract of the operations dashboard frontend.
func NewRouter(svcs Services, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(requestCounterMiddleware(metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svcs.Dashboard, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. 📊 Dashboard
		// GET /v1/dashboard?start=YYYY-MM-DD&end=YYYY-MM-DD&q=...
		// =============================================
		r.Get("/dashboard", dashboardHandler(svcs.Dashboard, logger))

		// =============================================
		// 2. 📦 Pedidos
		// =============================================
		r.Get("/orders", listOrdersHandler(svcs.Orders, logger))
		r.Post("/orders", createOrderHandler(svcs.Orders, logger))
		r.Patch("/orders/{orderId}", updateOrderHandler(svcs.Orders, logger))
		r.Delete("/orders/{orderId}", deleteOrderHandler(svcs.Orders, logger))

		// =============================================
		// 3. 🚚 Entregas Futuras
		// =============================================
		r.Get("/future-deliveries", listFutureHandler(svcs.Future, logger))
		r.Post("/future-deliveries", createFutureHandler(svcs.Future, logger))
		r.Put("/future-deliveries/{deliveryId}", updateFutureHandler(svcs.Future, logger))
		r.Post("/future-deliveries/{deliveryId}/complete", completeFutureHandler(svcs.Future, logger))
		r.Put("/future-deliveries/{deliveryId}/notes", futureNotesHandler(svcs.Future, logger))
		r.Delete("/future-deliveries/{deliveryId}", deleteFutureHandler(svcs.Future, logger))

		// =============================================
		// 4. 💸 Despesas
		// =============================================
		r.Get("/expenses", listExpensesHandler(svcs.Expenses, logger))
		r.Post("/expenses", createExpenseHandler(svcs.Expenses, logger))
		r.Delete("/expenses/{expenseId}", deleteExpenseHandler(svcs.Expenses, logger))

		// =============================================
		// 5. 📈 Métricas operacionais
		// GET /v1/metrics/ops
		// =============================================
		r.Get("/metrics/ops", opsMetricsHandler(metrics))
	})

	return r
}

// requestCounterMiddleware feeds the request totals behind /v1/metrics/ops.
func requestCounterMiddleware(metrics *observability.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			outcome := "success"
			if ww.Status() >= 500 {
				outcome = "error"
			}
			metrics.IncrRequest(outcome)
		})
	}
}

// ============================================================
// Health & metrics
// ============================================================

func healthzHandler(dash *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "logzz-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		start := time.Now()
		err := dash.Ping(ctx)
		latency := time.Since(start).Milliseconds()
		status := "healthy"
		if err != nil {
			status = "degraded"
			logger.Warn("supabase health check failed", zap.Error(err))
		}
		services = append(services, domain.ServiceHealth{
			Name: "supabase", Status: status, LatencyMs: latency, LastChecked: now,
		})

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func opsMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetOpsSnapshot())
	}
}
