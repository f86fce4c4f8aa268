package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/handler"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/infra/cache"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/infra/observability"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/infra/resilience"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/infra/supabase"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/service"

	"go.uber.org/zap"
)

// fakePostgREST emulates the subset of the Supabase REST API the store
// uses: per-table GET/POST on /rest/v1/{table}, PATCH/DELETE with id=eq.
// filters. Rows are raw JSON objects.
type fakePostgREST struct {
	mu     sync.Mutex
	tables map[string][]map[string]any
	nextID int64
}

func newFakePostgREST() *fakePostgREST {
	return &fakePostgREST{
		tables: map[string][]map[string]any{
			"orders":            {},
			"future_deliveries": {},
			"expenses":          {},
		},
	}
}

func (f *fakePostgREST) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.Header.Get("apikey") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
		rows, ok := f.tables[table]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		idFilter := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")

		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(rows)

		case http.MethodPost:
			var row map[string]any
			if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			f.nextID++
			row["id"] = f.nextID
			f.tables[table] = append(rows, row)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode([]map[string]any{row})

		case http.MethodPatch:
			var patch map[string]any
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			for _, row := range rows {
				if jsonID(row["id"]) == idFilter {
					for k, v := range patch {
						row[k] = v
					}
				}
			}
			w.WriteHeader(http.StatusNoContent)

		case http.MethodDelete:
			kept := rows[:0]
			for _, row := range rows {
				if jsonID(row["id"]) != idFilter {
					kept = append(kept, row)
				}
			}
			f.tables[table] = kept
			w.WriteHeader(http.StatusNoContent)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func jsonID(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func newStack(t *testing.T) (http.Handler, *fakePostgREST) {
	t.Helper()

	fake := newFakePostgREST()
	backend := httptest.NewServer(fake.handler())
	t.Cleanup(backend.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("test")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	store := supabase.NewClient(httpClient, backend.URL, "test-anon-key", "test-service-key", cb, cfg, logger)
	snapshots := cache.New[*domain.DashboardView](time.Minute)

	svcs := handler.Services{
		Dashboard: service.NewDashboardService(store, store, store, snapshots, metrics, logger),
		Orders:    service.NewOrdersService(store, snapshots, metrics, logger),
		Future:    service.NewFutureService(store, snapshots, metrics, logger),
		Expenses:  service.NewExpensesService(store, snapshots, metrics, logger),
	}
	return handler.NewRouter(svcs, metrics, logger), fake
}

// TestIntegration_FullFlow creates an order and an expense through the API
// and checks that the dashboard reflects them.
func TestIntegration_FullFlow(t *testing.T) {
	router, _ := newStack(t)

	// Create an order.
	body, _ := json.Marshal(domain.OrderDraft{
		ClientName:    "Maria da Silva",
		ClientCity:    "Recife",
		ClientState:   "PE",
		FinalPrice:    250,
		CODAmount:     250,
		PaymentStatus: domain.PaymentPending,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	var order domain.Order
	if err := json.NewDecoder(rec.Body).Decode(&order); err != nil {
		t.Fatalf("failed to decode order: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected order to get an id from the backend")
	}

	// Log an expense.
	body, _ = json.Marshal(domain.ExpenseDraft{
		Description: "Combustível",
		Amount:      90,
		Date:        time.Now().Format("2006-01-02"),
		Category:    "logística",
	})
	req = httptest.NewRequest(http.MethodPost, "/v1/expenses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	// Read the dashboard back.
	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	var view domain.DashboardView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode dashboard: %v", err)
	}

	if view.KPIs.TotalSales != 1 {
		t.Errorf("expected 1 sale, got %d", view.KPIs.TotalSales)
	}
	if view.KPIs.Revenue != 250 {
		t.Errorf("expected revenue 250, got %f", view.KPIs.Revenue)
	}
	if view.KPIs.CashToCollect != 250 {
		t.Errorf("expected cash to collect 250, got %f", view.KPIs.CashToCollect)
	}
	if len(view.Regions) != 1 || view.Regions[0].City != "Recife" {
		t.Errorf("expected one Recife region, got %+v", view.Regions)
	}
	if len(view.Expenses) != 1 {
		t.Errorf("expected 1 expense, got %d", len(view.Expenses))
	}
}

// TestIntegration_PaymentCollectionFlow flips payment status to Collected
// and verifies the COD totals move from "to collect" to "collected".
func TestIntegration_PaymentCollectionFlow(t *testing.T) {
	router, _ := newStack(t)

	body, _ := json.Marshal(domain.OrderDraft{
		ClientName: "José",
		FinalPrice: 100,
		CODAmount:  100,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var order domain.Order
	json.NewDecoder(rec.Body).Decode(&order)

	patch, _ := json.Marshal(map[string]string{"payment_status": domain.PaymentCollected})
	req = httptest.NewRequest(http.MethodPatch, "/v1/orders/"+jsonID(order.ID), bytes.NewReader(patch))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var view domain.DashboardView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode dashboard: %v", err)
	}
	if view.KPIs.CashToCollect != 0 {
		t.Errorf("expected nothing left to collect, got %f", view.KPIs.CashToCollect)
	}
	if view.KPIs.CashCollected != 100 {
		t.Errorf("expected 100 collected, got %f", view.KPIs.CashCollected)
	}
	if view.KPIs.RemittancePending != 100 {
		t.Errorf("expected 100 pending remittance, got %f", view.KPIs.RemittancePending)
	}
}

// TestIntegration_FutureDeliveryProjection schedules a delivery and checks
// the dashboard carries its projection without touching the KPIs.
func TestIntegration_FutureDeliveryProjection(t *testing.T) {
	router, _ := newStack(t)

	body, _ := json.Marshal(domain.FutureDeliveryDraft{
		ClientName:   "Ana",
		DeliveryDate: "2027-01-15",
		CODAmount:    300,
		Quantity:     2,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/future-deliveries", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var view domain.DashboardView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode dashboard: %v", err)
	}
	if view.KPIs.TotalSales != 0 {
		t.Errorf("expected projections excluded from KPIs, got %d sales", view.KPIs.TotalSales)
	}
	if len(view.FutureOrders) != 1 {
		t.Fatalf("expected 1 projection, got %d", len(view.FutureOrders))
	}
	proj := view.FutureOrders[0]
	if !strings.HasPrefix(proj.OrderNumber, "FUT-") {
		t.Errorf("expected FUT- order number, got %s", proj.OrderNumber)
	}
	if proj.PaymentStatus != domain.PaymentPending {
		t.Errorf("expected projection payment Pending, got %s", proj.PaymentStatus)
	}
}

// TestIntegration_BackendDown verifies upstream failures surface as 502.
func TestIntegration_BackendDown(t *testing.T) {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("test-down")
	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 500 * time.Millisecond}

	store := supabase.NewClient(httpClient, "http://127.0.0.1:1", "k", "k", cb, cfg, logger)
	snapshots := cache.New[*domain.DashboardView](time.Minute)
	svcs := handler.Services{
		Dashboard: service.NewDashboardService(store, store, store, snapshots, metrics, logger),
		Orders:    service.NewOrdersService(store, snapshots, metrics, logger),
		Future:    service.NewFutureService(store, snapshots, metrics, logger),
		Expenses:  service.NewExpensesService(store, snapshots, metrics, logger),
	}
	router := handler.NewRouter(svcs, metrics, logger)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 when backend is unreachable, got %d", rec.Code)
	}
}
