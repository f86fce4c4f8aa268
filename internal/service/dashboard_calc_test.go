package service_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/service"
)

func TestAggregate_EmptyInput(t *testing.T) {
	data := service.Aggregate(nil, nil)

	if data.KPIs != (domain.KPIs{}) {
		t.Errorf("expected all-zero KPIs, got %+v", data.KPIs)
	}
	if data.Orders == nil || len(data.Orders) != 0 {
		t.Errorf("expected empty orders slice, got %v", data.Orders)
	}
	if data.Regions == nil || len(data.Regions) != 0 {
		t.Errorf("expected empty regions slice, got %v", data.Regions)
	}
	if data.SalesChart == nil || len(data.SalesChart) != 0 {
		t.Errorf("expected empty sales chart, got %v", data.SalesChart)
	}
	if data.Expenses == nil || len(data.Expenses) != 0 {
		t.Errorf("expected empty expenses slice, got %v", data.Expenses)
	}
}

func TestAggregate_AverageOrderValue(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, FinalPrice: 100},
		{ID: 2, FinalPrice: 200},
	}

	data := service.Aggregate(orders, nil)

	if data.KPIs.Revenue != 300 {
		t.Errorf("expected revenue 300, got %f", data.KPIs.Revenue)
	}
	if data.KPIs.TotalSales != 2 {
		t.Errorf("expected 2 sales, got %d", data.KPIs.TotalSales)
	}
	if data.KPIs.AverageOrderValue != 150 {
		t.Errorf("expected average 150, got %f", data.KPIs.AverageOrderValue)
	}
}

func TestAggregate_DeliverySuccessRate(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, Status: domain.StatusDelivered},
		{ID: 2, Status: domain.StatusPending},
		{ID: 3, Status: domain.StatusCompleted},
	}

	data := service.Aggregate(orders, nil)

	want := float64(2) / 3 * 100
	if data.KPIs.DeliverySuccessRate != want {
		t.Errorf("expected success rate %f, got %f", want, data.KPIs.DeliverySuccessRate)
	}
}

func TestAggregate_CODPartition(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, PaymentStatus: domain.PaymentPending, CODAmount: 50},
		{ID: 2, PaymentStatus: domain.PaymentFailed, CODAmount: 20},
		{ID: 3, PaymentStatus: domain.PaymentCollected, CODAmount: 30},
		{ID: 4, PaymentStatus: domain.PaymentRemitted, CODAmount: 999},
	}

	data := service.Aggregate(orders, nil)

	if data.KPIs.CashToCollect != 70 {
		t.Errorf("expected cash to collect 70, got %f", data.KPIs.CashToCollect)
	}
	if data.KPIs.CashCollected != 30 {
		t.Errorf("expected cash collected 30, got %f", data.KPIs.CashCollected)
	}
	if data.KPIs.RemittancePending != data.KPIs.CashCollected {
		t.Errorf("expected remittance pending to equal cash collected, got %f vs %f",
			data.KPIs.RemittancePending, data.KPIs.CashCollected)
	}
}

func TestAggregate_RegionConservation(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, FinalPrice: 100, ClientCity: "Recife", ClientState: "PE"},
		{ID: 2, FinalPrice: 200, ClientCity: "Recife", ClientState: "PE"},
		{ID: 3, FinalPrice: 50, ClientCity: "Olinda", ClientState: "PE"},
		{ID: 4, FinalPrice: 25},
	}

	data := service.Aggregate(orders, nil)

	var revenue float64
	var deliveries int
	for _, r := range data.Regions {
		revenue += r.Revenue
		deliveries += r.Deliveries
	}
	if revenue != data.KPIs.Revenue {
		t.Errorf("region revenue %f does not match total %f", revenue, data.KPIs.Revenue)
	}
	if deliveries != data.KPIs.TotalSales {
		t.Errorf("region deliveries %d do not match total sales %d", deliveries, data.KPIs.TotalSales)
	}
}

func TestAggregate_RegionDefaults(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, FinalPrice: 10},
		{ID: 2, FinalPrice: 20, ClientCity: "Recife", ClientState: "PE"},
	}

	data := service.Aggregate(orders, nil)

	if len(data.Regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(data.Regions))
	}
	unknown := data.Regions[0]
	if unknown.City != "Desconhecido" || unknown.UF != "UF" {
		t.Errorf("expected Desconhecido/UF defaults, got %s/%s", unknown.City, unknown.UF)
	}
}

func TestAggregate_RegionKeyIncludesState(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, FinalPrice: 10, ClientCity: "Santa Cruz", ClientState: "PE"},
		{ID: 2, FinalPrice: 20, ClientCity: "Santa Cruz", ClientState: "RN"},
	}

	data := service.Aggregate(orders, nil)

	if len(data.Regions) != 2 {
		t.Fatalf("expected same-named cities in different states to stay apart, got %d region(s)", len(data.Regions))
	}
}

func TestAggregate_DailySeriesSkipsMissingDate(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, FinalPrice: 100, DateOrder: "2025-11-05T10:00:00Z"},
		{ID: 2, FinalPrice: 50, DateOrder: ""},
	}

	data := service.Aggregate(orders, nil)

	// The dateless order still counts in the scalars.
	if data.KPIs.Revenue != 150 {
		t.Errorf("expected revenue 150, got %f", data.KPIs.Revenue)
	}
	if len(data.SalesChart) != 1 {
		t.Fatalf("expected 1 day bucket, got %d", len(data.SalesChart))
	}
	p := data.SalesChart[0]
	if p.Day != "05 de nov." {
		t.Errorf("expected label '05 de nov.', got %q", p.Day)
	}
	if p.Realized != 100 {
		t.Errorf("expected realized 100, got %f", p.Realized)
	}
	if p.Projected != 1000 {
		t.Errorf("expected projected 1000, got %f", p.Projected)
	}
}

func TestAggregate_DailySeriesCashCollected(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, FinalPrice: 100, DateOrder: "2025-11-05", PaymentStatus: domain.PaymentCollected, CODAmount: 80},
		{ID: 2, FinalPrice: 100, DateOrder: "2025-11-05", PaymentStatus: domain.PaymentPending, CODAmount: 80},
	}

	data := service.Aggregate(orders, nil)

	if len(data.SalesChart) != 1 {
		t.Fatalf("expected 1 day bucket, got %d", len(data.SalesChart))
	}
	p := data.SalesChart[0]
	if p.Realized != 200 {
		t.Errorf("expected realized 200 for both orders, got %f", p.Realized)
	}
	if p.CashCollected != 80 {
		t.Errorf("expected cash collected 80 (collected only), got %f", p.CashCollected)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, FinalPrice: 100, Status: domain.StatusDelivered, ClientCity: "Recife", ClientState: "PE",
			PaymentStatus: domain.PaymentCollected, CODAmount: 40, DateOrder: "2025-11-05"},
		{ID: 2, FinalPrice: 30, Status: domain.StatusCanceled, DateOrder: "2025-11-06"},
	}
	expenses := []domain.Expense{{ID: 1, Amount: 12.5, Date: "2025-11-05"}}

	first := service.Aggregate(orders, expenses)
	second := service.Aggregate(orders, expenses)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results on repeated aggregation:\n%+v\n%+v", first, second)
	}
}

func TestAggregate_MalformedPriceCoercedAtDecode(t *testing.T) {
	var o domain.Order
	if err := json.Unmarshal([]byte(`{"id":1,"order_final_price":"abc","cod_amount":null}`), &o); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	data := service.Aggregate([]domain.Order{o}, nil)

	if data.KPIs.Revenue != 0 {
		t.Errorf("expected malformed price to contribute 0, got %f", data.KPIs.Revenue)
	}
	if data.KPIs.TotalSales != 1 {
		t.Errorf("expected the row itself to still count, got %d", data.KPIs.TotalSales)
	}
}

func TestAggregate_ExpensesPassThrough(t *testing.T) {
	expenses := []domain.Expense{
		{ID: 1, Description: "Combustível", Amount: 90, Date: "2025-11-05", Category: "logística", Type: domain.ExpenseTypeOutflow},
	}

	data := service.Aggregate(nil, expenses)

	if !reflect.DeepEqual(data.Expenses, expenses) {
		t.Errorf("expected expenses unchanged, got %+v", data.Expenses)
	}
	if data.KPIs.Revenue != 0 {
		t.Errorf("expenses must not affect revenue, got %f", data.KPIs.Revenue)
	}
}
