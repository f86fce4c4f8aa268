package service

import (
	"fmt"
	"time"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
)

// projectedDaily is the placeholder projection attached to every day bucket
// until real sales targets exist.
const projectedDaily = 1000

// Aggregate reduces the filtered order set into the dashboard read-model:
// scalar KPIs, the per-region rollup and the daily sales series. It is pure
// and synchronous: no I/O, no mutation of its inputs, a fresh result every
// call. It never fails; malformed numeric fields were already coerced to
// zero at decode time, and empty input yields an all-zero model.
//
// Expenses are attached to the output unchanged; they feed the financial
// view directly and take no part in the order reductions.
func Aggregate(orders []domain.Order, expenses []domain.Expense) domain.DashboardData {
	kpis := domain.KPIs{TotalSales: len(orders)}
	delivered := 0

	for i := range orders {
		o := &orders[i]

		kpis.Revenue += o.FinalPrice.Float()
		kpis.TotalCommission += o.Commission.Float()

		switch o.PaymentStatus {
		case domain.PaymentPending, domain.PaymentFailed:
			kpis.CashToCollect += o.CODAmount.Float()
		case domain.PaymentCollected:
			kpis.CashCollected += o.CODAmount.Float()
		}

		if o.Delivered() {
			delivered++
		}
	}

	// "A repassar" mirrors the cash agents currently hold: collected amounts
	// are not tracked past collection, so there is no separate settlement
	// ledger to subtract remitted cash from.
	kpis.RemittancePending = kpis.CashCollected

	if kpis.TotalSales > 0 {
		kpis.AverageOrderValue = kpis.Revenue / float64(kpis.TotalSales)
		kpis.DeliverySuccessRate = float64(delivered) / float64(kpis.TotalSales) * 100
	}

	return domain.DashboardData{
		KPIs:       kpis,
		SalesChart: dailySeries(orders),
		Orders:     notNilOrders(orders),
		Regions:    regionRollup(orders),
		Expenses:   notNilExpenses(expenses),
	}
}

// regionRollup groups orders by (city, state) in first-seen order. The key
// concatenates both so same-named cities in different states stay apart.
func regionRollup(orders []domain.Order) []domain.Region {
	index := make(map[string]int)
	regions := make([]domain.Region, 0)

	for i := range orders {
		o := &orders[i]

		city := o.ClientCity
		if city == "" {
			city = "Desconhecido"
		}
		uf := o.ClientState
		if uf == "" {
			uf = "UF"
		}
		key := city + "-" + uf

		pos, ok := index[key]
		if !ok {
			pos = len(regions)
			index[key] = pos
			regions = append(regions, domain.Region{
				Name: city,
				City: city,
				UF:   uf,
			})
		}

		regions[pos].Revenue += o.FinalPrice.Float()
		regions[pos].Deliveries++
	}

	return regions
}

// dailySeries buckets orders by the calendar day of date_order. Orders
// without a date_order are skipped here, but they still count in the scalar
// KPIs and the region rollup. Realized revenue accumulates for every order
// in the bucket; cash collected only for Collected payment status.
func dailySeries(orders []domain.Order) []domain.SalesPoint {
	index := make(map[string]int)
	series := make([]domain.SalesPoint, 0)

	for i := range orders {
		o := &orders[i]

		day, ok := parseDay(o.DateOrder)
		if !ok {
			continue
		}
		label := dayLabel(day)

		pos, ok := index[label]
		if !ok {
			pos = len(series)
			index[label] = pos
			series = append(series, domain.SalesPoint{
				Day:       label,
				Projected: projectedDaily,
			})
		}

		series[pos].Realized += o.FinalPrice.Float()
		if o.PaymentStatus == domain.PaymentCollected {
			series[pos].CashCollected += o.CODAmount.Float()
		}
	}

	return series
}

// ptMonths are the pt-BR abbreviated month names used in chart labels.
var ptMonths = [12]string{
	"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

// dayLabel formats a day the way the charts expect: "05 de nov."
func dayLabel(t time.Time) string {
	return fmt.Sprintf("%02d de %s", t.Day(), ptMonths[t.Month()-1])
}

// parseDay extracts the calendar day from a PostgREST timestamp or date
// string. Empty or unparsable input reports false.
func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func notNilOrders(orders []domain.Order) []domain.Order {
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}

func notNilExpenses(expenses []domain.Expense) []domain.Expense {
	if expenses == nil {
		return []domain.Expense{}
	}
	return expenses
}
