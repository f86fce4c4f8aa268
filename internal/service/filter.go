package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
)

// Filter is the global dashboard filter: an inclusive [Start, End] date
// window (YYYY-MM-DD) and a free-text query. An empty Start or End disables
// the date filter; an empty Query disables the text match.
type Filter struct {
	Start string
	End   string
	Query string
}

// DefaultMonthRange returns the current calendar month window, the filter
// the dashboard opens with.
func DefaultMonthRange(now time.Time) (start, end string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// Key returns a stable cache key for the filter.
func (f Filter) Key() string {
	return "dashboard:" + f.Start + ":" + f.End + ":" + strings.ToLower(f.Query)
}

// MatchOrder applies both filter dimensions to one order. The date checked
// is the delivery date, falling back to the order date, then created_at;
// orders are windowed by when they (should) reach the client.
func (f Filter) MatchOrder(o *domain.Order) bool {
	if !f.matchDate(firstNonEmpty(o.DateDelivery, o.DateOrder, o.CreatedAt)) {
		return false
	}
	if f.Query == "" {
		return true
	}

	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(o.ClientName), q) ||
		strings.Contains(strings.ToLower(o.OrderNumber), q) ||
		strings.Contains(strconv.FormatInt(o.ID, 10), f.Query)
}

// MatchExpense windows an expense by its own date; the text query does not
// apply to expenses.
func (f Filter) MatchExpense(e *domain.Expense) bool {
	return f.matchDate(e.Date)
}

func (f Filter) matchDate(raw string) bool {
	if f.Start == "" || f.End == "" {
		return true
	}
	t, ok := parseDay(raw)
	if !ok {
		// Dateless rows stay visible rather than silently vanishing from
		// every window.
		return true
	}
	day := t.Format("2006-01-02")
	return day >= f.Start && day <= f.End
}

// FilterOrders returns the orders matching f, preserving input order.
func FilterOrders(orders []domain.Order, f Filter) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for i := range orders {
		if f.MatchOrder(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out
}

// FilterExpenses returns the expenses matching f, preserving input order.
func FilterExpenses(expenses []domain.Expense, f Filter) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for i := range expenses {
		if f.MatchExpense(&expenses[i]) {
			out = append(out, expenses[i])
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
