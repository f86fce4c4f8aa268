// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from the concrete Supabase adapter, so tests can plug in in-memory
// doubles.
package port

import (
	"context"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
)

// OrderStore provides access to the orders table.
type OrderStore interface {
	// ListOrders returns all orders, newest first (created_at desc).
	ListOrders(ctx context.Context) ([]domain.Order, error)
	InsertOrder(ctx context.Context, rec *domain.NewOrder) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, fields map[string]any) error
	DeleteOrder(ctx context.Context, id int64) error
}

// FutureDeliveryStore provides access to the future_deliveries table.
type FutureDeliveryStore interface {
	// ListFutureDeliveries returns all scheduled deliveries, soonest first.
	ListFutureDeliveries(ctx context.Context) ([]domain.FutureDelivery, error)
	InsertFutureDelivery(ctx context.Context, draft *domain.FutureDeliveryDraft) (*domain.FutureDelivery, error)
	UpdateFutureDelivery(ctx context.Context, id int64, fields map[string]any) error
	DeleteFutureDelivery(ctx context.Context, id int64) error
}

// ExpenseStore provides access to the expenses table.
type ExpenseStore interface {
	// ListExpenses returns all expenses, newest date first.
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	InsertExpense(ctx context.Context, exp *domain.Expense) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
}

// Store is the full backend contract; the Supabase adapter implements all
// three table stores on one client.
type Store interface {
	OrderStore
	FutureDeliveryStore
	ExpenseStore
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Purge()
}
