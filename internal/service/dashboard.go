// Package service provides the business logic layer (use cases):
// dashboard assembly plus order, future-delivery and expense operations,
// all against the Supabase store.
package service

import (
	"context"
	"time"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/infra/observability"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var dashTracer = otel.Tracer("service/dashboard")

// DashboardService assembles the dashboard read-model: fetch the three
// collections concurrently, apply the global filter, run the aggregation.
type DashboardService struct {
	orders   port.OrderStore
	future   port.FutureDeliveryStore
	expenses port.ExpenseStore
	cache    port.Cache[*domain.DashboardView]
	metrics  *observability.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService creates the dashboard service with all dependencies injected.
func NewDashboardService(
	orders port.OrderStore,
	future port.FutureDeliveryStore,
	expenses port.ExpenseStore,
	cache port.Cache[*domain.DashboardView],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		orders:   orders,
		future:   future,
		expenses: expenses,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// GetDashboard fetches orders, future deliveries and expenses concurrently,
// filters the first and last by f, and reduces the filtered orders into the
// read-model. The aggregation only runs once all three fetches resolved.
// Snapshots are cached per filter for a short TTL.
func (s *DashboardService) GetDashboard(ctx context.Context, f Filter) (*domain.DashboardView, error) {
	// Bail out early if the caller already cancelled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := dashTracer.Start(ctx, "DashboardService.GetDashboard")
	defer span.End()
	span.SetAttributes(
		attribute.String("filter.start", f.Start),
		attribute.String("filter.end", f.End),
	)

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("dashboard", time.Since(start))
	}()

	if cached, ok := s.cache.Get(f.Key()); ok {
		s.metrics.IncrCacheHit("dashboard")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("dashboard")

	var (
		orders   []domain.Order
		futures  []domain.FutureDelivery
		expenses []domain.Expense
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.orders.ListOrders(gCtx)
		if err != nil {
			s.logger.Error("failed to fetch orders", zap.Error(err))
			s.metrics.IncrStoreError("orders")
			return err
		}
		orders = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.future.ListFutureDeliveries(gCtx)
		if err != nil {
			s.logger.Error("failed to fetch future deliveries", zap.Error(err))
			s.metrics.IncrStoreError("future_deliveries")
			return err
		}
		futures = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.expenses.ListExpenses(gCtx)
		if err != nil {
			s.logger.Error("failed to fetch expenses", zap.Error(err))
			s.metrics.IncrStoreError("expenses")
			return err
		}
		expenses = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := FilterOrders(orders, f)
	data := Aggregate(filtered, FilterExpenses(expenses, f))
	s.metrics.RecordDashboardBuild(len(filtered))

	now := s.now()
	futureOrders := make([]domain.Order, 0, len(futures))
	for i := range futures {
		futureOrders = append(futureOrders, futures[i].AsOrder(now))
	}

	view := &domain.DashboardView{
		DashboardData: data,
		FutureOrders:  futureOrders,
	}
	s.cache.Set(f.Key(), view)

	return view, nil
}

// Ping reports whether the order store is reachable; used by /healthz.
// Pinger is implemented by the Supabase client but optional for doubles.
func (s *DashboardService) Ping(ctx context.Context) error {
	type pinger interface {
		Ping(ctx context.Context) error
	}
	if p, ok := s.orders.(pinger); ok {
		return p.Ping(ctx)
	}
	_, err := s.orders.ListOrders(ctx)
	return err
}
