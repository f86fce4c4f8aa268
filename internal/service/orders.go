package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/infra/observability"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var orderTracer = otel.Tracer("service/orders")

// OrdersService handles order CRUD against the Supabase store. Every write
// purges the dashboard snapshot cache so the next read recomputes.
type OrdersService struct {
	store     port.OrderStore
	snapshots port.Cache[*domain.DashboardView]
	metrics   *observability.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrdersService creates the orders service.
func NewOrdersService(store port.OrderStore, snapshots port.Cache[*domain.DashboardView], metrics *observability.Metrics, logger *zap.Logger) *OrdersService {
	return &OrdersService{
		store:     store,
		snapshots: snapshots,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the orders matching the filter, newest first.
func (s *OrdersService) List(ctx context.Context, f Filter) ([]domain.Order, error) {
	ctx, span := orderTracer.Start(ctx, "OrdersService.List")
	defer span.End()

	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		s.metrics.IncrStoreError("orders")
		return nil, err
	}
	return FilterOrders(orders, f), nil
}

// Create validates the draft, assigns the server-side fields (order number,
// timestamps, idempotency key) and inserts the row.
func (s *OrdersService) Create(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	ctx, span := orderTracer.Start(ctx, "OrdersService.Create")
	defer span.End()

	if draft.ClientName == "" {
		return nil, &domain.ErrValidation{Field: "client_name", Message: "required"}
	}
	if draft.FinalPrice < 0 {
		return nil, &domain.ErrValidation{Field: "order_final_price", Message: "must not be negative"}
	}
	if draft.CODAmount < 0 {
		return nil, &domain.ErrValidation{Field: "cod_amount", Message: "must not be negative"}
	}
	if draft.Quantity < 0 {
		return nil, &domain.ErrValidation{Field: "order_quantity", Message: "must be positive"}
	}
	if draft.Quantity == 0 {
		draft.Quantity = 1
	}
	if draft.PaymentStatus == "" {
		draft.PaymentStatus = domain.PaymentPending
	}
	if !domain.ValidPaymentStatus(draft.PaymentStatus) {
		return nil, &domain.ErrValidation{Field: "payment_status", Message: "unknown value"}
	}
	if draft.Status == "" {
		draft.Status = domain.StatusScheduled
	}

	now := s.now().UTC()
	rec := &domain.NewOrder{
		OrderDraft:     *draft,
		OrderNumber:    fmt.Sprintf("ORD-%d", now.UnixMilli()),
		CreatedAt:      now.Format(time.RFC3339),
		DateOrder:      now.Format(time.RFC3339),
		IdempotencyKey: uuid.New().String(),
	}
	span.SetAttributes(attribute.String("order.number", rec.OrderNumber))

	created, err := s.store.InsertOrder(ctx, rec)
	if err != nil {
		s.metrics.IncrStoreError("orders")
		return nil, err
	}

	s.snapshots.Purge()
	s.logger.Info("order created",
		zap.Int64("order_id", created.ID),
		zap.String("order_number", created.OrderNumber),
	)
	return created, nil
}

// Update applies a partial patch to an existing order.
func (s *OrdersService) Update(ctx context.Context, id int64, patch *domain.OrderPatch) error {
	ctx, span := orderTracer.Start(ctx, "OrdersService.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("order.id", id))

	if id <= 0 {
		return &domain.ErrValidation{Field: "id", Message: "required"}
	}
	if patch.PaymentStatus != nil && !domain.ValidPaymentStatus(*patch.PaymentStatus) {
		return &domain.ErrValidation{Field: "payment_status", Message: "unknown value"}
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return &domain.ErrValidation{Field: "patch", Message: "no fields to update"}
	}

	if err := s.store.UpdateOrder(ctx, id, fields); err != nil {
		s.metrics.IncrStoreError("orders")
		return err
	}

	s.snapshots.Purge()
	return nil
}

// Delete removes an order. Orders are only ever hard-deleted through this
// explicit action.
func (s *OrdersService) Delete(ctx context.Context, id int64) error {
	ctx, span := orderTracer.Start(ctx, "OrdersService.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("order.id", id))

	if id <= 0 {
		return &domain.ErrValidation{Field: "id", Message: "required"}
	}

	if err := s.store.DeleteOrder(ctx, id); err != nil {
		s.metrics.IncrStoreError("orders")
		return err
	}

	s.snapshots.Purge()
	s.logger.Info("order deleted", zap.Int64("order_id", id))
	return nil
}
