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
)

var futureTracer = otel.Tracer("service/future")

// FutureService manages scheduled deliveries that have not become orders yet.
type FutureService struct {
	store     port.FutureDeliveryStore
	snapshots port.Cache[*domain.DashboardView]
	metrics   *observability.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewFutureService creates the future deliveries service.
func NewFutureService(store port.FutureDeliveryStore, snapshots port.Cache[*domain.DashboardView], metrics *observability.Metrics, logger *zap.Logger) *FutureService {
	return &FutureService{
		store:     store,
		snapshots: snapshots,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns all scheduled deliveries, soonest first.
func (s *FutureService) List(ctx context.Context) ([]domain.FutureDelivery, error) {
	ctx, span := futureTracer.Start(ctx, "FutureService.List")
	defer span.End()

	rows, err := s.store.ListFutureDeliveries(ctx)
	if err != nil {
		s.metrics.IncrStoreError("future_deliveries")
		return nil, err
	}
	return rows, nil
}

// Create validates and schedules a new future delivery.
func (s *FutureService) Create(ctx context.Context, draft *domain.FutureDeliveryDraft) (*domain.FutureDelivery, error) {
	ctx, span := futureTracer.Start(ctx, "FutureService.Create")
	defer span.End()

	if draft.ClientName == "" {
		return nil, &domain.ErrValidation{Field: "client_name", Message: "required"}
	}
	if draft.DeliveryDate == "" {
		return nil, &domain.ErrValidation{Field: "delivery_date", Message: "required"}
	}
	if draft.CODAmount < 0 {
		return nil, &domain.ErrValidation{Field: "cod_amount", Message: "must not be negative"}
	}
	if draft.Quantity < 0 {
		return nil, &domain.ErrValidation{Field: "quantity", Message: "must be positive"}
	}
	if draft.Quantity == 0 {
		draft.Quantity = 1
	}

	created, err := s.store.InsertFutureDelivery(ctx, draft)
	if err != nil {
		s.metrics.IncrStoreError("future_deliveries")
		return nil, err
	}

	s.snapshots.Purge()
	s.logger.Info("future delivery scheduled",
		zap.Int64("delivery_id", created.ID),
		zap.String("delivery_date", created.DeliveryDate),
	)
	return created, nil
}

// Update replaces the editable fields of a scheduled delivery.
func (s *FutureService) Update(ctx context.Context, id int64, draft *domain.FutureDeliveryDraft) error {
	ctx, span := futureTracer.Start(ctx, "FutureService.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("delivery.id", id))

	if id <= 0 {
		return &domain.ErrValidation{Field: "id", Message: "required"}
	}
	if draft.ClientName == "" {
		return &domain.ErrValidation{Field: "client_name", Message: "required"}
	}
	if draft.DeliveryDate == "" {
		return &domain.ErrValidation{Field: "delivery_date", Message: "required"}
	}
	if draft.Quantity <= 0 {
		draft.Quantity = 1
	}

	fields := map[string]any{
		"client_name":   draft.ClientName,
		"client_phone":  draft.ClientPhone,
		"product_name":  draft.ProductName,
		"quantity":      draft.Quantity,
		"delivery_date": draft.DeliveryDate,
		"cod_amount":    draft.CODAmount,
		"notes":         draft.Notes,
	}
	if err := s.store.UpdateFutureDelivery(ctx, id, fields); err != nil {
		s.metrics.IncrStoreError("future_deliveries")
		return err
	}

	s.snapshots.Purge()
	return nil
}

// Complete marks a scheduled delivery as delivered. The row stays in the
// future_deliveries table; only its status flips.
func (s *FutureService) Complete(ctx context.Context, id int64) error {
	ctx, span := futureTracer.Start(ctx, "FutureService.Complete")
	defer span.End()
	span.SetAttributes(attribute.Int64("delivery.id", id))

	if id <= 0 {
		return &domain.ErrValidation{Field: "id", Message: "required"}
	}

	fields := map[string]any{"status": domain.StatusDelivered}
	if err := s.store.UpdateFutureDelivery(ctx, id, fields); err != nil {
		s.metrics.IncrStoreError("future_deliveries")
		return err
	}

	s.snapshots.Purge()
	s.logger.Info("future delivery completed", zap.Int64("delivery_id", id))
	return nil
}

// UpdateNote replaces the free-text note on a scheduled delivery. An empty
// note clears it.
func (s *FutureService) UpdateNote(ctx context.Context, id int64, note string) error {
	ctx, span := futureTracer.Start(ctx, "FutureService.UpdateNote")
	defer span.End()
	span.SetAttributes(attribute.Int64("delivery.id", id))

	if id <= 0 {
		return &domain.ErrValidation{Field: "id", Message: "required"}
	}

	if err := s.store.UpdateFutureDelivery(ctx, id, map[string]any{"notes": note}); err != nil {
		s.metrics.IncrStoreError("future_deliveries")
		return err
	}

	s.snapshots.Purge()
	return nil
}

// Delete removes a scheduled delivery.
func (s *FutureService) Delete(ctx context.Context, id int64) error {
	ctx, span := futureTracer.Start(ctx, "FutureService.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("delivery.id", id))

	if id <= 0 {
		return &domain.ErrValidation{Field: "id", Message: "required"}
	}

	if err := s.store.DeleteFutureDelivery(ctx, id); err != nil {
		s.metrics.IncrStoreError("future_deliveries")
		return err
	}

	s.snapshots.Purge()
	s.logger.Info("future delivery removed", zap.Int64("delivery_id", id))
	return nil
}

// Projections returns the scheduled deliveries rendered in the Order shape
// used by the dashboard list.
func (s *FutureService) Projections(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]domain.Order, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].AsOrder(now))
	}
	return out, nil
}
