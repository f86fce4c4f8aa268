package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
)

// ============================================================
// Future deliveries store — list, insert, update, delete
// ============================================================

// ListFutureDeliveries fetches scheduled deliveries, soonest first.
func (c *Client) ListFutureDeliveries(ctx context.Context) ([]domain.FutureDelivery, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListFutureDeliveries")
	defer span.End()

	var rows []domain.FutureDelivery

	err := c.execute(ctx, func() error {
		body, err := c.doGet(ctx, "future_deliveries?select=*&order=delivery_date.asc")
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			rows = []domain.FutureDelivery{}
			return nil
		}

		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode future_deliveries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/future_deliveries", Err: err}
	}

	return rows, nil
}

// InsertFutureDelivery schedules one delivery and returns the stored row.
func (c *Client) InsertFutureDelivery(ctx context.Context, draft *domain.FutureDeliveryDraft) (*domain.FutureDelivery, error) {
	ctx, span := tracer.Start(ctx, "Supabase.InsertFutureDelivery")
	defer span.End()

	row := map[string]any{
		"client_name":   draft.ClientName,
		"client_phone":  draft.ClientPhone,
		"product_name":  draft.ProductName,
		"quantity":      draft.Quantity,
		"delivery_date": draft.DeliveryDate,
		"cod_amount":    draft.CODAmount,
	}
	if draft.Notes != "" {
		row["notes"] = draft.Notes
	}

	var created *domain.FutureDelivery
	err := c.execute(ctx, func() error {
		body, err := c.doPost(ctx, "future_deliveries", row)
		if err != nil {
			return err
		}

		var results []domain.FutureDelivery
		if err := json.Unmarshal(body, &results); err != nil {
			return fmt.Errorf("decode future_delivery insert: %w", err)
		}
		if len(results) == 0 {
			return fmt.Errorf("no result from future_deliveries insert")
		}
		created = &results[0]
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/future_deliveries", Err: err}
	}

	return created, nil
}

// UpdateFutureDelivery applies a partial column patch to one scheduled delivery.
func (c *Client) UpdateFutureDelivery(ctx context.Context, id int64, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateFutureDelivery")
	defer span.End()

	err := c.execute(ctx, func() error {
		return c.doPatch(ctx, fmt.Sprintf("future_deliveries?id=eq.%d", id), fields)
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/future_deliveries", Err: err}
	}
	return nil
}

// DeleteFutureDelivery removes one scheduled delivery.
func (c *Client) DeleteFutureDelivery(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteFutureDelivery")
	defer span.End()

	err := c.execute(ctx, func() error {
		return c.doDelete(ctx, fmt.Sprintf("future_deliveries?id=eq.%d", id))
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/future_deliveries", Err: err}
	}
	return nil
}
