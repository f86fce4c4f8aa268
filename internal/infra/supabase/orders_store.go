package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
)

// ============================================================
// Orders store — list, insert, partial update, delete
// ============================================================

// ListOrders fetches every order row, newest first. The dashboard is
// single-tenant and the table is small, so no pagination.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListOrders")
	defer span.End()

	var orders []domain.Order

	err := c.execute(ctx, func() error {
		body, err := c.doGet(ctx, "orders?select=*&order=created_at.desc")
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			orders = []domain.Order{}
			return nil
		}

		if err := json.Unmarshal(body, &orders); err != nil {
			return fmt.Errorf("decode orders: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/orders", Err: err}
	}

	return orders, nil
}

// InsertOrder creates one order row and returns the stored representation.
func (c *Client) InsertOrder(ctx context.Context, rec *domain.NewOrder) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Supabase.InsertOrder")
	defer span.End()

	row := map[string]any{
		"order_number":          rec.OrderNumber,
		"created_at":            rec.CreatedAt,
		"date_order":            rec.DateOrder,
		"idempotency_key":       rec.IdempotencyKey,
		"order_status":          rec.Status,
		"order_final_price":     rec.FinalPrice,
		"order_quantity":        rec.Quantity,
		"client_name":           rec.ClientName,
		"client_phone":          rec.ClientPhone,
		"product_name":          rec.ProductName,
		"commission":            rec.Commission,
		"payment_status":        rec.PaymentStatus,
		"cod_amount":            rec.CODAmount,
	}
	if rec.DateDelivery != "" {
		row["date_delivery"] = rec.DateDelivery
	}
	if rec.ClientZipCode != "" {
		row["client_zip_code"] = rec.ClientZipCode
	}
	if rec.ClientAddress != "" {
		row["client_address"] = rec.ClientAddress
	}
	if rec.ClientNumber != "" {
		row["client_address_number"] = rec.ClientNumber
	}
	if rec.ClientCity != "" {
		row["client_address_city"] = rec.ClientCity
	}
	if rec.ClientState != "" {
		row["client_address_state"] = rec.ClientState
	}
	if rec.ProductCode != "" {
		row["product_code"] = rec.ProductCode
	}
	if rec.Notes != "" {
		row["notes"] = rec.Notes
	}

	var created *domain.Order
	err := c.execute(ctx, func() error {
		body, err := c.doPost(ctx, "orders", row)
		if err != nil {
			return err
		}

		var results []domain.Order
		if err := json.Unmarshal(body, &results); err != nil {
			return fmt.Errorf("decode order insert: %w", err)
		}
		if len(results) == 0 {
			return fmt.Errorf("no result from orders insert")
		}
		created = &results[0]
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/orders", Err: err}
	}

	return created, nil
}

// UpdateOrder applies a partial column patch to one order.
func (c *Client) UpdateOrder(ctx context.Context, id int64, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateOrder")
	defer span.End()

	err := c.execute(ctx, func() error {
		return c.doPatch(ctx, fmt.Sprintf("orders?id=eq.%d", id), fields)
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/orders", Err: err}
	}
	return nil
}

// DeleteOrder removes one order row.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteOrder")
	defer span.End()

	err := c.execute(ctx, func() error {
		return c.doDelete(ctx, fmt.Sprintf("orders?id=eq.%d", id))
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/orders", Err: err}
	}
	return nil
}
