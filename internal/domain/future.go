package domain

import (
	"fmt"
	"time"
)

// FutureDelivery is a scheduled delivery that has not become a real order
// yet. It lives in its own table (future_deliveries) with a reduced column
// set; the dashboard shows it through a one-way projection into the Order
// shape (see AsOrder).
type FutureDelivery struct {
	ID           int64   `json:"id"`
	CreatedAt    string  `json:"created_at"`
	ClientName   string  `json:"client_name"`
	ClientPhone  string  `json:"client_phone"`
	ProductName  string  `json:"product_name"`
	Quantity     FlexInt `json:"quantity"`
	DeliveryDate string  `json:"delivery_date"`
	CODAmount    Flex64  `json:"cod_amount"`
	Status       string  `json:"status,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// AsOrder projects the future delivery into the Order shape for display.
// The projection is a view-model, never stored: price and commission are
// zero, the order number is synthetic (FUT-<id>) and the payment status is
// forced to Pending regardless of the row.
func (d *FutureDelivery) AsOrder(now time.Time) Order {
	status := d.Status
	if status == "" {
		status = StatusScheduled
	}
	return Order{
		ID:            d.ID,
		CreatedAt:     d.CreatedAt,
		OrderNumber:   fmt.Sprintf("FUT-%d", d.ID),
		Status:        status,
		FinalPrice:    0,
		Quantity:      d.Quantity,
		DateOrder:     now.UTC().Format(time.RFC3339),
		DateDelivery:  d.DeliveryDate,
		ClientName:    d.ClientName,
		ClientPhone:   d.ClientPhone,
		ProductName:   d.ProductName,
		Commission:    0,
		PaymentStatus: PaymentPending,
		CODAmount:     d.CODAmount,
		Notes:         d.Notes,
	}
}

// FutureDeliveryDraft carries the fields accepted when scheduling or editing
// a future delivery.
type FutureDeliveryDraft struct {
	ClientName   string  `json:"client_name"`
	ClientPhone  string  `json:"client_phone"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	DeliveryDate string  `json:"delivery_date"`
	CODAmount    float64 `json:"cod_amount"`
	Notes        string  `json:"notes,omitempty"`
}
