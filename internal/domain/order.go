// Package domain holds the core types of the delivery operations dashboard:
// orders, future deliveries, expenses and the derived dashboard read-model.
package domain

// Payment status of the cash-on-delivery amount. This is a closed enum;
// Supabase rows carry exactly these values.
const (
	PaymentPending   = "Pending"   // COD not yet collected by the delivery agent
	PaymentCollected = "Collected" // agent holds the cash
	PaymentRemitted  = "Remitted"  // cash handed back to treasury
	PaymentFailed    = "Failed"    // collection attempt failed
)

// ValidPaymentStatus reports whether s is one of the closed payment enum values.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCollected, PaymentRemitted, PaymentFailed:
		return true
	}
	return false
}

// Order lifecycle statuses observed in the orders table. The enum is
// open-ended: operators type new statuses into the sheet-like UI, so unknown
// values must pass through untouched. Only Entregue/Completo carry meaning
// for the aggregation (delivery success).
const (
	StatusScheduled   = "Agendado"
	StatusRescheduled = "Reagendado"
	StatusInTransit   = "Em rota"
	StatusDelivered   = "Entregue"
	StatusCompleted   = "Completo"
	StatusCanceled    = "Cancelado"
	StatusPending     = "Pendente"
	StatusRefunded    = "Reembolsado"
	StatusFrustrated  = "Frustrado"
)

// Order is one sale/delivery transaction as stored in the orders table.
// JSON tags match the Supabase column names. Timestamps stay as the raw
// ISO-8601 strings PostgREST returns; date_order and date_delivery may be
// empty ("unknown"), which excludes the row from date-bucketed aggregation
// but not from scalar KPIs.
type Order struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`

	OrderNumber string  `json:"order_number"`
	Status      string  `json:"order_status"`
	FinalPrice  Flex64  `json:"order_final_price"`
	Quantity    FlexInt `json:"order_quantity"`

	DateOrder    string `json:"date_order"`
	DateDelivery string `json:"date_delivery"`

	ClientName     string `json:"client_name"`
	ClientEmail    string `json:"client_email,omitempty"`
	ClientDocument string `json:"client_document,omitempty"`
	ClientPhone    string `json:"client_phone"`

	ClientZipCode       string `json:"client_zip_code,omitempty"`
	ClientAddress       string `json:"client_address,omitempty"`
	ClientAddressNumber string `json:"client_address_number,omitempty"`
	ClientDistrict      string `json:"client_address_district,omitempty"`
	ClientCity          string `json:"client_address_city,omitempty"`
	ClientState         string `json:"client_address_state,omitempty"`
	ClientAddressComp   string `json:"client_address_comp,omitempty"`

	ProductName string `json:"product_name"`
	ProductCode string `json:"product_code,omitempty"`

	Commission         Flex64 `json:"commission"`
	ProducerCommission Flex64 `json:"producer_commission,omitempty"`

	LogisticOperator string `json:"logistic_operator,omitempty"`
	DeliveryMan      string `json:"delivery_man,omitempty"`

	PaymentStatus string `json:"payment_status"`
	CODAmount     Flex64 `json:"cod_amount"`

	Notes string `json:"notes,omitempty"`
}

// Delivered reports whether the order counts as a successful delivery.
func (o *Order) Delivered() bool {
	return o.Status == StatusDelivered || o.Status == StatusCompleted
}

// OrderDraft carries the client-supplied fields for creating an order.
// Server-side fields (order number, timestamps, idempotency key) are
// assigned by the service layer.
type OrderDraft struct {
	Status        string  `json:"order_status"`
	FinalPrice    float64 `json:"order_final_price"`
	Quantity      int     `json:"order_quantity"`
	DateDelivery  string  `json:"date_delivery,omitempty"`
	ClientName    string  `json:"client_name"`
	ClientPhone   string  `json:"client_phone"`
	ClientZipCode string  `json:"client_zip_code,omitempty"`
	ClientAddress string  `json:"client_address,omitempty"`
	ClientNumber  string  `json:"client_address_number,omitempty"`
	ClientCity    string  `json:"client_address_city,omitempty"`
	ClientState   string  `json:"client_address_state,omitempty"`
	ProductName   string  `json:"product_name"`
	ProductCode   string  `json:"product_code,omitempty"`
	Commission    float64 `json:"commission"`
	PaymentStatus string  `json:"payment_status"`
	CODAmount     float64 `json:"cod_amount"`
	Notes         string  `json:"notes,omitempty"`
}

// NewOrder is a draft plus the server-assigned fields, ready for insert.
type NewOrder struct {
	OrderDraft
	OrderNumber    string `json:"order_number"`
	CreatedAt      string `json:"created_at"`
	DateOrder      string `json:"date_order"`
	IdempotencyKey string `json:"idempotency_key"`
}

// OrderPatch is a partial update applied to an existing order. Nil fields
// are left untouched; the patch maps 1:1 onto a PostgREST PATCH body.
type OrderPatch struct {
	Status        *string  `json:"order_status,omitempty"`
	FinalPrice    *float64 `json:"order_final_price,omitempty"`
	Quantity      *int     `json:"order_quantity,omitempty"`
	DateDelivery  *string  `json:"date_delivery,omitempty"`
	ClientName    *string  `json:"client_name,omitempty"`
	ClientPhone   *string  `json:"client_phone,omitempty"`
	ClientCity    *string  `json:"client_address_city,omitempty"`
	ClientState   *string  `json:"client_address_state,omitempty"`
	ProductName   *string  `json:"product_name,omitempty"`
	Commission    *float64 `json:"commission,omitempty"`
	PaymentStatus *string  `json:"payment_status,omitempty"`
	CODAmount     *float64 `json:"cod_amount,omitempty"`
	DeliveryMan   *string  `json:"delivery_man,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// Fields returns the patch as a column→value map for the store layer.
func (p *OrderPatch) Fields() map[string]any {
	m := map[string]any{}
	set := func(col string, v any) { m[col] = v }
	if p.Status != nil {
		set("order_status", *p.Status)
	}
	if p.FinalPrice != nil {
		set("order_final_price", *p.FinalPrice)
	}
	if p.Quantity != nil {
		set("order_quantity", *p.Quantity)
	}
	if p.DateDelivery != nil {
		set("date_delivery", *p.DateDelivery)
	}
	if p.ClientName != nil {
		set("client_name", *p.ClientName)
	}
	if p.ClientPhone != nil {
		set("client_phone", *p.ClientPhone)
	}
	if p.ClientCity != nil {
		set("client_address_city", *p.ClientCity)
	}
	if p.ClientState != nil {
		set("client_address_state", *p.ClientState)
	}
	if p.ProductName != nil {
		set("product_name", *p.ProductName)
	}
	if p.Commission != nil {
		set("commission", *p.Commission)
	}
	if p.PaymentStatus != nil {
		set("payment_status", *p.PaymentStatus)
	}
	if p.CODAmount != nil {
		set("cod_amount", *p.CODAmount)
	}
	if p.DeliveryMan != nil {
		set("delivery_man", *p.DeliveryMan)
	}
	if p.Notes != nil {
		set("notes", *p.Notes)
	}
	return m
}
