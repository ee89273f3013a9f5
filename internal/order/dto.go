package order

import "github.com/shopspring/decimal"

// UpdateOrderRequest payload for admin order updates.
// swagger:model UpdateOrderRequest
type UpdateOrderRequest struct {
	Status     *Status `json:"status" binding:"omitempty,oneof=new pending delivered cancelled" example:"delivered"`
	AdminNotes *string `json:"admin_notes" example:"Shipped with Colissimo"`
}

// OrderSummary is the minimal public view shown after payment.
// swagger:model OrderSummary
type OrderSummary struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number" example:"ORD-20261019-1A2B3C4D"`
	TotalAmount   decimal.Decimal `json:"total_amount" swaggertype:"string" example:"250.00"`
	Currency      string          `json:"currency" example:"EUR"`
	PaymentStatus PaymentStatus   `json:"payment_status" example:"paid"`
}

func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		TotalAmount:   o.TotalAmount,
		Currency:      o.Currency,
		PaymentStatus: o.PaymentStatus,
	}
}

// Pagination block of the admin list.
// swagger:model Pagination
type Pagination struct {
	Page       int `json:"page" example:"1"`
	Limit      int `json:"limit" example:"20"`
	Total      int `json:"total" example:"42"`
	TotalPages int `json:"totalPages" example:"3"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// WebhookEvent is the gateway notification body. Unknown fields are ignored.
// swagger:model WebhookEvent
type WebhookEvent struct {
	EventType         string `json:"event_type" example:"CHECKOUT_COMPLETED"`
	Status            string `json:"status" example:"PAID"`
	CheckoutReference string `json:"checkout_reference" example:"ORD-20261019-1A2B3C4D"`
	TransactionID     string `json:"transaction_id" example:"tx1"`
}
