package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/boutique-ecom/internal/cart"
)

// Customer contact block.
// swagger:model Customer
type Customer struct {
	FirstName string `json:"first_name" example:"Amina"`
	LastName  string `json:"last_name" example:"Benali"`
	Email     string `json:"email" example:"amina@example.com"`
	Phone     string `json:"phone,omitempty" example:"+33600000000"`
}

// Shipping destination block.
// swagger:model Shipping
type Shipping struct {
	Address    string `json:"address" example:"12 rue de la Paix"`
	City       string `json:"city" example:"Paris"`
	PostalCode string `json:"postal_code,omitempty" example:"75002"`
	Country    string `json:"country" example:"France"`
}

// Request checkout payload.
// swagger:model CheckoutRequest
type Request struct {
	Items         []cart.Line `json:"items"`
	Customer      Customer    `json:"customer"`
	Shipping      Shipping    `json:"shipping"`
	CustomerNotes string      `json:"customer_notes,omitempty"`
}

// OrderRef is the part of the order echoed back to the shopper.
// swagger:model CheckoutOrder
type OrderRef struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number" example:"ORD-20261019-1A2B3C4D"`
	TotalAmount decimal.Decimal `json:"total_amount" swaggertype:"string" example:"250.00"`
}

// Response checkout result.
// swagger:model CheckoutResponse
type Response struct {
	Success     bool     `json:"success" example:"true"`
	Order       OrderRef `json:"order"`
	CheckoutURL string   `json:"checkout_url,omitempty" example:"https://pay.sumup.com/b2c/Qchk_123"`
	Message     string   `json:"message,omitempty"`
}

// QuoteRequest stateless cart totals payload.
// swagger:model QuoteRequest
type QuoteRequest struct {
	Items []cart.Line `json:"items"`
}

// QuoteResponse merged cart lines and totals.
// swagger:model QuoteResponse
type QuoteResponse struct {
	Success    bool            `json:"success"`
	Items      []cart.Line     `json:"items"`
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal" swaggertype:"string"`
}
