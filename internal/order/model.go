package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the fulfillment lifecycle, driven by admins.
type Status string

const (
	StatusNew       Status = "new"
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPending, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the settlement state, driven by the gateway.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

const PaymentMethodSumUp = "sumup"

type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`

	CustomerFirstName string  `json:"customer_first_name"`
	CustomerLastName  string  `json:"customer_last_name"`
	CustomerEmail     string  `json:"customer_email"`
	CustomerPhone     *string `json:"customer_phone"`

	ShippingAddress    string  `json:"shipping_address"`
	ShippingCity       string  `json:"shipping_city"`
	ShippingPostalCode *string `json:"shipping_postal_code"`
	ShippingCountry    string  `json:"shipping_country"`

	BillingAddress    *string `json:"billing_address"`
	BillingCity       *string `json:"billing_city"`
	BillingPostalCode *string `json:"billing_postal_code"`
	BillingCountry    *string `json:"billing_country"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Currency       string          `json:"currency"`

	PaymentMethod string        `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CheckoutID    *string       `json:"sumup_checkout_id"`
	TransactionID *string       `json:"sumup_transaction_id"`

	Status        Status  `json:"status"`
	CustomerNotes *string `json:"customer_notes"`
	AdminNotes    *string `json:"admin_notes"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PaidAt      *time.Time `json:"paid_at"`
	DeliveredAt *time.Time `json:"delivered_at"`

	Items []Item `json:"order_items,omitempty"`
}

// Item snapshots the product at purchase time.
type Item struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"order_id"`
	ProductID       string          `json:"product_id"`
	ProductNameEN   string          `json:"product_name_en"`
	ProductNameFR   string          `json:"product_name_fr"`
	ProductSKU      *string         `json:"product_sku"`
	ProductImageURL *string         `json:"product_image_url"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Size            *string         `json:"size"`
	Color           *string         `json:"color"`
}

// PaymentUpdate carries the fields a gateway event may change. Nil fields
// are left untouched; PaidAt only fills an empty paid_at.
type PaymentUpdate struct {
	Status        *PaymentStatus
	PaidAt        *time.Time
	TransactionID *string
	CheckoutID    *string
}

func (u PaymentUpdate) Empty() bool {
	return u.Status == nil && u.PaidAt == nil && u.TransactionID == nil && u.CheckoutID == nil
}

// ListQuery filters the admin order list. Status "" or "all" means no filter.
type ListQuery struct {
	Status Status
	Search string
	Page   int
	Limit  int
}
