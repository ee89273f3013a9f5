// Package checkout turns a cart into a persisted order and a hosted payment session.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/boutique-ecom/internal/cart"
	"github.com/MikeMC777/boutique-ecom/internal/order"
	"github.com/MikeMC777/boutique-ecom/internal/payment"
)

const (
	MsgEmptyCart        = "Le panier est vide"
	MsgMissingCustomer  = "Informations client manquantes"
	MsgMissingShipping  = "Adresse de livraison manquante"
	MsgInvalidItem      = "Article invalide"
	MsgInvalidAmount    = "Montant invalide"
	MsgOrderFailed      = "Erreur lors de la création de la commande"
	MsgItemsFailed      = "Erreur lors de l'ajout des articles"
	MsgPaymentNotConfig = "Commande créée (paiement non configuré)"
)

var (
	ErrOrderPersist = errors.New("order insert failed")
	ErrItemsPersist = errors.New("order items insert failed")
)

// ValidationError rejects a request before anything is written.
type ValidationError struct {
	Message string
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

// GatewayError means the order exists but no payment session could be opened.
type GatewayError struct {
	Order OrderRef
	Err   error
}

func (e *GatewayError) Error() string { return "create payment checkout: " + e.Err.Error() }
func (e *GatewayError) Unwrap() error { return e.Err }

// Message picks the shopper-facing explanation.
func (e *GatewayError) Message() string {
	var pe *payment.Error
	if errors.As(e.Err, &pe) {
		return pe.Message()
	}
	return "Erreur lors de la création du paiement"
}

type Options struct {
	Currency  string
	SiteURL   string
	ReturnURL string
}

type Orchestrator struct {
	orders  order.Repository
	gateway payment.Gateway // nil when payments are not configured
	opts    Options
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewOrchestrator(orders order.Repository, gateway payment.Gateway, opts Options, log logrus.FieldLogger) *Orchestrator {
	if opts.Currency == "" {
		opts.Currency = "EUR"
	}
	opts.SiteURL = strings.TrimRight(opts.SiteURL, "/")
	return &Orchestrator{orders: orders, gateway: gateway, opts: opts, log: log, now: time.Now}
}

// Validate checks the request in a fixed order; the first failure wins.
func Validate(req Request) error {
	if len(req.Items) == 0 {
		return &ValidationError{Message: MsgEmptyCart}
	}
	c := req.Customer
	if blank(c.Email) || blank(c.FirstName) || blank(c.LastName) {
		return &ValidationError{Message: MsgMissingCustomer}
	}
	s := req.Shipping
	if blank(s.Address) || blank(s.City) || blank(s.Country) {
		return &ValidationError{Message: MsgMissingShipping}
	}
	for i, it := range req.Items {
		switch {
		case blank(it.ProductID):
			return &ValidationError{Message: MsgInvalidItem, Details: fmt.Sprintf("items[%d]: product_id is required", i)}
		case blank(it.ProductNameEN):
			return &ValidationError{Message: MsgInvalidItem, Details: fmt.Sprintf("items[%d]: product_name_en is required", i)}
		case it.Quantity < 1:
			return &ValidationError{Message: MsgInvalidItem, Details: fmt.Sprintf("items[%d]: quantity must be at least 1", i)}
		case it.UnitPrice.IsNegative():
			return &ValidationError{Message: MsgInvalidItem, Details: fmt.Sprintf("items[%d]: unit_price cannot be negative", i)}
		}
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func optional(s string) *string {
	if blank(s) {
		return nil
	}
	v := strings.TrimSpace(s)
	return &v
}

// NewOrderNumber builds ORD-YYYYMMDD-XXXXXXXX.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD-" + now.UTC().Format("20060102") + "-" + suffix
}

// Result of a successful checkout. CheckoutURL is empty when payments are
// not configured.
type Result struct {
	Order       *order.Order
	CheckoutURL string
}

func (r *Result) Response() Response {
	resp := Response{
		Success: true,
		Order: OrderRef{
			ID:          r.Order.ID,
			OrderNumber: r.Order.OrderNumber,
			TotalAmount: r.Order.TotalAmount,
		},
		CheckoutURL: r.CheckoutURL,
	}
	if r.CheckoutURL == "" {
		resp.Message = MsgPaymentNotConfig
	}
	return resp
}

// Create runs the checkout saga: order row, then items (deleting the order
// if they fail), then the gateway session.
func (o *Orchestrator) Create(ctx context.Context, req Request) (*Result, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	// Summed per stored line, not over the merged cart.
	lines := req.Items
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	shipping := decimal.Zero
	discount := decimal.Zero
	total := subtotal.Add(shipping).Sub(discount)
	if o.gateway != nil && !total.Round(2).IsPositive() {
		return nil, &ValidationError{Message: MsgInvalidAmount, Details: "total must be greater than zero"}
	}

	now := o.now()
	ord := &order.Order{
		ID:                 uuid.NewString(),
		OrderNumber:        NewOrderNumber(now),
		CustomerFirstName:  strings.TrimSpace(req.Customer.FirstName),
		CustomerLastName:   strings.TrimSpace(req.Customer.LastName),
		CustomerEmail:      strings.TrimSpace(req.Customer.Email),
		CustomerPhone:      optional(req.Customer.Phone),
		ShippingAddress:    strings.TrimSpace(req.Shipping.Address),
		ShippingCity:       strings.TrimSpace(req.Shipping.City),
		ShippingPostalCode: optional(req.Shipping.PostalCode),
		ShippingCountry:    strings.TrimSpace(req.Shipping.Country),
		Subtotal:           subtotal,
		ShippingCost:       shipping,
		DiscountAmount:     discount,
		TotalAmount:        total,
		Currency:           o.opts.Currency,
		PaymentMethod:      order.PaymentMethodSumUp,
		PaymentStatus:      order.PaymentPending,
		Status:             order.StatusNew,
		CustomerNotes:      optional(req.CustomerNotes),
	}
	fields := logrus.Fields{"order_id": ord.ID, "reference": ord.OrderNumber}

	if err := o.orders.Create(ctx, ord); err != nil {
		o.log.WithFields(fields).WithError(err).Error("order creation failed")
		return nil, fmt.Errorf("%w: %v", ErrOrderPersist, err)
	}

	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		nameFR := l.ProductNameFR
		if blank(nameFR) {
			nameFR = l.ProductNameEN
		}
		items = append(items, order.Item{
			ID:              uuid.NewString(),
			OrderID:         ord.ID,
			ProductID:       l.ProductID,
			ProductNameEN:   l.ProductNameEN,
			ProductNameFR:   nameFR,
			ProductSKU:      optional(l.ProductSKU),
			ProductImageURL: optional(l.ProductImageURL),
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			TotalPrice:      l.LineTotal(),
			Size:            optional(l.Size),
			Color:           optional(l.Color),
		})
	}
	if err := o.orders.InsertItems(ctx, ord.ID, items); err != nil {
		o.log.WithFields(fields).WithError(err).Error("order items failed, deleting order")
		if delErr := o.orders.Delete(ctx, ord.ID); delErr != nil {
			o.log.WithFields(fields).WithError(delErr).Error("CRITICAL: orphan order left behind, manual intervention required")
		}
		return nil, fmt.Errorf("%w: %v", ErrItemsPersist, err)
	}
	ord.Items = items
	o.log.WithFields(fields).WithField("total", total.StringFixed(2)).Info("order created")

	if o.gateway == nil {
		o.log.WithFields(fields).Warn("payment gateway not configured, returning order without checkout link")
		return &Result{Order: ord}, nil
	}

	chk, err := o.gateway.CreateCheckout(ctx, payment.CheckoutRequest{
		Reference:   ord.OrderNumber,
		Amount:      total.Round(2),
		Currency:    ord.Currency,
		Description: "Commande #" + ord.OrderNumber,
		RedirectURL: o.opts.SiteURL + "/checkout/success?order=" + ord.ID,
		ReturnURL:   o.opts.ReturnURL,
	})
	if err != nil {
		o.log.WithFields(fields).WithError(err).Error("payment checkout failed, order left pending")
		return nil, &GatewayError{
			Order: OrderRef{ID: ord.ID, OrderNumber: ord.OrderNumber, TotalAmount: ord.TotalAmount},
			Err:   err,
		}
	}

	checkoutID := chk.ID
	if err := o.orders.UpdatePayment(ctx, ord.ID, order.PaymentUpdate{CheckoutID: &checkoutID}); err != nil {
		// the sweep finds the checkout again by reference
		o.log.WithFields(fields).WithError(err).Error("storing checkout id failed")
	} else {
		ord.CheckoutID = &checkoutID
	}
	return &Result{Order: ord, CheckoutURL: o.gateway.CheckoutURL(chk)}, nil
}

// Quote merges lines by key and totals them without touching storage.
func Quote(req QuoteRequest) QuoteResponse {
	c := cart.New(req.Items...)
	lines := c.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return QuoteResponse{Success: true, Items: lines, TotalItems: c.TotalItems(), Subtotal: c.Subtotal()}
}
