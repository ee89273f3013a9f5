// Package payment talks to the hosted-checkout payment gateway.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

var ErrCheckoutNotFound = errors.New("checkout not found")

// Gateway statuses reported for a checkout.
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusFailed  = "FAILED"
)

type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	GetCheckout(ctx context.Context, id string) (*Checkout, error)
	// FindByReference returns ErrCheckoutNotFound when no checkout carries the reference.
	FindByReference(ctx context.Context, reference string) (*Checkout, error)
	// CheckoutURL is where the customer is sent to pay.
	CheckoutURL(c *Checkout) string
}

type CheckoutRequest struct {
	Reference   string
	Amount      decimal.Decimal
	Currency    string
	Description string
	RedirectURL string
	ReturnURL   string
}

type Checkout struct {
	ID                string
	Reference         string
	Amount            decimal.Decimal
	Currency          string
	Status            string
	HostedCheckoutURL string
	TransactionID     string
}

// Error is a non-2xx answer from the gateway.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment gateway returned %d: %s", e.StatusCode, e.Body)
}

// Message is a human readable explanation of the failure.
func (e *Error) Message() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return "Configuration du paiement invalide : identifiants refusés par la passerelle"
	case http.StatusForbidden:
		return "Le compte marchand n'est pas activé pour les paiements en ligne"
	case http.StatusBadRequest:
		return "Paramètres de paiement invalides"
	default:
		return "Erreur lors de la création du paiement"
	}
}
