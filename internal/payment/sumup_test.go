package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumUp_CreateCheckout(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v0.1/checkouts", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chk_1","checkout_reference":"ORD-1","amount":250.5,"currency":"EUR","status":"PENDING"}`))
	}))
	defer srv.Close()

	s := NewSumUp(srv.URL, "sk_test", "MC1", "", time.Second)
	c, err := s.CreateCheckout(context.Background(), CheckoutRequest{
		Reference:   "ORD-1",
		Amount:      decimal.RequireFromString("250.499"),
		Currency:    "EUR",
		Description: "Commande #ORD-1",
		RedirectURL: "http://shop/checkout/success?order=x",
		ReturnURL:   "http://shop/api/checkout/webhook",
	})
	require.NoError(t, err)
	assert.Equal(t, "chk_1", c.ID)
	assert.Equal(t, StatusPending, c.Status)
	assert.True(t, c.Amount.Equal(decimal.RequireFromString("250.5")))

	assert.Equal(t, "ORD-1", got["checkout_reference"])
	assert.Equal(t, 250.5, got["amount"])
	assert.Equal(t, "MC1", got["merchant_code"])
	assert.Equal(t, "http://shop/checkout/success?order=x", got["redirect_url"])

	assert.Equal(t, defaultPayURL+"chk_1", s.CheckoutURL(c))
	c.HostedCheckoutURL = "https://checkout.sumup.com/pay/abc"
	assert.Equal(t, "https://checkout.sumup.com/pay/abc", s.CheckoutURL(c))
}

func TestSumUp_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusUnauthorized, "Configuration du paiement invalide : identifiants refusés par la passerelle"},
		{http.StatusForbidden, "Le compte marchand n'est pas activé pour les paiements en ligne"},
		{http.StatusBadRequest, "Paramètres de paiement invalides"},
		{http.StatusBadGateway, "Erreur lors de la création du paiement"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error_code":"X"}`))
			}))
			defer srv.Close()

			_, err := NewSumUp(srv.URL, "k", "m", "", time.Second).CreateCheckout(context.Background(), CheckoutRequest{Reference: "r", Amount: decimal.NewFromInt(1)})
			var gwErr *Error
			require.True(t, errors.As(err, &gwErr), "got %v", err)
			assert.Equal(t, tt.status, gwErr.StatusCode)
			assert.Equal(t, tt.want, gwErr.Message())
			assert.Contains(t, gwErr.Error(), "error_code")
		})
	}
}

func TestSumUp_GetAndFind(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v0.1/checkouts/chk_9", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"chk_9","checkout_reference":"ORD-9","status":"PAID","transactions":[{"id":"tx_a","status":"FAILED"},{"id":"tx_b","status":"SUCCESSFUL"}]}`))
	})
	mux.HandleFunc("/v0.1/checkouts", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("checkout_reference") {
		case "ORD-9":
			_, _ = w.Write([]byte(`[{"id":"chk_9","checkout_reference":"ORD-9","status":"paid"}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	s := NewSumUp(srv.URL, "k", "m", "", time.Second)

	c, err := s.GetCheckout(context.Background(), "chk_9")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, c.Status)
	assert.Equal(t, "tx_b", c.TransactionID)

	c, err = s.FindByReference(context.Background(), "ORD-9")
	require.NoError(t, err)
	assert.Equal(t, "chk_9", c.ID)
	assert.Equal(t, StatusPaid, c.Status)

	_, err = s.FindByReference(context.Background(), "ORD-0")
	assert.ErrorIs(t, err, ErrCheckoutNotFound)

	_, err = s.GetCheckout(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
}
