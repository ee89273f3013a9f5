package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultPayURL = "https://pay.sumup.com/b2c/Q"

// SumUp is the REST client for the SumUp checkouts API.
type SumUp struct {
	HTTP         *http.Client
	BaseURL      string
	APIKey       string
	MerchantCode string
	PayURL       string
}

func NewSumUp(baseURL, apiKey, merchantCode, payURL string, timeout time.Duration) *SumUp {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SumUp{
		HTTP:         &http.Client{Timeout: timeout},
		BaseURL:      strings.TrimRight(baseURL, "/"),
		APIKey:       apiKey,
		MerchantCode: merchantCode,
		PayURL:       payURL,
	}
}

type sumupCheckout struct {
	ID                string          `json:"id"`
	CheckoutReference string          `json:"checkout_reference"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	HostedCheckoutURL string          `json:"hosted_checkout_url"`
	Transactions      []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"transactions"`
}

func (c sumupCheckout) toCheckout() *Checkout {
	out := &Checkout{
		ID:                c.ID,
		Reference:         c.CheckoutReference,
		Amount:            c.Amount,
		Currency:          c.Currency,
		Status:            strings.ToUpper(c.Status),
		HostedCheckoutURL: c.HostedCheckoutURL,
	}
	for _, tx := range c.Transactions {
		if strings.EqualFold(tx.Status, "SUCCESSFUL") || out.TransactionID == "" {
			out.TransactionID = tx.ID
		}
	}
	return out
}

func (s *SumUp) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sumup %s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return err
	}
	if res.StatusCode == http.StatusNotFound {
		return ErrCheckoutNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &Error{StatusCode: res.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode sumup response: %w", err)
	}
	return nil
}

func (s *SumUp) CreateCheckout(ctx context.Context, r CheckoutRequest) (*Checkout, error) {
	amount, _ := r.Amount.Round(2).Float64()
	payload := map[string]any{
		"checkout_reference": r.Reference,
		"amount":             amount,
		"currency":           r.Currency,
		"merchant_code":      s.MerchantCode,
		"description":        r.Description,
		"redirect_url":       r.RedirectURL,
		"return_url":         r.ReturnURL,
		"hosted_checkout":    map[string]bool{"enabled": true},
	}
	var out sumupCheckout
	if err := s.do(ctx, http.MethodPost, "/v0.1/checkouts", payload, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("sumup checkout response carries no id")
	}
	return out.toCheckout(), nil
}

func (s *SumUp) GetCheckout(ctx context.Context, id string) (*Checkout, error) {
	var out sumupCheckout
	if err := s.do(ctx, http.MethodGet, "/v0.1/checkouts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.toCheckout(), nil
}

func (s *SumUp) FindByReference(ctx context.Context, reference string) (*Checkout, error) {
	var out []sumupCheckout
	q := url.Values{"checkout_reference": {reference}}
	if err := s.do(ctx, http.MethodGet, "/v0.1/checkouts?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrCheckoutNotFound
	}
	return out[len(out)-1].toCheckout(), nil
}

// CheckoutURL prefers the hosted checkout link and falls back to the pay-link pattern.
func (s *SumUp) CheckoutURL(c *Checkout) string {
	if c.HostedCheckoutURL != "" {
		return c.HostedCheckoutURL
	}
	base := s.PayURL
	if base == "" {
		base = defaultPayURL
	}
	return base + c.ID
}

var _ Gateway = (*SumUp)(nil)
