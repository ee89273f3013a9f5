// Package currency keeps display exchange rates relative to the base currency.
package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is one currency expressed against the base currency.
// swagger:model CurrencyRate
type Rate struct {
	ID           string          `json:"id"`
	CurrencyCode string          `json:"currency_code" example:"USD"`
	Rate         decimal.Decimal `json:"rate" swaggertype:"string" example:"1.0842"`
	Symbol       string          `json:"symbol" example:"$"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RateUpdate manual edit of a single rate.
// swagger:model RateUpdate
type RateUpdate struct {
	ID   string           `json:"id" binding:"required,uuid"`
	Rate *decimal.Decimal `json:"rate" binding:"required" swaggertype:"string" example:"10.85"`
}

// UpdateRequest payload of PUT /api/admin/currency.
// swagger:model CurrencyUpdateRequest
type UpdateRequest struct {
	Currencies []RateUpdate `json:"currencies" binding:"required,min=1,dive"`
}

// Quote is what the FX source returned.
type Quote struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// SyncResult outcome of a sync with the FX source.
type SyncResult struct {
	Currencies []Rate
	Updated    []string
	Source     string
	Date       string
}
