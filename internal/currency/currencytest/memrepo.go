// Package currencytest provides an in-memory currency.Repository for tests.
package currencytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/boutique-ecom/internal/currency"
)

// MemRepo is an in-memory currency.Repository keyed by currency code.
type MemRepo struct {
	mu    sync.Mutex
	rates map[string]currency.Rate // by code
}

func NewMemRepo(rows ...currency.Rate) *MemRepo {
	m := &MemRepo{rates: map[string]currency.Rate{}}
	for _, r := range rows {
		m.rates[r.CurrencyCode] = r
	}
	return m
}

func (m *MemRepo) List(_ context.Context) ([]currency.Rate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]currency.Rate, 0, len(m.rates))
	for _, r := range m.rates {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

func (m *MemRepo) UpdateRates(_ context.Context, base string, updates []currency.RateUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range updates {
		for code, r := range m.rates {
			if r.ID == u.ID && code != base {
				r.Rate = *u.Rate
				r.UpdatedAt = time.Now()
				m.rates[code] = r
			}
		}
	}
	m.pin(base)
	return nil
}

func (m *MemRepo) SyncRates(_ context.Context, base string, rates map[string]decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pin(base)
	for code, v := range rates {
		r, ok := m.rates[code]
		if !ok {
			r = currency.Rate{ID: uuid.NewString(), CurrencyCode: code}
		}
		r.Rate = v
		r.UpdatedAt = time.Now()
		m.rates[code] = r
	}
	return nil
}

func (m *MemRepo) pin(base string) {
	r, ok := m.rates[base]
	if !ok {
		r = currency.Rate{ID: uuid.NewString(), CurrencyCode: base}
	}
	r.Rate = decimal.NewFromInt(1)
	m.rates[base] = r
}
