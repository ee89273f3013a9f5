package currency

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrInvalidRate = errors.New("rate must be greater than zero")

type Service struct {
	repo    Repository
	fx      RateSource
	base    string
	tracked []string
	log     logrus.FieldLogger
}

func NewService(repo Repository, fx RateSource, base string, tracked []string, log logrus.FieldLogger) *Service {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		base = "EUR"
	}
	codes := make([]string, 0, len(tracked))
	for _, c := range tracked {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			codes = append(codes, c)
		}
	}
	return &Service{repo: repo, fx: fx, base: base, tracked: codes, log: log}
}

func (s *Service) Base() string { return s.base }

// List returns every rate with the base currency reported as exactly 1.
func (s *Service) List(ctx context.Context) ([]Rate, error) {
	rates, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Rate, 0, len(rates))
	for _, r := range rates {
		if strings.EqualFold(r.CurrencyCode, s.base) {
			r.Rate = decimal.NewFromInt(1)
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

// Update applies manual edits. Every rate must be positive; edits to the
// base currency are ignored.
func (s *Service) Update(ctx context.Context, updates []RateUpdate) ([]Rate, error) {
	for _, u := range updates {
		if u.Rate == nil || !u.Rate.IsPositive() {
			return nil, ErrInvalidRate
		}
	}
	if err := s.repo.UpdateRates(ctx, s.base, updates); err != nil {
		return nil, err
	}
	s.log.WithField("count", len(updates)).Info("currency rates updated manually")
	return s.List(ctx)
}

// Sync pulls the latest rates and stores the tracked currencies found in them.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	q, err := s.fx.Latest(ctx, s.base)
	if err != nil {
		s.log.WithError(err).Error("currency sync failed")
		return nil, err
	}

	rates := map[string]decimal.Decimal{}
	var updated []string
	for _, code := range s.tracked {
		if code == s.base {
			continue
		}
		r, ok := q.Rates[code]
		if !ok || !r.IsPositive() {
			s.log.WithField("currency", code).Warn("currency missing from fx response")
			continue
		}
		rates[code] = r
		updated = append(updated, code)
	}
	if err := s.repo.SyncRates(ctx, s.base, rates); err != nil {
		return nil, err
	}

	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"updated": updated, "date": q.Date}).Info("currency rates synced")
	return &SyncResult{Currencies: list, Updated: updated, Source: s.fx.Name(), Date: q.Date}, nil
}
