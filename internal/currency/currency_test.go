package currency_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/boutique-ecom/internal/currency"
	"github.com/MikeMC777/boutique-ecom/internal/currency/currencytest"
)

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func seed() *currencytest.MemRepo {
	return currencytest.NewMemRepo(
		currency.Rate{ID: uuid.NewString(), CurrencyCode: "EUR", Rate: decimal.RequireFromString("0.97"), Symbol: "€"},
		currency.Rate{ID: uuid.NewString(), CurrencyCode: "USD", Rate: decimal.RequireFromString("1.08"), Symbol: "$"},
		currency.Rate{ID: uuid.NewString(), CurrencyCode: "MAD", Rate: decimal.RequireFromString("10.8"), Symbol: "DH"},
	)
}

func rateOf(t *testing.T, list []currency.Rate, code string) currency.Rate {
	t.Helper()
	for _, r := range list {
		if r.CurrencyCode == code {
			return r
		}
	}
	t.Fatalf("currency %s not in list", code)
	return currency.Rate{}
}

func TestListPinsBase(t *testing.T) {
	svc := currency.NewService(seed(), nil, "eur", nil, quietLog())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "EUR", list[0].CurrencyCode)
	assert.True(t, rateOf(t, list, "EUR").Rate.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "MAD", list[1].CurrencyCode)
}

func TestUpdate(t *testing.T) {
	repo := seed()
	svc := currency.NewService(repo, nil, "EUR", nil, quietLog())
	list, _ := svc.List(context.Background())
	usd := rateOf(t, list, "USD")
	eur := rateOf(t, list, "EUR")

	r1 := decimal.RequireFromString("1.1")
	r2 := decimal.RequireFromString("3")
	out, err := svc.Update(context.Background(), []currency.RateUpdate{
		{ID: usd.ID, Rate: &r1},
		{ID: eur.ID, Rate: &r2},
	})
	require.NoError(t, err)
	assert.True(t, rateOf(t, out, "USD").Rate.Equal(r1))
	assert.True(t, rateOf(t, out, "EUR").Rate.Equal(decimal.NewFromInt(1)), "base edits ignored")
}

func TestUpdateRejectsNonPositive(t *testing.T) {
	svc := currency.NewService(seed(), nil, "EUR", nil, quietLog())
	zero := decimal.Zero
	neg := decimal.NewFromInt(-2)

	for _, r := range []*decimal.Decimal{nil, &zero, &neg} {
		_, err := svc.Update(context.Background(), []currency.RateUpdate{{ID: uuid.NewString(), Rate: r}})
		assert.ErrorIs(t, err, currency.ErrInvalidRate)
	}
}

func TestSync(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"base":"EUR","date":"2026-10-18","rates":{"EUR":1,"USD":1.0842,"GBP":0.86,"MAD":10.93}}`)
	}))
	defer srv.Close()

	repo := seed()
	fx := currency.NewFXClient(srv.URL+"/v4/latest/", time.Second)
	svc := currency.NewService(repo, fx, "EUR", []string{"usd", "MAD", "JPY"}, quietLog())

	res, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/v4/latest/EUR", path)
	assert.Equal(t, "2026-10-18", res.Date)
	assert.ElementsMatch(t, []string{"USD", "MAD"}, res.Updated)
	assert.True(t, rateOf(t, res.Currencies, "USD").Rate.Equal(decimal.RequireFromString("1.0842")))
	assert.True(t, rateOf(t, res.Currencies, "MAD").Rate.Equal(decimal.RequireFromString("10.93")))
	assert.True(t, rateOf(t, res.Currencies, "EUR").Rate.Equal(decimal.NewFromInt(1)))
	assert.Len(t, res.Currencies, 3, "untracked GBP not stored")
}

func TestSyncUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := seed()
	svc := currency.NewService(repo, currency.NewFXClient(srv.URL, time.Second), "EUR", []string{"USD"}, quietLog())

	_, err := svc.Sync(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, currency.ErrFXUnavailable))

	list, _ := repo.List(context.Background())
	assert.True(t, rateOf(t, list, "USD").Rate.Equal(decimal.RequireFromString("1.08")), "stored rates untouched")
}

func TestFXClientName(t *testing.T) {
	c := currency.NewFXClient("https://api.exchangerate-api.com/v4/latest", 0)
	assert.Equal(t, "exchangerate-api.com", c.Name())
}
