package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrFXUnavailable = errors.New("exchange rate source unavailable")

// RateSource fetches the latest rates for base.
type RateSource interface {
	Latest(ctx context.Context, base string) (*Quote, error)
	Name() string
}

// FXClient reads an exchangerate-api style endpoint: GET <BaseURL>/<base>.
type FXClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewFXClient(baseURL string, timeout time.Duration) *FXClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FXClient{HTTP: &http.Client{Timeout: timeout}, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (c *FXClient) Latest(ctx context.Context, base string) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/"+url.PathEscape(base), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFXUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrFXUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var q Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFXUnavailable, err)
	}
	if len(q.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rates", ErrFXUnavailable)
	}
	return &q, nil
}

// Name is the source host, reported back to the admin.
func (c *FXClient) Name() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" {
		return c.BaseURL
	}
	return strings.TrimPrefix(u.Host, "api.")
}
