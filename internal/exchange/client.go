package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// latestResponse is the wire shape of the latest-rates endpoint.
// Anything else is a decode failure and triggers the fallback path upstream.
type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Client fetches live exchange rates over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a rate client for the given endpoint base URL.
// The timeout bounds the whole fetch; after it expires callers fall back
// to the static snapshot instead of blocking.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Latest fetches the current rates for the given base currency.
func (c *Client) Latest(ctx context.Context, base money.Currency) (*Snapshot, error) {
	u := fmt.Sprintf("%s/latest?base=%s", c.baseURL, url.QueryEscape(string(base)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if body.Base == "" || body.Date == "" || len(body.Rates) == 0 {
		return nil, fmt.Errorf("rates response missing base, date or rates")
	}

	baseCurrency, err := money.ParseCurrency(body.Base)
	if err != nil {
		return nil, fmt.Errorf("rates response has unsupported base: %w", err)
	}

	rates := make(map[money.Currency]decimal.Decimal, len(body.Rates)+1)
	for code, rate := range body.Rates {
		currency, err := money.ParseCurrency(code)
		if err != nil {
			// Codes outside the supported set are dropped, not fatal.
			continue
		}
		if rate <= 0 {
			return nil, fmt.Errorf("rates response has non-positive rate for %s", code)
		}
		rates[currency] = decimal.NewFromFloat(rate)
	}
	// The base trades 1:1 with itself even when the endpoint omits it.
	rates[baseCurrency] = decimal.NewFromInt(1)

	if !supportsRequired(rates) {
		return nil, fmt.Errorf("rates response missing required currencies")
	}

	return &Snapshot{
		Base:      baseCurrency,
		Date:      body.Date,
		Rates:     rates,
		FetchedAt: time.Now(),
	}, nil
}

// requiredCurrencies must be present in any usable snapshot.
var requiredCurrencies = []money.Currency{money.USD, money.EUR, money.JPY}

func supportsRequired(rates map[money.Currency]decimal.Decimal) bool {
	for _, c := range requiredCurrencies {
		if _, ok := rates[c]; !ok {
			return false
		}
	}
	return true
}
