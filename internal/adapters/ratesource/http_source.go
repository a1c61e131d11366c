// Package ratesource fetches the USD rate table from the external rate API.
package ratesource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// ErrMalformedPayload is returned when the rate table cannot be decoded.
var ErrMalformedPayload = errors.New("malformed rate payload")

// HTTPSource reads rates from a single JSON endpoint. Each call is one
// attempt bounded by timeout and by the caller's context.
type HTTPSource struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

// NewHTTPSource creates a source for url.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:     url,
		timeout: timeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

var _ portssvc.RateSource = (*HTTPSource)(nil)

func (s *HTTPSource) FetchRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		metrics.RateSourceFetchDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate source request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("rate source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read rate response: %w", err)
	}

	return ParseRates(body)
}

// ParseRates flattens a rate payload into one code -> rate mapping. Both a
// list of single-entry fragments ([{"USD":1},{"GBP":0.75}]) and a flat
// object ({"USD":1,"GBP":0.75}) are accepted; later fragments win on
// duplicate codes. Values may be JSON numbers or numeric strings.
func ParseRates(data []byte) (map[string]decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}

	var fragments []map[string]json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &fragments); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
	case '{':
		var flat map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &flat); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		fragments = append(fragments, flat)
	default:
		return nil, fmt.Errorf("%w: expected a JSON array or object", ErrMalformedPayload)
	}

	rates := make(map[string]decimal.Decimal)
	for _, fragment := range fragments {
		for code, raw := range fragment {
			value, err := parseRateValue(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: rate for %q: %v", ErrMalformedPayload, code, err)
			}
			rates[strings.ToUpper(strings.TrimSpace(code))] = value
		}
	}
	return rates, nil
}

func parseRateValue(raw json.RawMessage) (decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, err
		}
		text = strings.TrimSpace(s)
	}
	return decimal.NewFromString(text)
}
