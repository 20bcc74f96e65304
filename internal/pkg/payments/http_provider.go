package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
)

// httpProvider implements Provider against an HTTP collection API.
// Both supported networks expose the same request shape, so a single
// implementation is parameterized by name, base URL and API key.
type httpProvider struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

// NewMTNProvider creates a provider for the MTN Uganda collection API
func NewMTNProvider(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) Provider {
	return newHTTPProvider("MTN-Uganda", baseURL, apiKey, timeout, logger)
}

// NewAirtelProvider creates a provider for the Airtel Uganda collection API
func NewAirtelProvider(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) Provider {
	return newHTTPProvider("Airtel-Uganda", baseURL, apiKey, timeout, logger)
}

func newHTTPProvider(name, baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *httpProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpProvider{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("provider", name).Logger(),
	}
}

func (p *httpProvider) Name() string {
	return p.name
}

type collectionRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	PhoneNumber string  `json:"phoneNumber"`
	Reference   string  `json:"reference"`
}

type collectionResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// Initiate posts a collection request, retrying transient failures with
// backoff. The idempotency key is sent on every attempt so the provider
// can deduplicate.
func (p *httpProvider) Initiate(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(collectionRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		PhoneNumber: req.PhoneNumber,
		Reference:   req.Reference,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection request: %w", err)
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, retryable, err := p.doRequest(ctx, body, req.IdempotencyKey)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}

		p.logger.Warn().Err(err).Int("attempt", attempt).Msg("Collection request failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
}

// doRequest performs a single HTTP attempt. The second return value reports
// whether the failure is worth retrying.
func (p *httpProvider) doRequest(ctx context.Context, body []byte, idempotencyKey string) (*Result, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/collections", bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to build collection request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var out collectionResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, false, fmt.Errorf("failed to decode provider response: %w", err)
		}
		return &Result{
			TransactionID: out.TransactionID,
			Status:        out.Status,
			InitiatedAt:   time.Now(),
		}, false, nil
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("provider returned status %d", resp.StatusCode)
	default:
		var out collectionResponse
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return nil, false, fmt.Errorf("%w: status %d: %s", ErrPaymentRejected, resp.StatusCode, out.Message)
	}
}
