package payments

import (
	"context"
	"errors"
	"time"
)

// Payment provider errors
var (
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrPaymentRejected     = errors.New("payment rejected by provider")
	ErrUnknownMethod       = errors.New("unknown payment method")
)

// Request describes a mobile money collection request
type Request struct {
	// IdempotencyKey deduplicates retried requests on the provider side.
	// Callers derive it from the application ID so a retry never double-charges.
	IdempotencyKey string
	Amount         float64
	Currency       string
	PhoneNumber    string
	Reference      string
}

// Result is the provider's answer to an initiated collection
type Result struct {
	TransactionID string
	Status        string
	InitiatedAt   time.Time
}

// Provider initiates mobile money collections against a single network
type Provider interface {
	// Name returns the payment method identifier this provider serves
	Name() string

	// Initiate starts a collection request. Implementations must be safe to
	// retry with the same IdempotencyKey.
	Initiate(ctx context.Context, req Request) (*Result, error)
}

// Registry maps payment method names to providers
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the given providers
func NewRegistry(providers ...Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider for a payment method
func (r *Registry) Get(method string) (Provider, error) {
	p, ok := r.providers[method]
	if !ok {
		return nil, ErrUnknownMethod
	}
	return p, nil
}
