package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// simulatedProvider completes every collection immediately without calling
// any external API. Used when payment integration is disabled.
type simulatedProvider struct {
	name   string
	logger zerolog.Logger
}

// NewSimulatedProvider creates a provider that always succeeds locally
func NewSimulatedProvider(name string, logger zerolog.Logger) Provider {
	return &simulatedProvider{
		name:   name,
		logger: logger.With().Str("provider", name).Logger(),
	}
}

func (p *simulatedProvider) Name() string {
	return p.name
}

func (p *simulatedProvider) Initiate(ctx context.Context, req Request) (*Result, error) {
	txnID := "TXN-" + uuid.New().String()
	p.logger.Info().
		Str("transactionId", txnID).
		Float64("amount", req.Amount).
		Msg("Payment integration disabled, completing collection locally")

	return &Result{
		TransactionID: txnID,
		Status:        "Completed",
		InitiatedAt:   time.Now(),
	}, nil
}
