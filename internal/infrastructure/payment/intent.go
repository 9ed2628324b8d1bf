// Package payment issues payment intents for placed orders.
package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	orderapp "github.com/lewisgroup/storefront/internal/application/order"
	"go.uber.org/zap"
)

// Ensure LocalIntentProvider implements PaymentProvider
var _ orderapp.PaymentProvider = (*LocalIntentProvider)(nil)

// LocalIntentProvider issues locally generated intents. It stands in for a
// real payment gateway; the checkout flow only needs a stable intent ID to
// attach to the order.
type LocalIntentProvider struct {
	logger *zap.Logger
}

// NewLocalIntentProvider creates a LocalIntentProvider
func NewLocalIntentProvider(logger *zap.Logger) *LocalIntentProvider {
	return &LocalIntentProvider{logger: logger.Named("payment")}
}

// CreateIntent issues a new intent for the given amount in minor units
func (p *LocalIntentProvider) CreateIntent(ctx context.Context, amount int64) (*orderapp.PaymentIntent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("intent amount must be positive, got %d", amount)
	}

	id := "pi_" + uuid.NewString()
	intent := &orderapp.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString(),
	}
	p.logger.Debug("Payment intent created",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", amount))
	return intent, nil
}
