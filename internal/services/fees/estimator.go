package fees

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"teller/internal/domain"
)

// Estimator previews the cost of a prospective transaction.
//
// A preview is advisory and must never block the underlying operation, so
// Preview has no error path: when the backend cannot be asked it returns a
// zero-fee quote marked Degraded and logs the failure.
type Estimator struct {
	client domain.BankClient
	log    zerolog.Logger
}

// New constructs an Estimator.
func New(client domain.BankClient, logger zerolog.Logger) *Estimator {
	return &Estimator{client: client, log: logger}
}

// Preview quotes the fee for moving amount with the given kind of
// operation. It asks the per-amount charges endpoint first and falls back
// to the flat per-kind fee table before degrading to zero.
func (e *Estimator) Preview(ctx context.Context, kind domain.TransactionKind, amount decimal.Decimal) domain.FeeQuote {
	quote := domain.FeeQuote{Kind: kind, Amount: amount}

	fee, err := e.client.Charges(ctx, kind, amount)
	if err != nil {
		costs, fallbackErr := e.client.TransactionCosts(ctx)
		if fallbackErr != nil {
			e.log.Warn().
				Err(err).
				AnErr("fallback", fallbackErr).
				Str("kind", string(kind)).
				Msg("fee preview unavailable, quoting zero fee")
			quote.Fee = decimal.Zero
			quote.Total = amount
			quote.Degraded = true
			return quote
		}
		fee = costs.For(kind)
	}

	quote.Fee = fee
	quote.Total = amount.Add(fee)
	return quote
}

var _ domain.FeeEstimator = (*Estimator)(nil)
