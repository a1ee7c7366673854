package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"teller/internal/domain"
)

// Executor runs the confirm-then-commit protocol for money-movement
// operations. Each user-initiated operation becomes one Flow; the commit
// call is non-idempotent, so a Flow fires it at most once, only after an
// explicit Confirm, and never retries.
type Executor struct {
	client   domain.BankClient
	accounts domain.AccountService
	fees     domain.FeeEstimator
	sessions domain.SessionService
	log      zerolog.Logger
}

// New constructs an Executor.
func New(
	client domain.BankClient,
	accounts domain.AccountService,
	fees domain.FeeEstimator,
	sessions domain.SessionService,
	logger zerolog.Logger,
) *Executor {
	return &Executor{
		client:   client,
		accounts: accounts,
		fees:     fees,
		sessions: sessions,
		log:      logger,
	}
}

// Begin validates a draft, quotes its fee, and returns a Flow suspended at
// the confirmation gate. Structural violations fail here with a Validation
// error before any network traffic; a failing fee service does not stop the
// flow (the quote degrades to zero fee).
func (e *Executor) Begin(ctx context.Context, draft domain.TransactionDraft) (*Flow, error) {
	flow := &Flow{
		id:    uuid.NewString(),
		exec:  e,
		state: StateDrafting,
		draft: draft,
	}

	if err := validateDraft(draft, e.accounts.Current()); err != nil {
		e.log.Debug().Str("flow", flow.id).Err(err).Msg("draft rejected")
		return nil, err
	}

	flow.state = StateQuoted
	flow.quote = e.fees.Preview(ctx, draft.Kind, draft.Amount)
	flow.state = StateAwaitingConfirmation

	e.log.Debug().
		Str("flow", flow.id).
		Str("kind", string(draft.Kind)).
		Str("amount", draft.Amount.String()).
		Str("fee", flow.quote.Fee.String()).
		Msg("awaiting confirmation")
	return flow, nil
}

// validateDraft applies the structural checks that need no network call:
// positive amount, operand presence, and membership of the user's own
// accounts in the cached set.
func validateDraft(draft domain.TransactionDraft, accounts []domain.Account) error {
	if !draft.Amount.IsPositive() {
		return domain.ValidationError("amount must be greater than zero")
	}

	switch draft.Kind {
	case domain.KindDeposit:
		if draft.ToAccount == "" {
			return domain.ValidationError("deposit requires a destination account")
		}
		if !hasAccount(accounts, draft.ToAccount) {
			return domain.ValidationError(fmt.Sprintf("unknown account %q", draft.ToAccount))
		}
	case domain.KindWithdraw:
		if draft.FromAccount == "" {
			return domain.ValidationError("withdrawal requires a source account")
		}
		if !hasAccount(accounts, draft.FromAccount) {
			return domain.ValidationError(fmt.Sprintf("unknown account %q", draft.FromAccount))
		}
	case domain.KindTransfer:
		if draft.FromAccount == "" || draft.ToAccount == "" {
			return domain.ValidationError("transfer requires both source and destination accounts")
		}
		if draft.FromAccount == draft.ToAccount {
			return domain.ValidationError("same-account transfer")
		}
		if !hasAccount(accounts, draft.FromAccount) {
			return domain.ValidationError(fmt.Sprintf("unknown account %q", draft.FromAccount))
		}
	default:
		return domain.ValidationError(fmt.Sprintf("unknown transaction kind %q", draft.Kind))
	}
	return nil
}

func hasAccount(accounts []domain.Account, number string) bool {
	for _, a := range accounts {
		if a.AccountNumber == number {
			return true
		}
	}
	return false
}
