package transaction

import (
	"context"
	"sync"

	"teller/internal/domain"
)

// State names a position in the flow's lifecycle.
type State string

const (
	StateIdle                 State = "idle"
	StateDrafting             State = "drafting"
	StateQuoted               State = "quoted"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateCommitting           State = "committing"
	StateSucceeded            State = "succeeded"
	StateFailed               State = "failed"
)

// Flow is one confirm-then-commit cycle. Begin leaves it suspended at
// AwaitingConfirmation; exactly one of Confirm or Cancel consumes it. A
// consumed flow cannot be reused: a new attempt means a new draft, which
// re-validates and re-quotes by construction.
type Flow struct {
	id   string
	exec *Executor

	mu    sync.Mutex
	state State
	spent bool
	draft domain.TransactionDraft
	quote domain.FeeQuote
}

// ID is the correlation id used in logs.
func (f *Flow) ID() string { return f.id }

// Draft returns the draft under confirmation.
func (f *Flow) Draft() domain.TransactionDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Quote returns the fee quote presented at the confirmation gate.
func (f *Flow) Quote() domain.FeeQuote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quote
}

// State returns the flow's current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Confirm fires the commit call and runs the flow to its terminal outcome.
//
// On backend success the account cache is refreshed before the result is
// returned, so a Succeeded result never carries an account view that
// predates the mutation. If that refresh fails the money still moved, so
// the outcome stays Succeeded and StaleAccounts is set instead.
//
// On backend rejection the error is classified; AuthExpired additionally
// forces a logout, since a token the server has rejected must not be
// reused.
func (f *Flow) Confirm(ctx context.Context) domain.TransactionResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.spent || f.state != StateAwaitingConfirmation {
		return domain.TransactionResult{
			Outcome: domain.OutcomeFailed,
			Message: "flow is not awaiting confirmation",
			Cause:   domain.ValidationError("flow is not awaiting confirmation"),
		}
	}
	f.state = StateCommitting

	message, err := f.commit(ctx)
	if err != nil {
		return f.fail(err)
	}
	return f.succeed(ctx, message)
}

// Cancel abandons the flow at the confirmation gate. Nothing was sent, so
// nothing is mutated; the outcome is Cancelled, distinct from failure.
func (f *Flow) Cancel() domain.TransactionResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.spent || f.state != StateAwaitingConfirmation {
		return domain.TransactionResult{
			Outcome: domain.OutcomeFailed,
			Message: "flow is not awaiting confirmation",
			Cause:   domain.ValidationError("flow is not awaiting confirmation"),
		}
	}
	f.finish(StateIdle)
	f.exec.log.Debug().Str("flow", f.id).Msg("cancelled")
	return domain.TransactionResult{Outcome: domain.OutcomeCancelled, Message: "operation cancelled"}
}

// commit issues the single non-idempotent backend call for the draft's kind.
// Caller holds f.mu.
func (f *Flow) commit(ctx context.Context) (string, error) {
	d := f.draft
	switch d.Kind {
	case domain.KindDeposit:
		return f.exec.client.Deposit(ctx, d.ToAccount, d.Amount)
	case domain.KindWithdraw:
		return f.exec.client.Withdraw(ctx, d.FromAccount, d.Amount)
	default:
		return f.exec.client.TransferFunds(ctx, d.FromAccount, d.ToAccount, d.Amount)
	}
}

// succeed refreshes the cache and builds the terminal success result.
// Caller holds f.mu.
func (f *Flow) succeed(ctx context.Context, message string) domain.TransactionResult {
	result := domain.TransactionResult{Outcome: domain.OutcomeSucceeded, Message: message}

	refreshed, err := f.exec.accounts.Refresh(ctx)
	if err != nil {
		// The mutation happened; only our view of its effects is stale.
		f.exec.log.Warn().Str("flow", f.id).Err(err).Msg("commit succeeded but account refresh failed")
		result.StaleAccounts = true
		result.Message = message + " (displayed balances may be out of date)"
	} else {
		result.RefreshedAccounts = refreshed
	}

	f.finish(StateSucceeded)
	f.exec.log.Debug().Str("flow", f.id).Msg("committed")
	return result
}

// fail classifies the commit error and builds the terminal failure result.
// Caller holds f.mu.
func (f *Flow) fail(err error) domain.TransactionResult {
	ce, ok := domain.AsClassified(err)
	if !ok {
		ce = &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: err.Error()}
	}
	if ce.Kind == domain.ErrAuthExpired {
		f.exec.log.Warn().Str("flow", f.id).Msg("session rejected during commit, logging out")
		f.exec.sessions.Logout()
	}

	f.finish(StateFailed)
	f.exec.log.Debug().Str("flow", f.id).Str("kind", string(ce.Kind)).Msg("commit failed")
	return domain.TransactionResult{Outcome: domain.OutcomeFailed, Message: ce.Message, Cause: ce}
}

// finish marks the flow terminal. The terminal state is observable through
// State until the flow settles back to Idle conceptually; spent is what
// enforces single use. Caller holds f.mu.
func (f *Flow) finish(terminal State) {
	f.state = terminal
	f.spent = true
}
