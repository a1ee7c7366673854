package types

import "github.com/shopspring/decimal"

// TransactionKind names a money-movement operation.
type TransactionKind string

const (
	KindDeposit  TransactionKind = "deposit"
	KindWithdraw TransactionKind = "withdraw"
	KindTransfer TransactionKind = "transfer"
)

// TransactionDraft is an unconfirmed description of a money-movement
// operation. FromAccount is unused for deposits, ToAccount for withdrawals.
type TransactionDraft struct {
	Kind        TransactionKind
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
}

// FeeQuote is the previewed cost of a draft. It is advisory: when the fee
// service is unreachable the quote degrades to a zero fee rather than
// blocking the operation, and Degraded records that the figure is not to be
// trusted.
type FeeQuote struct {
	Kind     TransactionKind
	Amount   decimal.Decimal
	Fee      decimal.Decimal
	Total    decimal.Decimal
	Degraded bool
}

// TransactionCosts is the backend's flat per-kind fee table.
type TransactionCosts struct {
	TransactionCost decimal.Decimal `json:"transactionCost"`
	WithdrawFee     decimal.Decimal `json:"withdrawFee"`
	TransferFee     decimal.Decimal `json:"transferFee"`
}

// For returns the flat fee for a kind.
func (c TransactionCosts) For(kind TransactionKind) decimal.Decimal {
	switch kind {
	case KindWithdraw:
		return c.WithdrawFee
	case KindTransfer:
		return c.TransferFee
	default:
		return c.TransactionCost
	}
}

// Outcome is the terminal disposition of a transaction flow.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// TransactionResult is the terminal value of one confirm-then-commit flow.
//
// StaleAccounts is set when the commit itself succeeded but the follow-up
// account refresh did not: the money moved, the displayed balances may lag.
// Cause carries the classified error for failed outcomes.
type TransactionResult struct {
	Outcome           Outcome
	Message           string
	RefreshedAccounts []Account
	StaleAccounts     bool
	Cause             *ClassifiedError
}
