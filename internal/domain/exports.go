package domain

import (
	interfaces "teller/internal/domain/interfaces"
	types "teller/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Session           = types.Session
	Registration      = types.Registration
	Account           = types.Account
	AccountType       = types.AccountType
	StatementEntry    = types.StatementEntry
	TransactionKind   = types.TransactionKind
	TransactionDraft  = types.TransactionDraft
	FeeQuote          = types.FeeQuote
	TransactionCosts  = types.TransactionCosts
	Outcome           = types.Outcome
	TransactionResult = types.TransactionResult
	ErrorKind         = types.ErrorKind
	ClassifiedError   = types.ClassifiedError
)

// Constants re-exported for the same reason.
const (
	KindDeposit  = types.KindDeposit
	KindWithdraw = types.KindWithdraw
	KindTransfer = types.KindTransfer

	OutcomeSucceeded = types.OutcomeSucceeded
	OutcomeFailed    = types.OutcomeFailed
	OutcomeCancelled = types.OutcomeCancelled

	ErrNetwork           = types.ErrNetwork
	ErrAuthExpired       = types.ErrAuthExpired
	ErrValidation        = types.ErrValidation
	ErrInsufficientFunds = types.ErrInsufficientFunds
	ErrServerRejected    = types.ErrServerRejected
	ErrUnknown           = types.ErrUnknown
)

// Function aliases from the types subpackage.
var (
	ValidationError = types.ValidationError
	AsClassified    = types.AsClassified
	KindOf          = types.KindOf
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	BankClient       = interfaces.BankClient
	CredentialSource = interfaces.CredentialSource
	SessionService   = interfaces.SessionService
	AccountService   = interfaces.AccountService
	FeeEstimator     = interfaces.FeeEstimator
	SessionStore     = interfaces.SessionStore
)
