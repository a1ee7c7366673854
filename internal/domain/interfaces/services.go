package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	domaintypes "teller/internal/domain/types"
)

// CredentialSource is a read-only view of the process-wide current session.
// It never blocks and never fails; with no active session AuthHeader
// returns ("", false).
type CredentialSource interface {
	AuthHeader() (string, bool)
	Current() (domaintypes.Session, bool)
}

// SessionService owns the session lifecycle: signup, login, logout,
// restore-from-disk, and the credential-recovery calls.
type SessionService interface {
	Register(ctx context.Context, registration domaintypes.Registration) (string, error)
	Login(ctx context.Context, usernameOrEmail, password string) (domaintypes.Session, error)
	Logout()
	Restore() (domaintypes.Session, bool)

	ForgotPassword(ctx context.Context, usernameOrEmail string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	UpdatePassword(ctx context.Context, usernameOrEmail, oldPassword, newPassword string) (string, error)
}

// AccountService holds the cached account set for the current session and
// the account-management operations around it.
type AccountService interface {
	Refresh(ctx context.Context) ([]domaintypes.Account, error)
	Current() []domaintypes.Account
	Invalidate()

	AccountTypes(ctx context.Context) ([]domaintypes.AccountType, error)
	CreateAccount(ctx context.Context, accountType string) (domaintypes.Account, error)
	Statement(ctx context.Context, accountNumber string) ([]domaintypes.StatementEntry, error)
}

// FeeEstimator previews the cost of a prospective transaction. Preview
// never fails: when the backend cannot be asked it returns a zero-fee
// quote marked Degraded.
type FeeEstimator interface {
	Preview(ctx context.Context, kind domaintypes.TransactionKind, amount decimal.Decimal) domaintypes.FeeQuote
}
