package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	domaintypes "teller/internal/domain/types"
)

// BankClient is how we talk to the remote banking service. Every method
// carries context and returns either a decoded domain value or a
// ClassifiedError; callers never see transport errors or raw bodies.
type BankClient interface {
	Register(ctx context.Context, registration domaintypes.Registration) (string, error)
	Login(ctx context.Context, usernameOrEmail, password string) (domaintypes.Session, error)

	FetchAccounts(ctx context.Context, customerID string) ([]domaintypes.Account, error)
	AccountTypes(ctx context.Context) ([]domaintypes.AccountType, error)
	CreateAccount(ctx context.Context, customerID, accountType string) (domaintypes.Account, error)
	Statement(ctx context.Context, accountNumber string) ([]domaintypes.StatementEntry, error)

	Deposit(ctx context.Context, toAccount string, amount decimal.Decimal) (string, error)
	Withdraw(ctx context.Context, fromAccount string, amount decimal.Decimal) (string, error)
	TransferFunds(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) (string, error)

	Charges(ctx context.Context, kind domaintypes.TransactionKind, amount decimal.Decimal) (decimal.Decimal, error)
	TransactionCosts(ctx context.Context) (domaintypes.TransactionCosts, error)

	ForgotPassword(ctx context.Context, usernameOrEmail string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	UpdatePassword(ctx context.Context, usernameOrEmail, oldPassword, newPassword string) (string, error)
}
