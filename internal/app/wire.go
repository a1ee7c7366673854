package app

import (
	"net/http"

	"github.com/rs/zerolog"

	"teller/internal/bank"
	"teller/internal/domain"
	accountsvc "teller/internal/services/account"
	feesvc "teller/internal/services/fees"
	sessionsvc "teller/internal/services/session"
	transactionsvc "teller/internal/services/transaction"
	"teller/internal/store"
)

// Wire bundles the stores, services, and client for the CLI.
type Wire struct {
	Creds    *sessionsvc.Credentials
	Sessions domain.SessionService
	Accounts domain.AccountService
	Fees     domain.FeeEstimator
	Executor *transactionsvc.Executor
	Client   domain.BankClient
	Log      zerolog.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	// The credential holder is built first: the bank client reads it on
	// every call, the session service is the only writer.
	creds := sessionsvc.NewCredentials()

	client := bank.NewClient(cfg.BaseURL, httpClient, creds, cfg.Logger)
	sessionStore := store.NewSessionFileStore(cfg.Home)

	sessions := sessionsvc.New(client, sessionStore, creds, cfg.Logger)
	accounts := accountsvc.New(client, creds, cfg.Logger)
	fees := feesvc.New(client, cfg.Logger)
	executor := transactionsvc.New(client, accounts, fees, sessions, cfg.Logger)

	return &Wire{
		Creds:    creds,
		Sessions: sessions,
		Accounts: accounts,
		Fees:     fees,
		Executor: executor,
		Client:   client,
		Log:      cfg.Logger,
	}, nil
}
