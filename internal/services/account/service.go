package account

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"teller/internal/domain"
)

// Service caches the account set for the current session and fronts the
// account-management endpoints.
//
// The cache is replaced wholesale after every successful fetch and never
// patched incrementally: server-side fee deduction and mutations from other
// clients make partial local knowledge unreliable. A failed refresh leaves
// the previous set untouched.
type Service struct {
	client domain.BankClient
	creds  domain.CredentialSource
	log    zerolog.Logger

	mu       sync.RWMutex
	accounts []domain.Account
}

// New constructs an account Service.
func New(client domain.BankClient, creds domain.CredentialSource, logger zerolog.Logger) *Service {
	return &Service{client: client, creds: creds, log: logger}
}

// Refresh fetches the authoritative account set and atomically replaces the
// cache. Readers observe either the old full set or the new full set, never
// an interleaving.
func (s *Service) Refresh(ctx context.Context) ([]domain.Account, error) {
	session, ok := s.creds.Current()
	if !ok {
		return nil, &domain.ClassifiedError{Kind: domain.ErrAuthExpired, Message: "no active session"}
	}

	accounts, err := s.client.FetchAccounts(ctx, session.CustomerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.accounts = accounts
	s.mu.Unlock()

	return snapshot(accounts), nil
}

// Current returns the last successfully fetched set; empty before the first
// refresh.
func (s *Service) Current() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.accounts)
}

// Invalidate empties the cache. Used on logout.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.accounts = nil
	s.mu.Unlock()
}

// AccountTypes lists the products available when opening an account.
func (s *Service) AccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	return s.client.AccountTypes(ctx)
}

// CreateAccount opens a new account of the given type for the current
// customer and refreshes the cache so the new account is visible.
func (s *Service) CreateAccount(ctx context.Context, accountType string) (domain.Account, error) {
	session, ok := s.creds.Current()
	if !ok {
		return domain.Account{}, &domain.ClassifiedError{Kind: domain.ErrAuthExpired, Message: "no active session"}
	}
	created, err := s.client.CreateAccount(ctx, session.CustomerID, accountType)
	if err != nil {
		return domain.Account{}, err
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("account created but cache refresh failed")
	}
	return created, nil
}

// Statement fetches the transaction statement for one account.
func (s *Service) Statement(ctx context.Context, accountNumber string) ([]domain.StatementEntry, error) {
	return s.client.Statement(ctx, accountNumber)
}

var _ domain.AccountService = (*Service)(nil)

// snapshot copies the slice so callers can't mutate the cache through it.
func snapshot(accounts []domain.Account) []domain.Account {
	out := make([]domain.Account, len(accounts))
	copy(out, accounts)
	return out
}
