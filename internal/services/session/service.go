package session

import (
	"context"

	"github.com/rs/zerolog"

	"teller/internal/domain"
)

// Service owns the session lifecycle: it logs in against the backend,
// persists the resulting session, restores it at startup, and tears it down
// on logout or when the backend rejects the token.
type Service struct {
	client domain.BankClient
	store  domain.SessionStore
	creds  *Credentials
	log    zerolog.Logger
}

// New constructs a session Service around the given client, store and
// credential holder.
func New(client domain.BankClient, store domain.SessionStore, creds *Credentials, logger zerolog.Logger) *Service {
	return &Service{client: client, store: store, creds: creds, log: logger}
}

// Register signs up a new customer. It does not log the customer in; the
// backend expects a normal login after signup.
func (s *Service) Register(ctx context.Context, registration domain.Registration) (string, error) {
	return s.client.Register(ctx, registration)
}

// Login authenticates against the backend and, on success, makes the
// returned session the process-wide credential and persists it.
//
// A 401/403 at login means the credentials were wrong, not that a session
// expired, so it surfaces as a Validation failure rather than AuthExpired.
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (domain.Session, error) {
	session, err := s.client.Login(ctx, usernameOrEmail, password)
	if err != nil {
		if ce, ok := domain.AsClassified(err); ok && ce.Kind == domain.ErrAuthExpired {
			return domain.Session{}, &domain.ClassifiedError{
				Kind:       domain.ErrValidation,
				Message:    "invalid credentials",
				HTTPStatus: ce.HTTPStatus,
			}
		}
		return domain.Session{}, err
	}

	s.creds.set(session)
	if err := s.store.Save(session); err != nil {
		// The login itself succeeded; a persistence failure only costs the
		// user a re-login after restart.
		s.log.Warn().Err(err).Msg("could not persist session")
	}
	return session, nil
}

// Logout clears the active session and its persisted copy. Calling it with
// no session is a no-op.
func (s *Service) Logout() {
	s.creds.clear()
	if err := s.store.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("could not clear persisted session")
	}
}

// Restore loads the persisted session, if any, and makes it current. It
// never fails: damaged state reads as "not logged in".
func (s *Service) Restore() (domain.Session, bool) {
	session, ok := s.store.Load()
	if !ok {
		return domain.Session{}, false
	}
	s.creds.set(session)
	return session, true
}

// ForgotPassword asks the backend to start a credential reset.
func (s *Service) ForgotPassword(ctx context.Context, usernameOrEmail string) (string, error) {
	return s.client.ForgotPassword(ctx, usernameOrEmail)
}

// ResetPassword completes a credential reset with the token from the email.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	return s.client.ResetPassword(ctx, token, newPassword)
}

// UpdatePassword changes the password of the logged-in user. The backend
// wants the login identifier alongside the bearer token, so the caller
// supplies it.
func (s *Service) UpdatePassword(ctx context.Context, usernameOrEmail, oldPassword, newPassword string) (string, error) {
	if _, ok := s.creds.Current(); !ok {
		return "", &domain.ClassifiedError{Kind: domain.ErrAuthExpired, Message: "no active session"}
	}
	return s.client.UpdatePassword(ctx, usernameOrEmail, oldPassword, newPassword)
}

var _ domain.SessionService = (*Service)(nil)
