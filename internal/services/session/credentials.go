package session

import (
	"sync"

	"teller/internal/domain"
)

// Credentials is the single process-wide holder of the active session. It
// is written only by login, logout and restore; every other component holds
// a read-only CredentialSource view of it.
type Credentials struct {
	mu      sync.RWMutex
	session domain.Session
	active  bool
}

// NewCredentials returns an empty holder (no active session).
func NewCredentials() *Credentials { return &Credentials{} }

func (c *Credentials) set(session domain.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
	c.active = true
}

func (c *Credentials) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = domain.Session{}
	c.active = false
}

// Current returns the active session, if any.
func (c *Credentials) Current() (domain.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session, c.active
}

// AuthHeader returns the Authorization header value for the active session.
// It never blocks and never fails; with no session it reports ("", false).
func (c *Credentials) AuthHeader() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.active {
		return "", false
	}
	return "Bearer " + c.session.Token, true
}

var _ domain.CredentialSource = (*Credentials)(nil)
