package interfaces

import domaintypes "teller/internal/domain/types"

// SessionStore persists the current session across process restarts.
//
// Load is deliberately tolerant: missing, corrupt or undecryptable state is
// reported as (zero, false), never as an error, so a damaged session file
// degrades to "not logged in" rather than a crash.
type SessionStore interface {
	Save(session domaintypes.Session) error
	Load() (domaintypes.Session, bool)
	Clear() error
}
