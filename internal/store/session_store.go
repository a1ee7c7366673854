package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"teller/internal/domain"
)

const (
	keyFile     = "session.key" // machine-local secret, created on first save
	sessionFile = "session.enc" // sealed current session
)

// SessionFileStore persists the current session to disk, sealed with a key
// derived from a machine-local secret so the bearer token is not readable
// in plain text at rest.
type SessionFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir}
}

type sessionRecord struct {
	CustomerID string `json:"customer_id"`
	Token      string `json:"token"`
	Name       string `json:"name,omitempty"`
	SavedUTC   int64  `json:"saved_utc,omitempty"`
}

// Save seals and writes the session, replacing any previous one.
func (s *SessionFileStore) Save(session domain.Session) error {
	if !session.Valid() {
		return errors.New("refusing to persist partial session")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	secret, err := s.loadOrCreateSecret()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(sessionRecord{
		CustomerID: session.CustomerID,
		Token:      session.Token,
		Name:       session.Name,
		SavedUTC:   time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	blob, err := seal(secret, raw)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, sessionFile), blob, 0o600)
}

// Load returns the persisted session. Any missing, corrupt or undecryptable
// state reads as "no session".
func (s *SessionFileStore) Load() (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	secret, err := readFile(filepath.Join(s.dir, keyFile))
	if err != nil || secret == nil {
		return domain.Session{}, false
	}
	blob, err := readFile(filepath.Join(s.dir, sessionFile))
	if err != nil || blob == nil {
		return domain.Session{}, false
	}
	raw, err := open(secret, blob)
	if err != nil {
		return domain.Session{}, false
	}
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Session{}, false
	}
	session := domain.Session{CustomerID: rec.CustomerID, Token: rec.Token, Name: rec.Name}
	if !session.Valid() {
		return domain.Session{}, false
	}
	return session, true
}

// Clear removes the persisted session. Calling it with nothing persisted is
// a no-op.
func (s *SessionFileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

var _ domain.SessionStore = (*SessionFileStore)(nil)

// loadOrCreateSecret reads the machine-local secret, generating one on first
// use.
func (s *SessionFileStore) loadOrCreateSecret() ([]byte, error) {
	path := filepath.Join(s.dir, keyFile)
	secret, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if len(secret) == 32 {
		return secret, nil
	}
	secret = make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	if err := writeFile(path, secret, 0o600); err != nil {
		return nil, err
	}
	return secret, nil
}

// scrypt envelope (parameters fixed here; tune as needed)
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

type envelope struct {
	Salt []byte
	CT   []byte
}

func seal(secret, plaintext []byte) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	N, r, p := scryptParamsDefault()
	key, err := scrypt.Key(secret, salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	// The key is fresh per salt, so a fixed nonce is safe here.
	nonce := make([]byte, aead.NonceSize())
	ct := aead.Seal(nil, nonce, plaintext, salt)
	return json.Marshal(envelope{Salt: salt, CT: ct})
}

func open(secret, blob []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, err
	}
	N, r, p := scryptParamsDefault()
	key, err := scrypt.Key(secret, env.Salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	return aead.Open(nil, nonce, env.CT, env.Salt)
}
