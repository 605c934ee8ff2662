package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
)

// SessionStore is the per-session key/value storage the token lives in.
// *session.Session implements it.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Form is the submitted form data. url.Values implements it.
type Form interface {
	Has(key string) bool
	Get(key string) string
}

// Manager owns the lifecycle of the per-session token. It holds only
// immutable configuration and is safe for concurrent use; the session passed
// to each call is not.
type Manager struct {
	config       Config
	rand         io.Reader
	resolve      SessionResolver
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// New creates a Manager and validates its configuration.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config:       DefaultConfig(),
		rand:         rand.Reader,
		resolve:      sessionFromContext,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := m.config.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Ensure stores a fresh token unless s already holds one of the configured
// length. Calling it repeatedly is harmless.
func (m *Manager) Ensure(s SessionStore) error {
	_, err := m.Token(s)
	return err
}

// Token returns the session's token, generating one first if it is missing
// or malformed.
func (m *Manager) Token(s SessionStore) (string, error) {
	if token, ok := m.stored(s); ok {
		return token, nil
	}
	return m.Regenerate(s)
}

// Check reports whether the form carries the session's current token.
// On any failure (field missing, session token missing, mismatch) the session
// token is replaced, so the checked value can never succeed later. A
// successful check leaves the token in place.
func (m *Manager) Check(s SessionStore, f Form) (bool, error) {
	if f != nil && f.Has(m.config.PostKey) {
		submitted := f.Get(m.config.PostKey)
		if stored, ok := m.stored(s); ok && subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1 {
			return true, nil
		}
	}

	if _, err := m.Regenerate(s); err != nil {
		return false, err
	}
	return false, nil
}

// Regenerate unconditionally replaces the session token. On a random source
// failure the session is not modified.
func (m *Manager) Regenerate(s SessionStore) (string, error) {
	buf := make([]byte, m.config.TokenLength/2)
	if _, err := io.ReadFull(m.rand, buf); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}

	token := hex.EncodeToString(buf)
	s.Set(m.config.SessionKey, token)
	return token, nil
}

// PostKey is the form field the token is submitted under.
func (m *Manager) PostKey() string {
	return m.config.PostKey
}

// SessionKey is the session entry the token is stored under.
func (m *Manager) SessionKey() string {
	return m.config.SessionKey
}

// TokenLength is the number of hex characters in a token.
func (m *Manager) TokenLength() int {
	return m.config.TokenLength
}

// HeaderName is the request header Middleware falls back to. Empty when disabled.
func (m *Manager) HeaderName() string {
	return m.config.HeaderName
}

// stored returns the session token if present with the configured length.
// Values of any other length are treated as absent.
func (m *Manager) stored(s SessionStore) (string, bool) {
	token, ok := s.Get(m.config.SessionKey)
	if !ok || len(token) != m.config.TokenLength {
		return "", false
	}
	return token, true
}
