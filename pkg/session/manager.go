package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/formguard/pkg/cookie"
)

// Manager handles session operations
type Manager struct {
	store         Store
	ownStore      bool
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	logger        *slog.Logger
	locks         *lockTable
}

// New creates a new session manager with the given options.
// Without WithStore a MemoryStore is used; without WithTransport a cookie
// manager is required for the default cookie transport.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
		m.ownStore = true
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
	}

	if m.config.RequestLocking {
		m.locks = newLockTable()
	}

	return m
}

// Load returns the live session referenced by the request.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, token)
}

// Ensure returns the request's session, creating and issuing a new one when
// the request has none or it expired.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	session, err := m.Load(ctx, r)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
		return nil, err
	}
	return m.create(ctx, w)
}

// Save persists the session and slides its expiry forward, bounded by the
// absolute lifetime.
func (m *Manager) Save(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	now := time.Now()
	session.UpdatedAt = now
	session.ExpiresAt = m.expiry(session.CreatedAt, now)

	if err := m.store.Save(ctx, session); err != nil {
		return err
	}
	session.modified = false
	return nil
}

// Destroy deletes the session and clears the token on the client.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}
	return m.transport.ClearToken(w)
}

// Close releases the default memory store. Stores passed through WithStore
// are owned by the caller.
func (m *Manager) Close() error {
	if closer, ok := m.store.(io.Closer); ok && m.ownStore {
		return closer.Close()
	}
	return nil
}

func (m *Manager) create(ctx context.Context, w http.ResponseWriter) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := NewSession(token, m.expiry(now, now).Sub(now))
	if err := m.store.Save(ctx, session); err != nil {
		return nil, err
	}

	// The cookie lives as long as the session can; idle expiry is enforced server side.
	if err := m.transport.SetToken(w, session.Token, m.config.MaxLifetime); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}

	return session, nil
}

func (m *Manager) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(m.config.IdleTimeout)
	if hard := createdAt.Add(m.config.MaxLifetime); hard.Before(idle) {
		return hard
	}
	return idle
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
