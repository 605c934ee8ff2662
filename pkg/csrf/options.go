package csrf

import (
	"io"
	"net/http"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithConfig replaces the whole configuration
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

func WithSessionKey(key string) Option {
	return func(m *Manager) {
		m.config.SessionKey = key
	}
}

func WithPostKey(key string) Option {
	return func(m *Manager) {
		m.config.PostKey = key
	}
}

func WithTokenLength(length int) Option {
	return func(m *Manager) {
		m.config.TokenLength = length
	}
}

func WithHeaderName(name string) Option {
	return func(m *Manager) {
		m.config.HeaderName = name
	}
}

// WithRandReader replaces crypto/rand.Reader. Meant for tests.
func WithRandReader(r io.Reader) Option {
	return func(m *Manager) {
		if r != nil {
			m.rand = r
		}
	}
}

// WithSessionResolver sets how Middleware finds the request's session.
// The default reads the *session.Session stored by session.Manager.Middleware.
func WithSessionResolver(fn SessionResolver) Option {
	return func(m *Manager) {
		if fn != nil {
			m.resolve = fn
		}
	}
}

// WithErrorHandler sets the response written by Middleware when the session
// is missing, the token does not match or a token cannot be generated.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.errorHandler = fn
		}
	}
}
