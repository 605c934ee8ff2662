package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/formguard/pkg/cookie"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithStore sets a custom session store
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithConfig replaces the whole configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithLifetime sets the idle timeout and the absolute lifetime
func WithLifetime(idle, max time.Duration) Option {
	return func(m *Manager) {
		m.config.IdleTimeout = idle
		m.config.MaxLifetime = max
	}
}

func WithTouchInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.config.TouchInterval = interval
	}
}

// WithRequestLocking makes Middleware hold a per-session lock for the
// duration of each request.
func WithRequestLocking(enabled bool) Option {
	return func(m *Manager) {
		m.config.RequestLocking = enabled
	}
}

// WithCookieManager sets the cookie manager for the default cookie transport
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookieMgr
		m.cookieOptions = opts
	}
}

// WithLogger sets the logger used by Middleware to report store failures
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}
