package session

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// Middleware ensures every request has a session, exposes it through
// FromContext and persists it after the handler when it was modified or
// has not been touched for TouchInterval.
//
// Values set after the handler has flushed the response are still saved;
// only the token cookie is written up front.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if m.locks != nil {
			if token, err := m.transport.GetToken(r); err == nil {
				defer m.locks.acquire(token)()
			}
		}

		session, err := m.Ensure(ctx, w, r)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to ensure session", logger.Component("session"), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(ctx, session)))

		if !session.Modified() && time.Since(session.UpdatedAt) < m.config.TouchInterval {
			return
		}
		// The request context may already be cancelled by a disconnecting client.
		if err := m.Save(context.WithoutCancel(ctx), session); err != nil {
			m.logger.ErrorContext(ctx, "failed to save session",
				logger.Component("session"),
				logger.SessionID(session.ID),
				logger.Error(err),
			)
		}
	})
}
