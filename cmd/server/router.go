package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formguard/pkg/csrf"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/requestid"
	"github.com/dmitrymomot/formguard/pkg/session"
)

func newRouter(log *slog.Logger, sessions *session.Manager, guard *csrf.Manager, probes map[string]httpserver.Probe) chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/healthz", httpserver.HealthHandler(log, probes))

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware, guard.Middleware)

		r.Get("/", templ.Handler(formPage(guard.ContextField())).ServeHTTP)
		r.Get("/token", tokenHandler(guard))
		r.Post("/messages", messageHandler(log))
		r.Post("/token/rotate", rotateHandler(log, guard))
	})

	return r
}

// tokenHandler exposes the current token for scripts that submit it via header.
func tokenHandler(guard *csrf.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := csrf.TokenFromContext(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"header": guard.HeaderName(),
			"field":  guard.PostKey(),
			"token":  token,
		})
	}
}

func messageHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		message := r.PostFormValue("message")
		log.InfoContext(r.Context(), "message accepted", logger.Component("messages"), slog.Int("length", len(message)))
		templ.Handler(acceptedPage(message)).ServeHTTP(w, r)
	}
}

// rotateHandler issues a fresh token, e.g. after a privilege change.
func rotateHandler(log *slog.Logger, guard *csrf.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if _, err := guard.Regenerate(sess); err != nil {
			log.ErrorContext(r.Context(), "token rotation failed", logger.Component("csrf"), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
