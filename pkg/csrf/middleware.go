package csrf

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/formguard/pkg/session"
)

const maxMultipartMemory = 32 << 20

// SessionResolver returns the session a request's token is bound to.
type SessionResolver func(r *http.Request) (SessionStore, bool)

// Middleware guards unsafe methods. For every request it makes sure the
// session has a token and exposes it through TokenFromContext. POST, PUT,
// PATCH, DELETE and other non-safe methods must carry the token in the
// PostKey form field or, failing that, in the HeaderName header.
//
// It has to run inside session.Manager.Middleware (or with a custom
// WithSessionResolver) so that a regenerated token gets saved.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := m.resolve(r)
		if !ok {
			m.errorHandler(w, r, ErrNoSession)
			return
		}

		token, err := m.Token(sess)
		if err != nil {
			m.errorHandler(w, r, err)
			return
		}

		if !isSafeMethod(r.Method) {
			form, err := m.submitted(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}
			valid, err := m.Check(sess, form)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}
			if !valid {
				m.errorHandler(w, r, ErrTokenMismatch)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(WithToken(r.Context(), token)))
	})
}

// submitted returns the form values to check. The header is only consulted
// when the body has no PostKey field, so an explicit form value wins.
// A body that cannot be parsed is reported as ErrMalformedForm and the
// session token is left alone.
func (m *Manager) submitted(r *http.Request) (Form, error) {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxMultipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, errors.Join(ErrMalformedForm, err)
	}

	if r.PostForm.Has(m.config.PostKey) || m.config.HeaderName == "" {
		return r.PostForm, nil
	}
	if v := r.Header.Get(m.config.HeaderName); v != "" {
		return url.Values{m.config.PostKey: {v}}, nil
	}
	return r.PostForm, nil
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func sessionFromContext(r *http.Request) (SessionStore, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return nil, false
	}
	return sess, true
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrTokenMismatch):
		status = http.StatusForbidden
	case errors.Is(err, ErrMalformedForm):
		status = http.StatusBadRequest
	}
	http.Error(w, http.StatusText(status), status)
}
