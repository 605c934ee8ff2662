package csrf

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTML returns the hidden input carrying the session token:
//
//	<input type="hidden" name="__csrf" value="..." />
//
// Field name and value are attribute-escaped.
func (m *Manager) HTML(s SessionStore) (string, error) {
	token, err := m.Token(s)
	if err != nil {
		return "", err
	}
	return hiddenInput(m.config.PostKey, token), nil
}

// Field renders the same markup as HTML as a templ component.
func (m *Manager) Field(s SessionStore) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		markup, err := m.HTML(s)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, markup)
		return err
	})
}

// ContextField renders the hidden input for the token that Middleware put in
// the render context. It fails with ErrNoToken outside Middleware.
func (m *Manager) ContextField() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		token, ok := TokenFromContext(ctx)
		if !ok {
			return ErrNoToken
		}
		_, err := io.WriteString(w, hiddenInput(m.config.PostKey, token))
		return err
	})
}

func hiddenInput(name, value string) string {
	return `<input type="hidden" name="` + templ.EscapeString(name) + `" value="` + templ.EscapeString(value) + `" />`
}
