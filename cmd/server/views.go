package main

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// layout wraps body in a minimal HTML document.
func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html><head><meta charset="utf-8"><title>`+templ.EscapeString(title)+`</title></head><body>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// formPage renders a form whose hidden field comes from the request context.
func formPage(field templ.Component) templ.Component {
	return layout("Leave a message", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<form method="post" action="/messages">`); err != nil {
			return err
		}
		if err := field.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<input type="text" name="message" /><button type="submit">Send</button></form>`+
			`<form method="post" action="/token/rotate">`)
		if err != nil {
			return err
		}
		if err := field.Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, `<button type="submit">Rotate token</button></form>`)
		return err
	}))
}

func acceptedPage(message string) templ.Component {
	return layout("Message accepted", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p>Accepted: `+templ.EscapeString(message)+`</p><a href="/">Back</a>`)
		return err
	}))
}
