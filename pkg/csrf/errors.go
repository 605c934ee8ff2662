package csrf

import "errors"

var (
	ErrEmptySessionKey    = errors.New("csrf.empty_session_key")
	ErrEmptyPostKey       = errors.New("csrf.empty_post_key")
	ErrInvalidTokenLength = errors.New("csrf.invalid_token_length")
	ErrOddTokenLength     = errors.New("csrf.odd_token_length")

	// ErrTokenGeneration indicates the random source failed
	ErrTokenGeneration = errors.New("csrf.token_generation_failed")

	// ErrTokenMismatch is passed to the middleware error handler when a
	// submission carries no token or the wrong one
	ErrTokenMismatch = errors.New("csrf.token_mismatch")

	// ErrMalformedForm is passed to the middleware error handler when the
	// request body cannot be parsed
	ErrMalformedForm = errors.New("csrf.malformed_form")

	// ErrNoSession is passed to the middleware error handler when the
	// request has no session to bind the token to
	ErrNoSession = errors.New("csrf.no_session")

	// ErrNoToken is returned by ContextField when no token is in the context
	ErrNoToken = errors.New("csrf.no_token_in_context")
)
