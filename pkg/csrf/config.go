package csrf

import "fmt"

// Config holds token manager configuration
type Config struct {
	// SessionKey is the session entry holding the current token
	SessionKey string `env:"CSRF_SESSION_KEY" envDefault:"__csrf"`

	// PostKey is the form field carrying the token back
	PostKey string `env:"CSRF_POST_KEY" envDefault:"__csrf"`

	// TokenLength is the number of hex characters in a token; must be even
	TokenLength int `env:"CSRF_TOKEN_LENGTH" envDefault:"128"`

	// HeaderName is read by Middleware when the form has no PostKey field
	HeaderName string `env:"CSRF_HEADER_NAME" envDefault:"X-CSRF-Token"`
}

// DefaultConfig returns default token manager configuration
func DefaultConfig() Config {
	return Config{
		SessionKey:  "__csrf",
		PostKey:     "__csrf",
		TokenLength: 128,
		HeaderName:  "X-CSRF-Token",
	}
}

// Validate reports the first configuration problem.
func (c Config) Validate() error {
	switch {
	case c.SessionKey == "":
		return ErrEmptySessionKey
	case c.PostKey == "":
		return ErrEmptyPostKey
	case c.TokenLength <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidTokenLength, c.TokenLength)
	case c.TokenLength%2 != 0:
		// Hex encoding yields two characters per byte.
		return fmt.Errorf("%w: %d", ErrOddTokenLength, c.TokenLength)
	}
	return nil
}

// NewFromConfig creates a new Manager from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
