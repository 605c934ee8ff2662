package session

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state of one client, addressed by Token.
type Session struct {
	ID        uuid.UUID         `json:"id"`
	Token     string            `json:"token"`
	Values    map[string]string `json:"values,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	ExpiresAt time.Time         `json:"expires_at"`

	modified bool
}

// NewSession creates an empty session expiring after ttl.
func NewSession(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Token:     token,
		Values:    make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
		modified:  true,
	}
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (string, bool) {
	if s == nil || s.Values == nil {
		return "", false
	}
	v, ok := s.Values[key]
	return v, ok
}

// Set stores value under key. Writing the value already present is a no-op
// and does not mark the session modified.
func (s *Session) Set(key, value string) {
	if s == nil {
		return
	}
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	if old, ok := s.Values[key]; ok && old == value {
		return
	}
	s.Values[key] = value
	s.modified = true
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if s == nil || s.Values == nil {
		return
	}
	if _, ok := s.Values[key]; !ok {
		return
	}
	delete(s.Values, key)
	s.modified = true
}

// Modified reports whether values changed since the session was loaded or saved.
func (s *Session) Modified() bool {
	return s != nil && s.modified
}

// IsExpired returns true if the session has expired
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// clone returns a deep copy so stores never share maps with callers.
func (s *Session) clone() *Session {
	c := *s
	c.Values = maps.Clone(s.Values)
	c.modified = false
	return &c
}
