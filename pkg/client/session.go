package client

import "sync"

// Session holds the bearer token for the running process. Exactly one
// instance exists, created by the composition root and injected into the
// Client and the TUI. It is written only on login success, explicit logout,
// or 401 detection, and read from command goroutines, so access is guarded.
// The token is never persisted across restarts.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns an empty, unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// SetToken replaces the held token. A non-blank token marks the session
// authenticated.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear erases the token, marking the session unauthenticated.
func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Token returns the current token, possibly empty.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is held. Pure query.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}
