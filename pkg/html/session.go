package html

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore supplies the CSRF token emitted by Builder.Token.
type SessionStore interface {
	Token() string
}

// MemorySession keeps a single random token in memory. It is meant for tests,
// CLIs and single process demos; production apps wire their session backend.
type MemorySession struct {
	mu    sync.RWMutex
	token string
}

var _ SessionStore = (*MemorySession)(nil)

// NewMemorySession creates a session with a fresh token.
func NewMemorySession() *MemorySession {
	return &MemorySession{token: uuid.NewString()}
}

// Token returns the current token.
func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Regenerate rotates the token and returns the new value.
func (s *MemorySession) Regenerate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = uuid.NewString()
	return s.token
}

// StaticSession always returns the wrapped token.
type StaticSession string

// Token implements SessionStore.
func (s StaticSession) Token() string {
	return string(s)
}
