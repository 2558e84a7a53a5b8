// FilePath: internal/session/session.memory.go
package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process memory. It is the fallback when no
// Redis host is configured and the test double for everything auth-related.
// Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return &Session{}, nil
	}
	out := sess
	return &out, nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = *sess
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
