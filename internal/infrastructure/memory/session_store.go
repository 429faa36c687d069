package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/commercekit/klarna-payments/internal/application/session"
)

// SessionStore keeps checkout sessions and authorization tokens in memory,
// keyed by basket id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Record
	auth     map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session.Record),
		auth:     make(map[string]string),
	}
}

func (s *SessionStore) Load(ctx context.Context, basketID string) (*session.Record, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[basketID]
	if !ok {
		return nil, session.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (s *SessionStore) Save(ctx context.Context, rec *session.Record) error {
	_ = ctx
	if rec == nil || rec.BasketID == "" {
		return fmt.Errorf("session store: basket id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *rec
	s.sessions[rec.BasketID] = &clone
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, basketID string) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, basketID)
	delete(s.auth, basketID)
	return nil
}

func (s *SessionStore) SaveAuth(ctx context.Context, basketID, token string) error {
	_ = ctx
	if basketID == "" {
		return fmt.Errorf("session store: basket id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.auth[basketID] = token
	return nil
}

func (s *SessionStore) LoadAuth(ctx context.Context, basketID string) (string, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.auth[basketID]
	if !ok || token == "" {
		return "", session.ErrAuthNotFound
	}
	return token, nil
}
