package memory

import (
	"context"
	"sync"

	"quizbot/internal/domain"
)

// SessionStore is an in-process implementation of repository.SessionRepository
// for single-instance deployments and tests.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]string),
	}
}

func (s *SessionStore) Set(_ context.Context, userID, question string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = question
	return nil
}

func (s *SessionStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	question, ok := s.sessions[userID]
	if !ok {
		return "", domain.ErrNoActiveSession
	}
	return question, nil
}

func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
