package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quizbot/internal/domain"
)

const keyPrefix = "quiz:session:"

// SessionStore keeps user sessions in Redis so multiple bot instances can
// share state. Values are plain question texts, one key per user, no TTL.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a session store on top of an existing client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Set(ctx context.Context, userID, question string) error {
	if err := s.client.Set(ctx, key(userID), question, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, userID string) (string, error) {
	question, err := s.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNoActiveSession
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return question, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func key(userID string) string {
	return keyPrefix + userID
}
