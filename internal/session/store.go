// Package session persists conversation snapshots between turns. The
// orchestrator itself holds no session storage; this is the caller-side
// glue the HTTP API uses.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"onboarding-chatbot/internal/chatbot"
	"onboarding-chatbot/internal/common/database"
)

// ErrNotFound is returned when no snapshot exists for the session ID.
var ErrNotFound = errors.New("session not found")

// Store persists conversation snapshots keyed by session ID.
type Store interface {
	Load(ctx context.Context, sessionID string) (*chatbot.State, error)
	Save(ctx context.Context, sessionID string, state *chatbot.State) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps JSON-serialized snapshots in Redis with a TTL, so
// abandoned conversations expire on their own.
type RedisStore struct {
	client    *database.RedisClient
	keyPrefix string
	ttl       time.Duration
}

func NewRedisStore(client *database.RedisClient, keyPrefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*chatbot.State, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var state chatbot.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state *chatbot.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), raw, s.ttl); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

func (s *RedisStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}
