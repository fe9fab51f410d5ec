package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const sessionKeyPrefix = "session:"

// TTL is how long a session stays valid without re-login.
const TTL = 7 * 24 * time.Hour

// ErrNoSession is returned when a token does not resolve to a user.
var ErrNoSession = errors.New("no active session")

// Cache is the subset of the cache client the session layer needs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type sessionData struct {
	UserID uint `json:"user_id"`
}

// Store maps opaque session tokens to user ids in Redis. The token carries
// no claims of its own; everything is resolved server-side.
type Store struct {
	cache Cache
}

// NewStore creates a new session store.
func NewStore(cache Cache) *Store {
	return &Store{cache: cache}
}

// Create opens a session for the user and returns its opaque token.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	payload, err := json.Marshal(sessionData{UserID: userID})
	if err != nil {
		return "", fmt.Errorf("marshal session data: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, payload, TTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve returns the user id behind a token, or ErrNoSession.
func (s *Store) Resolve(ctx context.Context, token string) (uint, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil || data == nil {
		return 0, ErrNoSession
	}
	var sess sessionData
	if err := json.Unmarshal(data, &sess); err != nil {
		return 0, ErrNoSession
	}
	return sess.UserID, nil
}

// Delete closes a session unconditionally.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}
