package session

import (
	"context"
	"encoding/json"
	"time"
)

const flashKeyPrefix = "flash:"

// flashTTL bounds how long an unread flash survives.
const flashTTL = time.Hour

// Flash severity levels, matching the alert classes in the views.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Flash is a one-time notification shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ListCache is the list-shaped subset of the cache client the flash store
// needs. Both operations are atomic on the backing store, so concurrent
// requests on one session never drop or replay a flash.
type ListCache interface {
	ListPush(ctx context.Context, key string, value []byte, ttl time.Duration) error
	ListDrain(ctx context.Context, key string) ([][]byte, error)
}

// FlashStore queues flash messages per session token in a Redis list.
type FlashStore struct {
	cache ListCache
}

// NewFlashStore creates a new flash store.
func NewFlashStore(cache ListCache) *FlashStore {
	return &FlashStore{cache: cache}
}

// Push appends a flash to the session's queue.
func (s *FlashStore) Push(ctx context.Context, token, level, message string) error {
	payload, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return err
	}
	return s.cache.ListPush(ctx, flashKeyPrefix+token, payload, flashTTL)
}

// Pop returns and clears the session's pending flashes in push order. A
// flash is shown exactly once.
func (s *FlashStore) Pop(ctx context.Context, token string) []Flash {
	entries, err := s.cache.ListDrain(ctx, flashKeyPrefix+token)
	if err != nil {
		return nil
	}
	flashes := make([]Flash, 0, len(entries))
	for _, entry := range entries {
		var f Flash
		if json.Unmarshal(entry, &f) == nil {
			flashes = append(flashes, f)
		}
	}
	if len(flashes) == 0 {
		return nil
	}
	return flashes
}
