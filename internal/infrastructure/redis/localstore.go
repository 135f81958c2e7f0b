package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/ports"
)

// localEntry is the stored blob. The age is judged against StoredAt at
// read time; no TTL is written with the entry.
type localEntry struct {
	Value    json.RawMessage `json:"value"`
	StoredAt time.Time       `json:"stored_at"`
}

// LocalStore implements ports.LocalStore on Redis. Entries carry their
// write timestamp and each reader applies its own max age, so one blob
// can serve callers with different freshness requirements.
type LocalStore struct {
	r      redis.Cmdable
	prefix string
	logger *logrus.Logger
}

// NewLocalStore creates a Redis-backed local store.
func NewLocalStore(r redis.Cmdable, prefix string, logger *logrus.Logger) *LocalStore {
	return &LocalStore{r: r, prefix: prefix, logger: logger}
}

func (s *LocalStore) namespaced(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

// Set implements LocalStore.Set.
func (s *LocalStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		s.warn(key, err, "local store: failed to marshal value")
		return err
	}
	blob, err := json.Marshal(localEntry{Value: raw, StoredAt: time.Now()})
	if err != nil {
		s.warn(key, err, "local store: failed to marshal entry")
		return err
	}
	if err := s.r.Set(ctx, s.namespaced(key), blob, 0).Err(); err != nil {
		s.warn(key, err, "local store: failed to write entry")
		return err
	}
	return nil
}

// Get implements LocalStore.Get. Corruption and storage errors are
// reported as a miss; an age-expired entry is removed.
func (s *LocalStore) Get(ctx context.Context, key string, maxAge time.Duration, dest any) (bool, error) {
	ns := s.namespaced(key)
	blob, err := s.r.Get(ctx, ns).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		s.warn(key, err, "local store: failed to read entry")
		return false, nil
	}

	var e localEntry
	if err := json.Unmarshal(blob, &e); err != nil {
		s.warn(key, err, "local store: corrupt entry")
		return false, nil
	}
	if time.Since(e.StoredAt) > maxAge {
		_ = s.r.Del(ctx, ns).Err()
		return false, nil
	}
	if err := json.Unmarshal(e.Value, dest); err != nil {
		s.warn(key, err, "local store: value does not match requested shape")
		return false, nil
	}
	return true, nil
}

// Remove implements LocalStore.Remove.
func (s *LocalStore) Remove(ctx context.Context, key string) error {
	return s.r.Del(ctx, s.namespaced(key)).Err()
}

func (s *LocalStore) warn(key string, err error, msg string) {
	if s.logger != nil {
		s.logger.WithField("key", key).WithError(err).Warn(msg)
	}
}

var _ ports.LocalStore = (*LocalStore)(nil)
