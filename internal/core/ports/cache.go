package ports

import (
	"context"
	"time"
)

// Cache is an in-process memoization layer with per-entry expiry.
// Expiry is an eviction policy, not a refresh policy: a miss never
// triggers a load; callers decide whether to repopulate.
type Cache interface {
	// Get returns the stored value for key. ok=false if absent or expired;
	// an expired entry is evicted by the read that discovers it.
	Get(key string) (value any, ok bool)
	// Set stores value under key with the given TTL, overwriting any
	// existing entry. ttl<=0 applies the cache's default TTL.
	Set(key string, value any, ttl time.Duration)
	// Has reports whether Get would return a value.
	Has(key string) bool
	// Delete removes the key; absence is not an error.
	Delete(key string)
	// Clear removes all entries.
	Clear()
}

// LocalStore persists small per-client blobs across restarts. Freshness
// is a read-time decision: the same stored blob can serve callers with
// different max-age requirements. Implementations should degrade
// gracefully so callers can treat any failure as a miss.
type LocalStore interface {
	// Set serializes value under key with the current timestamp.
	Set(ctx context.Context, key string, value any) error
	// Get deserializes the entry into dest when it is younger than maxAge.
	// ok=false on absence, corruption, or age expiry; an age-expired entry
	// is removed by the read that discovers it.
	Get(ctx context.Context, key string, maxAge time.Duration, dest any) (ok bool, err error)
	// Remove deletes the entry; absence is not an error.
	Remove(ctx context.Context, key string) error
}
