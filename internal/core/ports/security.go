package ports

import (
	"context"
	"time"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/security"
)

// RateLimitRepository provides low-level atomic operations for rate limiting counters.
// It abstracts storage (e.g., Redis). Implementation should be concurrency-safe.
type RateLimitRepository interface {
	// IncrementWindow atomically increments the attempt counter for the
	// identifier+action pair in the current fixed window and ensures the
	// key expires after ttl. Returns the updated count and the window start.
	IncrementWindow(ctx context.Context, identifier, actionType string, window, ttl time.Duration) (count int, windowStart time.Time, err error)
}

// SecurityEventRepository defines the interface for security event storage
type SecurityEventRepository interface {
	Create(ctx context.Context, e *security.Event) error
	List(ctx context.Context, filter *security.EventFilter) ([]*security.Event, error)
	Count(ctx context.Context, filter *security.EventFilter) (int, error)
}

// SecurityService throttles and audits form submissions. Its guard
// operations are deliberately best-effort: a broken counter fails open
// and a failed audit write never disturbs the action being logged.
type SecurityService interface {
	// CheckRateLimit reports whether the client may perform the action.
	// Infrastructure failure returns true (fail-open).
	CheckRateLimit(ctx context.Context, clientID, actionType string) bool
	// LogEvent records a security event, fire-and-forget.
	LogEvent(ctx context.Context, req *security.CreateEventRequest)
	// ListEvents returns recorded events plus the total matching count.
	ListEvents(ctx context.Context, filter *security.EventFilter) ([]*security.Event, int, error)
}
