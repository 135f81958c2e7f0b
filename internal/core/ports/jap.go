package ports

import (
	"context"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/jap"
)

// JapService manages per-client chant-counter sessions persisted in the
// local store. Get returns (nil, nil) when the client has no readable
// session; Increment returns ErrNotFound in that case.
type JapService interface {
	Start(ctx context.Context, clientID, mantraText string, target int) (*jap.Session, error)
	Increment(ctx context.Context, clientID string) (*jap.Session, error)
	Get(ctx context.Context, clientID string) (*jap.Session, error)
	Reset(ctx context.Context, clientID string) error
}
