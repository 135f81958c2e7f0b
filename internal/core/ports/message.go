package ports

import (
	"context"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/message"
)

// MessageRepository defines the insert-only interface for form
// submissions. Submissions bypass the cache by design.
type MessageRepository interface {
	InsertContact(ctx context.Context, m *message.ContactMessage) error
	InsertReport(ctx context.Context, r *message.Report) error
}

// MessageService guards the submission endpoints: validate, throttle,
// sanitize, store, audit. The request metadata carries the client
// fingerprint and the signals used for audit records.
type MessageService interface {
	SubmitContact(ctx context.Context, meta *ClientMeta, form *message.ContactForm) (*message.SubmitResult, error)
	SubmitReport(ctx context.Context, meta *ClientMeta, form *message.ReportForm) (*message.SubmitResult, error)
}

// ClientMeta carries per-request client signals through the service
// layer. ClientID is the coarse fingerprint used for throttling.
type ClientMeta struct {
	ClientID  string
	IPAddress string
	UserAgent string
}
