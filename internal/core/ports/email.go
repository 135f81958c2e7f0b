package ports

import (
	"context"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/message"
)

// EmailService notifies the site admin about new submissions. Callers
// treat failures as best-effort: log and move on.
type EmailService interface {
	NotifyContactMessage(ctx context.Context, m *message.ContactMessage) error
	NotifyReport(ctx context.Context, r *message.Report) error
}
