package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/message"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/db"
)

// MessageRepository implements the message repository interface
type MessageRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(database *db.Database, logger *logrus.Logger) ports.MessageRepository {
	return &MessageRepository{
		db:     database,
		logger: logger,
	}
}

// InsertContact stores a contact submission.
func (r *MessageRepository) InsertContact(ctx context.Context, m *message.ContactMessage) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query, m.ID, m.Name, m.Email, m.Subject, m.Message, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	if r.logger != nil {
		r.logger.WithField("id", m.ID).Debug("db: contact message inserted")
	}
	return nil
}

// InsertReport stores an issue report.
func (r *MessageRepository) InsertReport(ctx context.Context, rep *message.Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO reports (id, name, email, issue_type, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query, rep.ID, rep.Name, rep.Email, rep.IssueType, rep.Message, rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"id": rep.ID, "issue_type": rep.IssueType}).Debug("db: report inserted")
	}
	return nil
}
