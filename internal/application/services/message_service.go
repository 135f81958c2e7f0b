package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/message"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/security"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/utils"
)

// Action types used as rate-limit buckets.
const (
	ActionContactForm = "contact_form"
	ActionReportForm  = "report_form"
)

// MessageService guards the submission endpoints: validate (collecting
// every field error), throttle, sanitize, store, audit. Only a genuine
// storage failure surfaces as an error; everything else is an outcome.
type MessageService struct {
	repo     ports.MessageRepository
	security ports.SecurityService
	email    ports.EmailService
	logger   *logrus.Logger
}

func NewMessageService(repo ports.MessageRepository, securitySvc ports.SecurityService, emailSvc ports.EmailService, logger *logrus.Logger) *MessageService {
	return &MessageService{
		repo:     repo,
		security: securitySvc,
		email:    emailSvc,
		logger:   logger,
	}
}

// SubmitContact processes one contact form submission.
func (s *MessageService) SubmitContact(ctx context.Context, meta *ports.ClientMeta, form *message.ContactForm) (*message.SubmitResult, error) {
	if v := utils.ValidateContactForm(form); !v.IsValid {
		return &message.SubmitResult{Errors: v.Errors}, nil
	}

	if !s.security.CheckRateLimit(ctx, meta.ClientID, ActionContactForm) {
		s.security.LogEvent(ctx, s.eventRequest(meta, security.EventRateLimitExceeded, map[string]any{"action": ActionContactForm}))
		return &message.SubmitResult{RateLimited: true}, nil
	}

	m := &message.ContactMessage{
		Name:    utils.SanitizeInput(form.Name),
		Email:   utils.SanitizeInput(form.Email),
		Subject: utils.SanitizeInput(form.Subject),
		Message: utils.SanitizeInput(form.Message),
	}

	if err := s.repo.InsertContact(ctx, m); err != nil {
		s.security.LogEvent(ctx, s.eventRequest(meta, security.EventFormSubmissionError, map[string]any{
			"type":  ActionContactForm,
			"error": err.Error(),
		}))
		return nil, err
	}

	s.security.LogEvent(ctx, s.eventRequest(meta, security.EventFormSubmitted, map[string]any{
		"type":  ActionContactForm,
		"email": maskEmail(m.Email),
	}))
	s.notify(func() error { return s.email.NotifyContactMessage(ctx, m) })

	return &message.SubmitResult{Accepted: true}, nil
}

// SubmitReport processes one issue report submission.
func (s *MessageService) SubmitReport(ctx context.Context, meta *ports.ClientMeta, form *message.ReportForm) (*message.SubmitResult, error) {
	if v := utils.ValidateReportForm(form); !v.IsValid {
		return &message.SubmitResult{Errors: v.Errors}, nil
	}

	if !s.security.CheckRateLimit(ctx, meta.ClientID, ActionReportForm) {
		s.security.LogEvent(ctx, s.eventRequest(meta, security.EventRateLimitExceeded, map[string]any{"action": ActionReportForm}))
		return &message.SubmitResult{RateLimited: true}, nil
	}

	r := &message.Report{
		Name:      utils.SanitizeInput(form.Name),
		Email:     utils.SanitizeInput(form.Email),
		IssueType: form.IssueType, // enum-checked, not free text
		Message:   utils.SanitizeInput(form.Message),
	}

	if err := s.repo.InsertReport(ctx, r); err != nil {
		s.security.LogEvent(ctx, s.eventRequest(meta, security.EventFormSubmissionError, map[string]any{
			"type":  ActionReportForm,
			"error": err.Error(),
		}))
		return nil, err
	}

	s.security.LogEvent(ctx, s.eventRequest(meta, security.EventFormSubmitted, map[string]any{
		"type":       ActionReportForm,
		"issue_type": r.IssueType,
		"email":      maskEmail(r.Email),
	}))
	s.notify(func() error { return s.email.NotifyReport(ctx, r) })

	return &message.SubmitResult{Accepted: true}, nil
}

func (s *MessageService) eventRequest(meta *ports.ClientMeta, eventType security.EventType, details map[string]any) *security.CreateEventRequest {
	return &security.CreateEventRequest{
		EventType: eventType,
		ClientID:  meta.ClientID,
		Details:   details,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
}

// notify sends the admin notification best-effort.
func (s *MessageService) notify(send func() error) {
	if s.email == nil {
		return
	}
	if err := send(); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("failed to send submission notification")
	}
}

// maskEmail keeps a short prefix of the local part for audit trails
// while hiding the rest of the address, including the domain.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		at = len(email)
	}
	keep := at / 2
	if keep > 3 {
		keep = 3
	}
	return email[:keep] + "***"
}

var _ ports.MessageService = (*MessageService)(nil)
