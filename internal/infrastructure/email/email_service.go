package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/message"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
)

// EmailConfig holds email service configuration
type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	AdminEmail     string
	SiteName       string
}

// EmailService notifies the site admin about new form submissions.
type EmailService struct {
	config    *EmailConfig
	logger    *logrus.Logger
	client    *sendgrid.Client
	templates map[string]*template.Template
}

const contactNotificationTemplate = `
<h2>New contact message on {{.SiteName}}</h2>
<p><strong>From:</strong> {{.Name}} ({{.Email}})</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p>{{.Message}}</p>
`

const reportNotificationTemplate = `
<h2>New {{.IssueType}} report on {{.SiteName}}</h2>
<p><strong>From:</strong> {{.Name}} ({{.Email}})</p>
<p>{{.Message}}</p>
`

// NewEmailService creates a new email service instance
func NewEmailService(config *EmailConfig, logger *logrus.Logger) (ports.EmailService, error) {
	client := sendgrid.NewSendClient(config.SendGridAPIKey)

	templates := make(map[string]*template.Template)
	for name, body := range map[string]string{
		"contact_notification": contactNotificationTemplate,
		"report_notification":  reportNotificationTemplate,
	} {
		tmpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &EmailService{
		config:    config,
		logger:    logger,
		client:    client,
		templates: templates,
	}, nil
}

// sendEmail sends an email using SendGrid
func (e *EmailService) sendEmail(to, subject, htmlContent string) error {
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	recipient := mail.NewEmail("", to)

	msg := mail.NewSingleEmail(from, subject, recipient, "", htmlContent)

	response, err := e.client.Send(msg)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
			"error":   err,
		}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"to":          to,
		"subject":     subject,
		"status_code": response.StatusCode,
	}).Info("Email sent successfully")

	return nil
}

// renderTemplate renders an email template with the provided data
func (e *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := e.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

type contactNotificationData struct {
	SiteName string
	Name     string
	Email    string
	Subject  string
	Message  string
}

type reportNotificationData struct {
	SiteName  string
	Name      string
	Email     string
	IssueType string
	Message   string
}

// NotifyContactMessage emails the admin about a new contact submission.
// A missing admin address disables notifications.
func (e *EmailService) NotifyContactMessage(ctx context.Context, m *message.ContactMessage) error {
	if e.config.AdminEmail == "" {
		e.logger.Debug("admin email not configured; skipping contact notification")
		return nil
	}

	data := contactNotificationData{
		SiteName: e.config.SiteName,
		Name:     m.Name,
		Email:    m.Email,
		Subject:  m.Subject,
		Message:  m.Message,
	}

	htmlContent, err := e.renderTemplate("contact_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render contact notification template: %w", err)
	}

	subject := fmt.Sprintf("New Contact Message - %s", e.config.SiteName)

	return e.sendEmail(e.config.AdminEmail, subject, htmlContent)
}

// NotifyReport emails the admin about a new issue report.
func (e *EmailService) NotifyReport(ctx context.Context, r *message.Report) error {
	if e.config.AdminEmail == "" {
		e.logger.Debug("admin email not configured; skipping report notification")
		return nil
	}

	data := reportNotificationData{
		SiteName:  e.config.SiteName,
		Name:      r.Name,
		Email:     r.Email,
		IssueType: r.IssueType,
		Message:   r.Message,
	}

	htmlContent, err := e.renderTemplate("report_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render report notification template: %w", err)
	}

	subject := fmt.Sprintf("New %s Report - %s", r.IssueType, e.config.SiteName)

	return e.sendEmail(e.config.AdminEmail, subject, htmlContent)
}
