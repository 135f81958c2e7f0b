package message

import (
	"time"

	"github.com/google/uuid"
)

// ContactForm is the inbound contact submission before validation.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ReportForm is the inbound issue report before validation.
type ReportForm struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	IssueType string `json:"issue_type"`
	Message   string `json:"message"`
}

// ValidIssueTypes enumerates the accepted report issue types.
var ValidIssueTypes = []string{"copyright", "bug", "content", "feature", "general", "other"}

// ContactMessage is a stored contact submission.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Report is a stored issue report.
type Report struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IssueType string    `json:"issue_type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitResult is the caller-visible outcome of a submission attempt.
// Validation and throttling failures are outcomes, not errors; only a
// genuine storage failure surfaces as an error from the service.
type SubmitResult struct {
	Accepted    bool              `json:"accepted"`
	RateLimited bool              `json:"rate_limited,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}
