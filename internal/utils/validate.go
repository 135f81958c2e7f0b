package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/message"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s.-]+$`)
)

// FormValidationResult carries every field problem found in one pass so
// the caller can display all of them at once.
type FormValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

// ValidateEmail checks for a conventional local@domain.tld shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email) && utf8.RuneCountInString(email) <= 254
}

// ValidateName accepts 2-100 characters of letters, spaces, periods and hyphens.
func ValidateName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= 2 && len(trimmed) <= 100 && namePattern.MatchString(trimmed)
}

// ValidateMessage checks a free-text body against [minLength, 5000].
// Lengths count runes, not bytes, so Devanagari text is measured the
// same way SanitizeInput truncates it.
func ValidateMessage(msg string, minLength int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(msg))
	return n >= minLength && n <= maxInputLength
}

// ValidateContactForm checks every field and collects all errors; it
// never short-circuits on the first failure.
func ValidateContactForm(form *message.ContactForm) FormValidationResult {
	errors := make(map[string]string)

	if !ValidateName(form.Name) {
		errors["name"] = "Name must be 2-100 characters and contain only letters, spaces, dots, and hyphens"
	}
	if !ValidateEmail(form.Email) {
		errors["email"] = "Please enter a valid email address"
	}
	subject := utf8.RuneCountInString(strings.TrimSpace(form.Subject))
	if subject < 3 || subject > 200 {
		errors["subject"] = "Subject must be 3-200 characters long"
	}
	if !ValidateMessage(form.Message, 10) {
		errors["message"] = "Message must be 10-5000 characters long"
	}

	return FormValidationResult{IsValid: len(errors) == 0, Errors: errors}
}

// ValidateReportForm checks every field and collects all errors. The
// issue type must be one of the fixed enumerated set.
func ValidateReportForm(form *message.ReportForm) FormValidationResult {
	errors := make(map[string]string)

	if !ValidateName(form.Name) {
		errors["name"] = "Name must be 2-100 characters and contain only letters, spaces, dots, and hyphens"
	}
	if !ValidateEmail(form.Email) {
		errors["email"] = "Please enter a valid email address"
	}
	if !validIssueType(form.IssueType) {
		errors["issue_type"] = "Please select a valid issue type"
	}
	if !ValidateMessage(form.Message, 10) {
		errors["message"] = "Message must be 10-5000 characters long"
	}

	return FormValidationResult{IsValid: len(errors) == 0, Errors: errors}
}

func validIssueType(issueType string) bool {
	for _, t := range message.ValidIssueTypes {
		if issueType == t {
			return true
		}
	}
	return false
}
