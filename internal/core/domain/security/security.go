package security

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        uuid.UUID `json:"id" db:"id"`
	EventType EventType `json:"event_type" db:"event_type"`
	ClientID  string    `json:"client_id" db:"client_id"`
	Details   any       `json:"details,omitempty" db:"details"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	UserAgent string    `json:"user_agent" db:"user_agent"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

type EventType string

const (
	EventRateLimitExceeded   EventType = "rate_limit_exceeded"
	EventFormSubmitted       EventType = "form_submitted"
	EventFormSubmissionError EventType = "form_submission_error"
)

// CreateEventRequest represents the request to record a security event
type CreateEventRequest struct {
	EventType EventType `json:"event_type"`
	ClientID  string    `json:"client_id"`
	Details   any       `json:"details,omitempty"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
}

// EventFilter represents filters for querying security events
type EventFilter struct {
	EventType *EventType `json:"event_type,omitempty"`
	ClientID  *string    `json:"client_id,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
