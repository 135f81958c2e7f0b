package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/security"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
)

// SecurityService implements throttling and audit logging for the form
// submission endpoints with a single static policy.
type SecurityService struct {
	rateLimits  ports.RateLimitRepository
	events      ports.SecurityEventRepository
	maxAttempts int
	window      time.Duration
	logger      *logrus.Logger
}

// SecurityConfig groups configuration parameters for the security service.
type SecurityConfig struct {
	MaxAttempts int
	Window      time.Duration
}

func NewSecurityService(rateLimits ports.RateLimitRepository, events ports.SecurityEventRepository, cfg *SecurityConfig, logger *logrus.Logger) *SecurityService {
	// Apply defaults: 5 attempts per 15-minute window
	ma := 5
	w := 15 * time.Minute
	if cfg != nil {
		if cfg.MaxAttempts > 0 {
			ma = cfg.MaxAttempts
		}
		if cfg.Window > 0 {
			w = cfg.Window
		}
	}
	return &SecurityService{rateLimits: rateLimits, events: events, maxAttempts: ma, window: w, logger: logger}
}

// CheckRateLimit reports whether the client may perform the action.
// The limit is a UX throttle, not a security boundary, so a failing
// counter fails open rather than blocking legitimate users.
func (s *SecurityService) CheckRateLimit(ctx context.Context, clientID, actionType string) bool {
	ttl := s.window * 2 // retain overlap window
	count, _, err := s.rateLimits.IncrementWindow(ctx, clientID, actionType, s.window, ttl)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"client_id": clientID, "action": actionType}).WithError(err).Error("rate limit check failed; allowing (fail-open)")
		}
		return true
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"client_id": clientID, "action": actionType, "count": count, "max": s.maxAttempts}).Debug("rate limit window state")
	}
	return count <= s.maxAttempts
}

// LogEvent records a security event, fire-and-forget. A failed write
// must never affect the outcome of the action being logged.
func (s *SecurityService) LogEvent(ctx context.Context, req *security.CreateEventRequest) {
	e := &security.Event{
		EventType: req.EventType,
		ClientID:  req.ClientID,
		Details:   req.Details,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		Timestamp: time.Now(),
	}
	if err := s.events.Create(ctx, e); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"event_type": req.EventType, "client_id": req.ClientID}).WithError(err).Error("failed to persist security event")
		}
		return
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"event_type": req.EventType, "client_id": req.ClientID}).Debug("security event persisted")
	}
}

// ListEvents returns recorded events plus the total matching count.
func (s *SecurityService) ListEvents(ctx context.Context, filter *security.EventFilter) ([]*security.Event, int, error) {
	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.events.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

var _ ports.SecurityService = (*SecurityService)(nil)
