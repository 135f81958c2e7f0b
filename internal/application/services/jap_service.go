package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/jap"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
)

// JapService manages per-client chant-counter sessions in the local
// store. Sessions are client-side state promoted server-side; losing
// one to a storage hiccup is acceptable, corrupting a request is not.
type JapService struct {
	store  ports.LocalStore
	maxAge time.Duration
	logger *logrus.Logger
}

func NewJapService(store ports.LocalStore, maxAge time.Duration, logger *logrus.Logger) *JapService {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &JapService{store: store, maxAge: maxAge, logger: logger}
}

func japSessionKey(clientID string) string {
	return "jap_session_" + clientID
}

// Start begins a fresh session, replacing any existing one.
func (s *JapService) Start(ctx context.Context, clientID, mantraText string, target int) (*jap.Session, error) {
	if mantraText == "" {
		return nil, fmt.Errorf("mantra is required")
	}
	if target == 0 || target < jap.InfiniteTarget {
		return nil, fmt.Errorf("target must be positive or infinite")
	}

	now := time.Now()
	session := &jap.Session{
		Mantra:      mantraText,
		Target:      target,
		StartedAt:   now,
		LastUpdated: now,
	}
	if err := s.store.Set(ctx, japSessionKey(clientID), session); err != nil && s.logger != nil {
		s.logger.WithField("client_id", clientID).WithError(err).Warn("jap: failed to persist session")
	}
	return session, nil
}

// Increment advances the counter by one. Returns ErrNotFound when the
// client has no readable session.
func (s *JapService) Increment(ctx context.Context, clientID string) (*jap.Session, error) {
	session, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ports.ErrNotFound
	}

	session.Count++
	session.LastUpdated = time.Now()
	if err := s.store.Set(ctx, japSessionKey(clientID), session); err != nil && s.logger != nil {
		s.logger.WithField("client_id", clientID).WithError(err).Warn("jap: failed to persist session")
	}
	return session, nil
}

// Get returns the client's session, or (nil, nil) when absent or stale.
func (s *JapService) Get(ctx context.Context, clientID string) (*jap.Session, error) {
	var session jap.Session
	ok, err := s.store.Get(ctx, japSessionKey(clientID), s.maxAge, &session)
	if err != nil || !ok {
		return nil, nil
	}
	return &session, nil
}

// Reset discards the client's session.
func (s *JapService) Reset(ctx context.Context, clientID string) error {
	return s.store.Remove(ctx, japSessionKey(clientID))
}

var _ ports.JapService = (*JapService)(nil)
