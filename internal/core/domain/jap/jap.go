package jap

import "time"

// InfiniteTarget marks a session with no completion target.
const InfiniteTarget = -1

// Session is one client's chant-counter state. It lives in the
// persistent local store keyed by client, never in the database.
type Session struct {
	Mantra      string    `json:"mantra"`
	Count       int       `json:"count"`
	Target      int       `json:"target"`
	StartedAt   time.Time `json:"started_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// Completed reports whether the session reached a finite target.
func (s *Session) Completed() bool {
	return s.Target > 0 && s.Count >= s.Target
}
