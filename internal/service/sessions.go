package service

import (
	"context"
	"sync"
	"time"

	"socrates-bot/internal/model"
	"socrates-bot/pkg/logger"

	"go.uber.org/zap"
)

const sweepInterval = time.Minute

// SessionStore holds the open conversational session for each identity.
// One session per identity: putting a new session replaces whatever flow
// was open before.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
	ttl      time.Duration
}

// NewSessionStore creates a store whose sessions expire after ttl of
// inactivity. A zero ttl disables expiry.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*model.Session),
		ttl:      ttl,
	}
}

func (s *SessionStore) Get(telegramID int64) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[telegramID]
}

// Put stores the session and refreshes its idle timestamp. Callers that
// mutate a session in place call Put again to keep it alive.
func (s *SessionStore) Put(telegramID int64, sess *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.UpdatedAt = time.Now()
	s.sessions[telegramID] = sess
}

func (s *SessionStore) Delete(telegramID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, telegramID)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle longer than the TTL and reports how many
// were removed. Abandoned registrations go away here instead of leaking
// for the life of the process.
func (s *SessionStore) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps periodically until the context is cancelled.
func (s *SessionStore) Run(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Sweep(now); n > 0 {
				logger.Logger().Info("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}
