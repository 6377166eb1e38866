package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/session"
	"meesho-recon/pkg/logger"
)

type SessionRepository interface {
	Create() (*session.Context, error)
	Get(id string) (*session.Context, error)
	Delete(id string) error
	EvictIdle(maxIdle time.Duration) int
	Count() int
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session.Context
	now      func() time.Time
}

// NewSessionRepository keeps sessions in process memory. Nothing survives a restart.
func NewSessionRepository() SessionRepository {
	return newSessionRepository(time.Now)
}

func newSessionRepository(now func() time.Time) *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*session.Context),
		now:      now,
	}
}

func (r *sessionRepository) Create() (*session.Context, error) {
	id := uuid.New().String()
	sess := session.New(id, r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[id]; exists {
		return nil, fmt.Errorf("session id collision: %s", id)
	}
	r.sessions[id] = sess

	logger.GetLogger().WithField("session_id", id).Info("Session created")
	return sess, nil
}

// Get returns the session and marks it as used.
func (r *sessionRepository) Get(id string) (*session.Context, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	sess.Touch(r.now())
	return sess, nil
}

func (r *sessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// EvictIdle removes sessions unused for longer than maxIdle and returns how many.
func (r *sessionRepository) EvictIdle(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, sess := range r.sessions {
		if sess.LastAccess().Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		logger.GetLogger().WithFields(map[string]interface{}{
			"evicted":   evicted,
			"remaining": len(r.sessions),
		}).Info("Idle sessions evicted")
	}
	return evicted
}

func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
