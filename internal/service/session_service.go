package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"meesho-recon/internal/repository"
	"meesho-recon/internal/session"
	"meesho-recon/pkg/logger"
	"meesho-recon/pkg/monitoring"
)

type SessionService interface {
	Create() (*session.Context, error)
	Get(id string) (*session.Context, error)
	Delete(id string) error
	Sweep() int
	StartSweeper(spec string) (*cron.Cron, error)
}

type sessionService struct {
	repo        repository.SessionRepository
	idleTimeout time.Duration
}

func NewSessionService(repo repository.SessionRepository, idleTimeout time.Duration) SessionService {
	return &sessionService{repo: repo, idleTimeout: idleTimeout}
}

func (s *sessionService) Create() (*session.Context, error) {
	sess, err := s.repo.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	monitoring.UpdateActiveSessions(s.repo.Count())
	return sess, nil
}

func (s *sessionService) Get(id string) (*session.Context, error) {
	return s.repo.Get(id)
}

func (s *sessionService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	monitoring.UpdateActiveSessions(s.repo.Count())
	logger.GetLogger().WithField("session_id", id).Info("Session deleted")
	return nil
}

// Sweep evicts sessions idle for longer than the configured timeout.
func (s *sessionService) Sweep() int {
	evicted := s.repo.EvictIdle(s.idleTimeout)
	monitoring.UpdateActiveSessions(s.repo.Count())
	return evicted
}

// StartSweeper schedules Sweep on a cron spec such as "@every 5m".
func (s *sessionService) StartSweeper(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		s.Sweep()
	})
	if err != nil {
		return nil, fmt.Errorf("unable to schedule session sweeper: %w", err)
	}

	c.Start()
	logger.GetLogger().WithFields(map[string]interface{}{
		"spec":         spec,
		"idle_timeout": s.idleTimeout.String(),
	}).Info("Session sweeper started")
	return c, nil
}
