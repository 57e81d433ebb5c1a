package auth

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/persistence"
)

// DefaultSweepInterval is how often expired sessions are purged
const DefaultSweepInterval = 15 * time.Minute

// SessionSweeper periodically deletes expired opaque sessions
type SessionSweeper struct {
	sessions     persistence.SessionRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewSessionSweeper(sessions persistence.SessionRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions:     sessions,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SweepOnce deletes every session that expired before now
func (s *SessionSweeper) SweepOnce(ctx context.Context) (int64, error) {
	removed, err := s.sessions.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("Expired sessions removed", map[string]any{"removed": removed})
	}
	return removed, nil
}

// Run sweeps every interval until ctx is cancelled. Sweep failures are logged and the loop continues.
func (s *SessionSweeper) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	s.logger.Info("Session sweeper started", map[string]any{"interval": interval.String()})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session sweeper stopped", nil)
			return nil
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("Session sweep failed", map[string]any{"error": err.Error()})
			}
		}
	}
}
