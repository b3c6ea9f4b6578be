package media

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper runs the age-based retention sweep on a fixed schedule. It is a
// cancellable periodic task: Run blocks until ctx is done, and RunOnce lets
// tests execute exactly one pass deterministically.
type Sweeper struct {
	svc       *Service
	logger    *zap.SugaredLogger
	Interval  time.Duration
	Retention time.Duration
}

func NewSweeper(svc *Service, logger *zap.SugaredLogger) *Sweeper {
	return &Sweeper{
		svc:       svc,
		logger:    logger,
		Interval:  time.Hour,
		Retention: DefaultRetention,
	}
}

// Run fires the sweep every Interval until ctx is cancelled. Failures are
// logged and the schedule keeps going; the next pass retries the same
// predicate anyway.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("media sweeper stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single sweep pass.
func (s *Sweeper) RunOnce(ctx context.Context) {
	deleted, err := s.svc.SweepExpired(ctx, s.Retention)
	if err != nil {
		s.logger.Warnw("media sweep failed", "err", err)
		return
	}
	s.logger.Infow("media sweep complete", "deleted", deleted)
}
