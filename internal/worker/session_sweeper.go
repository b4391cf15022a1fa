package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionJanitor exposes the cleanup operations the sweeper runs on each tick.
type SessionJanitor interface {
	// PurgeExpiredSessions removes persisted sessions that expired before now.
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	// SweepViewState drops expired in-memory per-session view state.
	SweepViewState() int
}

// SessionSweeper periodically cleans expired sessions and held view state.
type SessionSweeper struct {
	janitor  SessionJanitor
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionSweeper constructs a sweeper. A non-positive interval falls back
// to ten minutes.
func NewSessionSweeper(janitor SessionJanitor, interval time.Duration, logger *slog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SessionSweeper{
		janitor:  janitor,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches the background loop. Calling Start twice is a no-op.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop cancels the loop and waits for it to exit.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *SessionSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	removed, err := s.janitor.PurgeExpiredSessions(ctx, s.now())
	if err != nil {
		s.logger.Error("purge expired sessions failed", slog.String("error", err.Error()))
	}
	views := s.janitor.SweepViewState()
	if removed > 0 || views > 0 {
		s.logger.Info("session sweep completed",
			slog.Int64("sessions", removed),
			slog.Int("views", views),
		)
	}
}
