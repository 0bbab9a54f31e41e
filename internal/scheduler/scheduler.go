package scheduler

import (
	"context"
	"log/slog"
	"time"

	"study_tracker/internal/domain"
)

// Ticker runs one pass of the sampling pipeline. It must return promptly;
// network work belongs in goroutines it starts.
type Ticker interface {
	Tick(ctx context.Context) domain.TickResult
}

type Scheduler struct {
	ticker   Ticker
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(ticker Ticker, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		ticker:   ticker,
		interval: interval,
		logger:   logger,
	}
}

// Start ticks every interval until ctx is cancelled. Ticks never overlap.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-t.C:
			if ctx.Err() != nil {
				continue
			}
			s.runTick(ctx)
		}
	}
}

func (s *Scheduler) runTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tick panicked", "panic", r)
		}
	}()

	s.ticker.Tick(ctx)
}
