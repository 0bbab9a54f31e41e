package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"study_tracker/internal/domain"
)

// Extractor turns what the inspector sees into a sample. It keeps no state.
type Extractor struct {
	inspector Inspector
	logger    *slog.Logger
}

func NewExtractor(inspector Inspector, logger *slog.Logger) *Extractor {
	return &Extractor{
		inspector: inspector,
		logger:    logger.With("inspector", inspector.ID()),
	}
}

// Extract returns the current sample. It fails with domain.ErrNoActiveMedia
// when nothing is playing or the inspector cannot be reached, and with
// domain.ErrInvalidSample when the player reports unusable values.
func (e *Extractor) Extract(ctx context.Context) (domain.Sample, error) {
	playback, err := e.inspector.Inspect(ctx)
	if err != nil {
		e.logger.Debug("inspect failed", "error", err)
		return domain.Sample{}, fmt.Errorf("%w: %w", domain.ErrNoActiveMedia, err)
	}

	return SampleFrom(playback)
}

// SampleFrom validates a playback snapshot and fills missing metadata.
func SampleFrom(p *domain.Playback) (domain.Sample, error) {
	if p == nil || !p.Playing {
		return domain.Sample{}, domain.ErrNoActiveMedia
	}
	if p.ItemID == "" {
		return domain.Sample{}, fmt.Errorf("%w: empty item id", domain.ErrInvalidSample)
	}
	if math.IsNaN(p.Duration) || math.IsInf(p.Duration, 0) || p.Duration <= 0 {
		return domain.Sample{}, fmt.Errorf("%w: duration %v", domain.ErrInvalidSample, p.Duration)
	}
	if math.IsNaN(p.Position) {
		return domain.Sample{}, fmt.Errorf("%w: position is not a number", domain.ErrInvalidSample)
	}

	sample := domain.Sample{
		ItemID:   p.ItemID,
		Title:    orDefault(p.Title, domain.UnknownTitle),
		Source:   orDefault(p.Source, domain.UnknownChannel),
		Position: math.Min(math.Max(p.Position, 0), p.Duration),
		Duration: p.Duration,
		Locator:  p.Locator,
	}

	return sample, nil
}

func orDefault(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
