package domain

import "time"

const (
	UnknownTitle   = "Unknown Title"
	UnknownChannel = "Unknown Channel"
)

// Playback is what the media inspector sees on the player right now.
// Title and Source are nil when the player exposes no such metadata.
type Playback struct {
	ItemID   string
	Title    *string
	Source   *string
	Position float64
	Duration float64
	Playing  bool
	Locator  string
}

// Sample is one observation of the playing item, taken on a tick.
type Sample struct {
	ItemID   string
	Title    string
	Source   string
	Position float64
	Duration float64
	Locator  string
}

// ReconciliationState is the baseline the next sample is compared against.
// LastPosition == 0 means nothing has been sampled yet.
type ReconciliationState struct {
	LastPosition  float64
	LastTimestamp time.Time
}

type ProgressReport struct {
	ItemID                    string
	Title                     string
	Source                    string
	Locator                   string
	TotalDurationSeconds      float64
	LastProgressSeconds       float64
	AccumulatedEngagedSeconds float64
}

// SyncResponse is the aggregator's verdict on a report.
type SyncResponse struct {
	RequiresNotification bool
	Message              string
}
