package domain

import "time"

// TickResult holds what a single tick did. Invalid marks a tick where media
// was reported but its values were unusable.
type TickResult struct {
	Sampled  bool
	Invalid  bool
	First    bool
	Accepted bool
	Credited float64
	Elapsed  time.Duration
	Report   *ProgressReport
}
