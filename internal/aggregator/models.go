package aggregator

// SyncRequest is the wire form of a progress report.
type SyncRequest struct {
	VideoID                 string  `json:"videoId"`
	Title                   string  `json:"title"`
	Channel                 string  `json:"channel"`
	URL                     string  `json:"url,omitempty"`
	TotalDurationSeconds    float64 `json:"totalDurationSeconds"`
	LastProgressSeconds     float64 `json:"lastProgressSeconds"`
	AccumulatedStudySeconds float64 `json:"accumulatedStudySeconds"`
}

type SyncResponse struct {
	RequiresNotification bool   `json:"requiresNotification"`
	Message              string `json:"message"`
}
