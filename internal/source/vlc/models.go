package vlc

// StatusResponse is the subset of VLC's /requests/status.json the inspector reads.
type StatusResponse struct {
	State       string      `json:"state"`
	Time        float64     `json:"time"`
	Length      float64     `json:"length"`
	Position    float64     `json:"position"`
	Information Information `json:"information"`
}

type Information struct {
	Category Category `json:"category"`
}

type Category struct {
	Meta Meta `json:"meta"`
}

type Meta struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Artist   string `json:"artist"`
	URL      string `json:"url"`
}

const (
	StatePlaying = "playing"
	StatePaused  = "paused"
	StateStopped = "stopped"
)
