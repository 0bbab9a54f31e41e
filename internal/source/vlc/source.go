package vlc

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"study_tracker/internal/domain"
)

const (
	SourceID   = "vlc"
	SourceName = "VLC media player"

	statusPath = "/requests/status.json"
)

// Config holds VLC inspector configuration.
type Config struct {
	BaseURL  string
	Password string
	Timeout  time.Duration
}

// Source inspects a VLC instance through its HTTP interface.
type Source struct {
	httpClient *http.Client
	statusURL  string
	password   string
	logger     *slog.Logger
}

// New creates a new VLC source.
func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		statusURL: strings.TrimRight(cfg.BaseURL, "/") + statusPath,
		password:  cfg.Password,
		logger:    logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// Inspect returns the player's current playback, or nil when nothing is loaded.
func (s *Source) Inspect(ctx context.Context) (*domain.Playback, error) {
	status, err := s.doRequest(ctx)
	if err != nil {
		return nil, err
	}

	playback := s.transform(status)
	if playback != nil {
		s.logger.Debug("inspected player",
			"item_id", playback.ItemID,
			"state", status.State,
			"position", playback.Position,
			"duration", playback.Duration,
		)
	}

	return playback, nil
}

func (s *Source) doRequest(ctx context.Context) (*StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.statusURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "StudyTracker/1.0")
	if s.password != "" {
		req.SetBasicAuth("", s.password)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	return &status, nil
}

func (s *Source) transform(status *StatusResponse) *domain.Playback {
	if status.State == StateStopped {
		return nil
	}

	meta := status.Information.Category.Meta

	itemID, locator := identify(meta)
	if itemID == "" {
		return nil
	}

	// time is whole seconds; position is the fraction played and is finer.
	position := status.Time
	if status.Position > 0 && status.Length > 0 {
		position = status.Position * status.Length
	}

	playback := &domain.Playback{
		ItemID:   itemID,
		Position: position,
		Duration: status.Length,
		Playing:  status.State == StatePlaying,
		Locator:  locator,
	}

	if title := strings.TrimSpace(meta.Title); title != "" {
		playback.Title = &title
	}
	if artist := strings.TrimSpace(meta.Artist); artist != "" {
		playback.Source = &artist
	}

	return playback
}

// identify derives a stable item id and a link back to the content.
// Streams carry their origin in meta.url; local files only have a filename.
func identify(meta Meta) (itemID, locator string) {
	if meta.URL != "" {
		return meta.URL, meta.URL
	}
	if meta.Filename == "" {
		return "", ""
	}
	u := url.URL{Scheme: "file", Path: path.Clean("/" + meta.Filename)}
	return meta.Filename, u.String()
}
