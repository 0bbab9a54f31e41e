package aggregator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"study_tracker/internal/domain"
)

// maxResponseBytes caps how much of a reply is read.
const maxResponseBytes = 64 << 10

type Config struct {
	URL     string
	Timeout time.Duration
}

// Client posts progress reports to the aggregator. It never retries; the next
// tick's report supersedes a failed one.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:    cfg.URL,
		logger: logger.With("component", "aggregator"),
	}
}

// Submit sends report and decodes the aggregator's response.
func (c *Client) Submit(ctx context.Context, report domain.ProgressReport) (*domain.SyncResponse, error) {
	body, err := json.Marshal(toRequest(report))
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "StudyTracker/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	var syncResp SyncResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&syncResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	c.logger.Debug("report submitted",
		"video_id", report.ItemID,
		"accumulated", report.AccumulatedEngagedSeconds,
		"requires_notification", syncResp.RequiresNotification,
	)

	return &domain.SyncResponse{
		RequiresNotification: syncResp.RequiresNotification,
		Message:              syncResp.Message,
	}, nil
}

func toRequest(r domain.ProgressReport) SyncRequest {
	return SyncRequest{
		VideoID:                 r.ItemID,
		Title:                   r.Title,
		Channel:                 r.Source,
		URL:                     r.Locator,
		TotalDurationSeconds:    r.TotalDurationSeconds,
		LastProgressSeconds:     r.LastProgressSeconds,
		AccumulatedStudySeconds: r.AccumulatedEngagedSeconds,
	}
}
