package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sadaksathi/backend/internal/domain"
)

// TrafficFeed fetches live per-road traffic levels from an external feed.
// When the feed is unreachable the simulator keeps driving the levels, so a
// dead feed never blanks the map.
type TrafficFeed struct {
	feedURL    string
	httpClient *http.Client
}

// ErrFeedDisabled is returned by Fetch when no feed URL is configured.
var ErrFeedDisabled = errors.New("service: traffic feed not configured")

// NewTrafficFeed creates a traffic feed client. An empty URL disables it.
func NewTrafficFeed(feedURL string) *TrafficFeed {
	return &TrafficFeed{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether a feed URL is configured.
func (f *TrafficFeed) Enabled() bool {
	return f.feedURL != ""
}

type feedEntry struct {
	Road  string `json:"road"`
	Level string `json:"level"`
}

// Fetch retrieves the current feed readings. Entries with unknown levels are
// dropped rather than failing the whole fetch.
func (f *TrafficFeed) Fetch(ctx context.Context) (map[string]domain.TrafficLevel, error) {
	if !f.Enabled() {
		return nil, ErrFeedDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: unexpected status %d", resp.StatusCode)
	}

	var entries []feedEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("feed: failed to decode response: %w", err)
	}

	levels := make(map[string]domain.TrafficLevel, len(entries))
	for _, e := range entries {
		level := domain.TrafficLevel(e.Level)
		if !level.IsValid() {
			continue
		}
		levels[e.Road] = level
	}
	return levels, nil
}
