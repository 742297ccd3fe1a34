// Package api is a thin JSON client for the optional content backend.
// Every failure maps to domain.ErrBackendUnavailable; callers keep their
// local state and surface a retry instead of breaking.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"ntsync/internal/domain"
	"ntsync/internal/source"
)

const userAgent = "ntsync/1.0"

// Client talks to the REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a backend client. timeout <= 0 falls back to 10s.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// remoteVideo is the backend's wire representation of a library entry.
type remoteVideo struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Duration  int64    `json:"duration"` // seconds
	Thumbnail string   `json:"thumbnail"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	AddedAt   int64    `json:"addedAt"`
}

// Weather is the dashboard's weather snapshot, a small subset of the
// backend's full payload.
type Weather struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
}

// weatherResponse mirrors the backend's weather endpoint.
type weatherResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		Temperature int      `json:"temperature"`
		WeatherDesc []string `json:"weather_descriptions"`
		Humidity    int      `json:"humidity"`
		WindSpeed   int      `json:"wind_speed"`
	} `json:"current"`
}

// FetchLibrary retrieves the remote library content. Entry kinds are
// re-resolved locally from each URL rather than trusted from the wire.
func (c *Client) FetchLibrary(ctx context.Context) ([]domain.VideoEntry, error) {
	body, err := c.get(ctx, "/api/v1/videos", nil)
	if err != nil {
		return nil, err
	}

	var remote []remoteVideo
	if err := json.Unmarshal(body, &remote); err != nil {
		return nil, fmt.Errorf("failed to parse library response: %w", err)
	}

	entries := make([]domain.VideoEntry, 0, len(remote))
	for _, r := range remote {
		entries = append(entries, domain.VideoEntry{
			ID:        r.ID,
			Title:     r.Title,
			SourceURL: r.URL,
			Kind:      source.Classify(r.URL),
			Duration:  time.Duration(r.Duration) * time.Second,
			Thumbnail: r.Thumbnail,
			Category:  r.Category,
			Tags:      r.Tags,
			AddedAt:   r.AddedAt,
		})
	}

	c.logger.Debug("fetched remote library", "count", len(entries))
	return entries, nil
}

// FetchWeather retrieves the current weather for a location.
func (c *Client) FetchWeather(ctx context.Context, location string) (Weather, error) {
	query := url.Values{}
	query.Set("location", location)

	body, err := c.get(ctx, "/api/v1/weather", query)
	if err != nil {
		return Weather{}, err
	}

	var wr weatherResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return Weather{}, fmt.Errorf("failed to parse weather response: %w", err)
	}

	w := Weather{
		Location:    wr.Location.Name,
		Temperature: wr.Current.Temperature,
		Humidity:    wr.Current.Humidity,
		WindSpeed:   wr.Current.WindSpeed,
	}
	if len(wr.Current.WeatherDesc) > 0 {
		w.Description = wr.Current.WeatherDesc[0]
	}
	return w, nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = reqURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("backend request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", "error", err)
		return nil, domain.ErrBackendUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("backend returned error", "status", resp.StatusCode, "url", reqURL)
		return nil, domain.ErrBackendUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
