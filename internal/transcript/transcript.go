// Package transcript extracts YouTube video ids and fetches English
// transcripts from the youtube-transcriptor RapidAPI service.
package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

var (
	// ErrInvalidURL means no known YouTube URL shape matched the input.
	ErrInvalidURL = errors.New("invalid youtube url")
	// ErrNotFound means the provider answered but had no transcript.
	ErrNotFound = errors.New("transcript not found")
	// ErrUpstream means the provider could not be reached or misbehaved
	// at the transport level.
	ErrUpstream = errors.New("transcript provider unavailable")
)

// videoIDPattern covers watch URLs (including extra query params),
// embed/v paths and youtu.be short links, capturing the 11-character
// video id.
var videoIDPattern = regexp.MustCompile(
	`(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`,
)

// ExtractVideoID pulls the 11-character video id out of a user-supplied
// YouTube URL. All supported URL shapes yield the same id for the same
// video.
func ExtractVideoID(rawURL string) (string, error) {
	match := videoIDPattern.FindStringSubmatch(rawURL)
	if len(match) < 2 {
		return "", ErrInvalidURL
	}
	return match[1], nil
}

type Config struct {
	BaseURL      string
	RapidAPIKey  string
	RapidAPIHost string
	Lang         string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// transcriptEntry mirrors one element of the provider's response array.
// Only the concatenated text field is consumed.
type transcriptEntry struct {
	TranscriptionAsText string `json:"transcriptionAsText"`
}

// Fetch retrieves the transcript for videoID as a single text blob.
// One request, no retries.
func (c *Client) Fetch(ctx context.Context, videoID string) (string, error) {
	reqURL := fmt.Sprintf("%s?video_id=%s&lang=%s",
		c.cfg.BaseURL,
		url.QueryEscape(videoID),
		url.QueryEscape(c.cfg.Lang),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request failed: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.cfg.RapidAPIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.RapidAPIHost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrNotFound, resp.StatusCode)
	}

	var entries []transcriptEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", ErrNotFound, err)
	}
	if len(entries) == 0 || entries[0].TranscriptionAsText == "" {
		return "", ErrNotFound
	}
	return entries[0].TranscriptionAsText, nil
}
