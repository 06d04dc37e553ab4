package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUpstream means the generative-text service failed at the transport
// or protocol level.
var ErrUpstream = errors.New("summarization service unavailable")

// FallbackSummary is returned when the service answers successfully but
// produces no text.
const FallbackSummary = "No summary generated."

type GenerateConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// GeminiClient talks to a Gemini-style generateContent endpoint.
type GeminiClient struct {
	httpClient *http.Client
}

func NewGeminiClient() *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// SummarizeTranscript sends the transcript with a fixed instruction and
// returns the generated bullet-point summary. One request, no
// streaming. Long transcripts are sent as-is; no chunking or
// truncation is applied.
func (c *GeminiClient) SummarizeTranscript(ctx context.Context, cfg GenerateConfig, transcriptText string) (string, error) {
	prompt := transcriptText + " Summarise into points."

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generate request failed: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(cfg.BaseURL, "/"), cfg.Model, cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("build generate request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(raw))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", ErrUpstream, err)
	}

	var out strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			out.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return FallbackSummary, nil
	}
	return text, nil
}
