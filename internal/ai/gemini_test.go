package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) GenerateConfig {
	return GenerateConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
	}
}

func TestSummarizeTranscript_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-1.5-flash:generateContent"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "some transcript Summarise into points.", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"- point one\n- point two"}]}}]}`))
	}))
	defer server.Close()

	summary, err := NewGeminiClient().SummarizeTranscript(context.Background(), testConfig(server.URL), "some transcript")
	require.NoError(t, err)
	assert.Equal(t, "- point one\n- point two", summary)
}

func TestSummarizeTranscript_NoTextFallsBack(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	summary, err := NewGeminiClient().SummarizeTranscript(context.Background(), testConfig(server.URL), "some transcript")
	require.NoError(t, err)
	assert.Equal(t, FallbackSummary, summary)
}

func TestSummarizeTranscript_ErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewGeminiClient().SummarizeTranscript(context.Background(), testConfig(server.URL), "some transcript")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSummarizeTranscript_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewGeminiClient().SummarizeTranscript(context.Background(), testConfig(server.URL), "some transcript")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSummarizeTranscript_MultiPartTextIsJoined(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"- a"},{"text":"\n- b"}]}}]}`))
	}))
	defer server.Close()

	summary, err := NewGeminiClient().SummarizeTranscript(context.Background(), testConfig(server.URL), "some transcript")
	require.NoError(t, err)
	assert.Equal(t, "- a\n- b", summary)
}
