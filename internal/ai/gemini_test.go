package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"liftai/coach-app/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewGeminiClient(config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash-001",
		BaseURL: server.URL,
	}, zerolog.Nop())
	return client, server
}

func TestGenerateReturnsFirstCandidateText(t *testing.T) {
	var gotPath, gotKey string
	var gotPayload geminiPayload

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		resp := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{
					map[string]any{"text": `{"schedule": []}`},
				}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	out, err := client.Generate(context.Background(), "build me a plan")

	require.NoError(t, err)
	assert.Equal(t, `{"schedule": []}`, out)
	assert.Equal(t, "/gemini-2.0-flash-001:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotPayload.Contents, 1)
	require.Len(t, gotPayload.Contents[0].Parts, 1)
	assert.Equal(t, "build me a plan", gotPayload.Contents[0].Parts[0].Text)
	require.NotNil(t, gotPayload.GenerationConfig)
	assert.Equal(t, "application/json", gotPayload.GenerationConfig.ResponseMimeType)
	assert.Equal(t, 0.4, gotPayload.GenerationConfig.Temperature)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := client.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateNon200IsTerminal(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	})

	_, err := client.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, 1, calls, "a failed call must not be retried")
}

func TestGenerateMissingAPIKey(t *testing.T) {
	client := NewGeminiClient(config.GeminiConfig{Model: "m"}, zerolog.Nop())

	_, err := client.Generate(context.Background(), "prompt")

	assert.Error(t, err)
}
