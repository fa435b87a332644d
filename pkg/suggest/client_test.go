package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lumina-cal/lumina/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiResponse(innerJSON string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]string{
						{"text": innerJSON},
					},
				},
			},
		},
	})
	return string(body)
}

func setupGeminiClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewGeminiClient(config.Gemini{
		ApiKey:         "test-key",
		Model:          "gemini-3-flash-preview",
		TimeoutSeconds: 5,
	})
	client.baseURL = server.URL
	return client
}

func TestGeminiClient_Parse(t *testing.T) {
	ctx := context.Background()
	reference := time.Date(2024, time.May, 21, 15, 0, 0, 0, time.UTC)

	t.Run("returns the structured suggestion", func(t *testing.T) {
		var gotPath, gotKey string
		var gotRequest map[string]any
		client := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-goog-api-key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
			fmt.Fprint(w, geminiResponse(`{
				"title": "Dinner with Sophie",
				"description": "At the usual place",
				"startDate": "2024-05-22T19:00:00Z",
				"endDate": "2024-05-22T20:00:00Z"
			}`))
		})

		suggestion, err := client.Parse(ctx, "dinner with Sophie tomorrow at 7pm", reference)

		require.NoError(t, err)
		assert.Equal(t, "Dinner with Sophie", suggestion.Title)
		assert.Equal(t, "At the usual place", suggestion.Description)
		assert.Equal(t, "2024-05-22T19:00:00Z", suggestion.StartDate)
		assert.Equal(t, "2024-05-22T20:00:00Z", suggestion.EndDate)

		assert.Equal(t, "/models/gemini-3-flash-preview:generateContent", gotPath)
		assert.Equal(t, "test-key", gotKey)

		generationConfig, ok := gotRequest["generationConfig"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "application/json", generationConfig["responseMimeType"])
	})

	t.Run("sends the reference date and input in the prompt", func(t *testing.T) {
		var prompt string
		client := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
			var reqBody struct {
				Contents []struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"contents"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
			prompt = reqBody.Contents[0].Parts[0].Text
			fmt.Fprint(w, geminiResponse(`{"title":"t","startDate":"2024-05-22T19:00:00Z","endDate":"2024-05-22T20:00:00Z"}`))
		})

		_, err := client.Parse(ctx, "lunch on friday", reference)

		require.NoError(t, err)
		assert.Contains(t, prompt, "2024-05-21T15:00:00Z")
		assert.Contains(t, prompt, "lunch on friday")
	})

	t.Run("rejects a suggestion missing required fields", func(t *testing.T) {
		client := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, geminiResponse(`{"title":"Dinner","endDate":"2024-05-22T20:00:00Z"}`))
		})

		_, err := client.Parse(ctx, "dinner", reference)

		assert.ErrorContains(t, err, "missing required fields")
	})

	t.Run("rejects a response with no candidates", func(t *testing.T) {
		client := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"candidates": []}`)
		})

		_, err := client.Parse(ctx, "dinner", reference)

		assert.ErrorContains(t, err, "no candidates")
	})

	t.Run("rejects non-JSON content", func(t *testing.T) {
		client := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, geminiResponse("I could not parse that."))
		})

		_, err := client.Parse(ctx, "dinner", reference)

		assert.ErrorContains(t, err, "failed to unmarshal suggestion")
	})

	t.Run("rejects a non-OK status", func(t *testing.T) {
		client := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.Parse(ctx, "dinner", reference)

		assert.ErrorContains(t, err, "non-OK status: 429")
	})

	t.Run("fails fast on a blank api key", func(t *testing.T) {
		client := NewGeminiClient(config.Gemini{Model: "gemini-3-flash-preview"})

		_, err := client.Parse(ctx, "dinner", reference)

		assert.ErrorContains(t, err, "api key is blank")
	})
}
