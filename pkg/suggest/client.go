package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lumina-cal/lumina/internal/config"
	log "github.com/sirupsen/logrus"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta"

// Suggestion is the structured event candidate produced by the parsing
// service. Start and end are ISO-8601 text; the service layer parses them
// into instants.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Client performs a single natural-language-to-event round-trip. Calls are
// independent; there is no caching, batching, or retrying.
type Client interface {
	Parse(ctx context.Context, text string, reference time.Time) (*Suggestion, error)
}

type GeminiClient struct {
	cfg     config.Gemini
	baseURL string
	client  *http.Client
}

func NewGeminiClient(cfg config.Gemini) *GeminiClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &GeminiClient{
		cfg:     cfg,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type schemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
		ResponseSchema   struct {
			Type       string                    `json:"type"`
			Properties map[string]schemaProperty `json:"properties"`
			Required   []string                  `json:"required"`
		} `json:"responseSchema"`
	} `json:"generationConfig"`
}

// Parse asks the generative service to turn free text into a structured
// event suggestion. The reference instant lets the service resolve
// relative expressions like "tomorrow". Any transport or schema failure is
// returned as an error; the caller decides how to surface it.
func (c *GeminiClient) Parse(ctx context.Context, text string, reference time.Time) (*Suggestion, error) {
	if c.cfg.ApiKey == "" {
		return nil, fmt.Errorf("gemini api key is blank")
	}

	prompt := fmt.Sprintf("Parse the following natural language into a structured calendar event.\n"+
		"Reference date (today): %s.\nInput: %q", reference.Format(time.RFC3339), text)

	var reqBody generateRequest
	reqBody.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = []struct {
		Text string `json:"text"`
	}{{Text: prompt}}
	reqBody.GenerationConfig.ResponseMimeType = "application/json"
	reqBody.GenerationConfig.ResponseSchema.Type = "OBJECT"
	reqBody.GenerationConfig.ResponseSchema.Properties = map[string]schemaProperty{
		"title":       {Type: "STRING"},
		"description": {Type: "STRING"},
		"startDate":   {Type: "STRING", Description: "ISO 8601 string"},
		"endDate":     {Type: "STRING", Description: "ISO 8601 string"},
	}
	reqBody.GenerationConfig.ResponseSchema.Required = []string{"title", "startDate", "endDate"}

	reqBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.ApiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("generative service returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	var respBody struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("generative service returned no candidates")
	}
	jsonStr := strings.TrimSpace(respBody.Candidates[0].Content.Parts[0].Text)
	if jsonStr == "" {
		return nil, fmt.Errorf("generative service returned empty content")
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(jsonStr), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestion: %w", err)
	}
	if suggestion.Title == "" || suggestion.StartDate == "" || suggestion.EndDate == "" {
		return nil, fmt.Errorf("suggestion is missing required fields")
	}

	return &suggestion, nil
}
