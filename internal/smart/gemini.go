package smart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ajanda/internal/task"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// GeminiParser calls the Gemini generateContent API with a JSON response
// schema and maps the reply onto a task draft.
type GeminiParser struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiParser(apiKey, model string) *GeminiParser {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiParser{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// draftResponse is the shape the service is asked to produce.
type draftResponse struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

var draftSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"title": {"type": "STRING", "description": "short title of the task"},
		"description": {"type": "STRING", "description": "extra details, if any"},
		"date": {"type": "STRING", "description": "date in YYYY-MM-DD form"},
		"time": {"type": "STRING", "description": "time of day in HH:MM form"},
		"priority": {"type": "STRING", "enum": ["LOW", "MEDIUM", "HIGH"]}
	},
	"required": ["title", "priority"]
}`)

// Interpret sends the user input to Gemini and maps the structured reply to a
// draft. A missing API key short-circuits to ErrNotUnderstood without any
// network call. An omitted date defaults to today; an unrecognized priority
// defaults to Medium. No retries.
func (p *GeminiParser) Interpret(ctx context.Context, input string, today time.Time) (task.Draft, error) {
	if p.apiKey == "" {
		return task.Draft{}, ErrNotUnderstood
	}

	todayStr := today.Format(task.DateLayout)
	prompt := fmt.Sprintf(`Today's date: %s (%s).
Analyze the user input and produce a structured task object.
Always convert dates to YYYY-MM-DD. If the user says "tomorrow", add one day
to today's date. Omit the time field when no time is mentioned. If no priority
is stated, infer one from context or return MEDIUM.

User input: %q`, todayStr, today.Weekday(), input)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   draftSchema,
		},
	})
	if err != nil {
		return task.Draft{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return task.Draft{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return task.Draft{}, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return task.Draft{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr geminiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return task.Draft{}, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return task.Draft{}, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var out geminiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return task.Draft{}, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return task.Draft{}, ErrNotUnderstood
	}

	var dr draftResponse
	if err := json.Unmarshal([]byte(out.Candidates[0].Content.Parts[0].Text), &dr); err != nil {
		return task.Draft{}, ErrNotUnderstood
	}
	if strings.TrimSpace(dr.Title) == "" {
		return task.Draft{}, ErrNotUnderstood
	}

	d := task.Draft{
		Title:       strings.TrimSpace(dr.Title),
		Description: dr.Description,
		Date:        dr.Date,
		Time:        dr.Time,
		Priority:    task.ParsePriority(dr.Priority),
	}
	if d.Date == "" {
		d.Date = todayStr
	}
	return d, nil
}
