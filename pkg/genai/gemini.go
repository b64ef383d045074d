package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiContent struct {
	Parts []*GeminiPart `json:"parts"`
	Role  string        `json:"role"`
}

type GeminiRequest struct {
	Contents []*GeminiContent `json:"contents"`
}

type GeminiCandidate struct {
	Content *GeminiContent `json:"content"`
}

type GeminiResponse struct {
	Candidates []*GeminiCandidate `json:"candidates"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"

	defaultModel = "gemini-1.5-flash"
)

// Client calls the Gemini REST generateContent endpoint. The generative
// service is treated as an opaque function: prompt in, structured JSON out.
type Client struct {
	apiKey string
	model  string
	http   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  defaultModel,
		http:   &http.Client{},
	}
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("https://generativelanguage.googleapis.com/v1/models/%s:generateContent", c.model)
}

// GenerateText sends a single-turn prompt and returns the raw model text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	payload := GeminiRequest{
		Contents: []*GeminiContent{
			{
				Parts: []*GeminiPart{{Text: prompt}},
				Role:  RoleUser,
			},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint(), bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateJSON sends a prompt that instructs the model to answer with a
// single JSON value and returns the cleaned raw JSON. Models often wrap
// JSON in markdown fences; those are stripped before returning.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	text, err := c.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := StripFences([]byte(text))

	if !json.Valid(cleaned) {
		return nil, fmt.Errorf("model returned invalid json: %s", string(cleaned))
	}
	return json.RawMessage(cleaned), nil
}

// StripFences removes a surrounding ```json ... ``` markdown wrapper.
func StripFences(b []byte) []byte {
	b = bytes.TrimSpace(b)
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}
