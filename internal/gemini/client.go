package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type Client struct {
	apiKey string
	model  string
	base   string
	http   *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		base:   "https://generativelanguage.googleapis.com/v1beta",
		http:   &http.Client{},
	}
}

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	Temperature      *float32 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema  `json:"responseSchema,omitempty"`
}

type GenerateRequest struct {
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// GenerateContent calls the generateContent endpoint and returns the text of
// the first candidate.
func (c *Client) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.base, c.model)
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	r, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	r.Header.Set("x-goog-api-key", c.apiKey)
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini api error: %s", string(bodyBytes))
	}

	var gr generateResponse
	if err := json.Unmarshal(bodyBytes, &gr); err != nil {
		return "", fmt.Errorf("decode error: %w, body: %s", err, string(bodyBytes))
	}
	if gr.Error != nil {
		return "", fmt.Errorf("api error: %s", gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateObject asks the model for a schema-conforming JSON object and
// unmarshals the result into out.
func (c *Client) GenerateObject(ctx context.Context, system, prompt string, schema *Schema, out any) error {
	var temp float32 = 0.0
	req := GenerateRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: &GenerationConfig{
			Temperature:      &temp,
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}
	if system != "" {
		req.SystemInstruction = &Content{Parts: []Part{{Text: system}}}
	}

	text, err := c.GenerateContent(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("parse structured response: %w; raw response: %q", err, text)
	}
	return nil
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *Client) SetBaseURL(base string) {
	c.base = base
}
