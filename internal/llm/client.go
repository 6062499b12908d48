// Package llm is the boundary to an OpenAI-compatible chat-completion API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jerry-619/JobPrep-AI/pkg/apperr"
)

// TextGenerator is the single capability the generation components need.
// Tests substitute a canned implementation.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	apiKey  string
	model   string
	base    string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		base:    strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

type ChatRequest struct {
	Model       string              `json:"model"`
	Messages    []map[string]string `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float32             `json:"temperature,omitempty"`
}

type ChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateText sends prompt as a single user message and returns the trimmed
// completion text. Network failures, non-2xx responses, request timeouts
// and empty completions all surface as UPSTREAM_ERROR. No retries here;
// fallback policy belongs to callers.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := ChatRequest{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "user", "content": prompt},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.base + "/chat/completions"
	b, _ := json.Marshal(req)
	r, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	if err != nil {
		return "", apperr.Upstream("text generation unavailable", err)
	}
	r.Header.Set("Authorization", "Bearer "+c.apiKey)
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return "", apperr.Upstream("text generation unavailable", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", apperr.Upstream("text generation unavailable",
			fmt.Errorf("chat completion status %d: %s", resp.StatusCode, string(bodyBytes)))
	}

	var ch ChatResponse
	if err := json.Unmarshal(bodyBytes, &ch); err != nil {
		return "", apperr.Upstream("text generation unavailable",
			fmt.Errorf("decode chat response: %w", err))
	}

	if ch.Error != nil {
		return "", apperr.Upstream("text generation unavailable",
			fmt.Errorf("chat completion error: %s", ch.Error.Message))
	}

	if len(ch.Choices) == 0 || strings.TrimSpace(ch.Choices[0].Message.Content) == "" {
		return "", apperr.Upstream("text generation unavailable",
			fmt.Errorf("no completion content"))
	}
	return strings.TrimSpace(ch.Choices[0].Message.Content), nil
}
