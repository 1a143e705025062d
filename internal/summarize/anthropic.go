package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anatolykoptev/go_youtube/internal/retry"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
)

// AnthropicProvider calls the Anthropic Messages API directly. The endpoint
// is not OpenAI-compatible, so it gets its own thin client.
type AnthropicProvider struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

func NewAnthropicProvider(apiKey, model string, temperature float64, maxTokens int) *AnthropicProvider {
	return &AnthropicProvider{
		apiKey:      apiKey,
		model:       model,
		baseURL:     anthropicBaseURL,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient:  &http.Client{Timeout: 5 * time.Minute},
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *AnthropicProvider) Summarize(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:       p.model,
		System:      systemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: buildUserPrompt(req)}},
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: marshal request: %w", err)
	}

	reply, err := retry.Do(ctx, retry.DefaultConfig, func() (string, error) {
		return p.complete(ctx, body)
	})
	if err != nil {
		return nil, err
	}
	return parseResult(reply)
}

func (p *AnthropicProvider) complete(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("summarize: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("summarize: anthropic request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("summarize: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", retry.StatusError(resp.StatusCode, string(data))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("summarize: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("summarize: anthropic error %s: %s", parsed.Error.Type, parsed.Error.Message)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("summarize: empty anthropic response")
}
