package summarize

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go-kit/llm"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint
// (OpenAI, DeepSeek, local gateways) through the shared llm client.
type OpenAIProvider struct {
	client      *llm.Client
	temperature float64
	maxTokens   int
}

// NewOpenAIProvider wraps an already-configured llm client.
func NewOpenAIProvider(client *llm.Client, temperature float64, maxTokens int) *OpenAIProvider {
	return &OpenAIProvider{client: client, temperature: temperature, maxTokens: maxTokens}
}

func (p *OpenAIProvider) Summarize(ctx context.Context, req Request) (*Result, error) {
	reply, err := p.client.Complete(ctx, systemPrompt, buildUserPrompt(req),
		llm.WithChatTemperature(p.temperature),
		llm.WithChatMaxTokens(p.maxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("summarize: chat completion: %w", err)
	}
	return parseResult(reply)
}
