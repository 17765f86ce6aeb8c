package llm

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"github.com/chatlens/bot/internal/domain"
)

// OpenAIClient calls an OpenAI-compatible chat completion API for
// summarization. The base URL is configurable so self-hosted or third-party
// inference endpoints work through the same SDK.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient constructs a completion client. An empty baseURL keeps the
// SDK's default endpoint.
func NewOpenAIClient(apiKey, baseURL, model string, maxTokens int) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if model == "" {
		model = openai.GPT4oMini
	}
	if maxTokens <= 0 {
		maxTokens = 800
	}

	return &OpenAIClient{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

// SummarizeTranscript asks the completion endpoint for a prose summary of the
// transcript. Failures are wrapped so callers can substitute the fallback reply.
func (c *OpenAIClient) SummarizeTranscript(ctx context.Context, transcript string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: SummaryRequestPrefix + transcript},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		log.Printf("[llm] completion error: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrSummaryUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrSummaryUnavailable
	}
	return resp.Choices[0].Message.Content, nil
}
