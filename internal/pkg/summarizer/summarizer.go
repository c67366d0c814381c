// Package summarizer wraps the external text-summarization service. The core
// only sees the Completer interface; the OpenAI-compatible client below is the
// production implementation.
package summarizer

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ekinoz/classtrack/internal/pkg/logger"
)

const systemPrompt = "You are a helpful assistant that summarizes lecture notes in a digestible way."

// Completer is the consumed interface of the summarization collaborator:
// one blocking network call, no retry logic here.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds the chat-completion client settings.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	api         *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewClient creates a chat-completion client.
func NewClient(cfg Config) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}
}

// Complete sends the prompts to the chat-completions endpoint and returns the
// generated text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		logger.Error().Err(err).Str("model", c.model).Msg("Chat completion request failed")
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// SummarizeText asks the service to summarize lecture notes.
func SummarizeText(ctx context.Context, completer Completer, text string) (string, error) {
	userPrompt := fmt.Sprintf("Summarize the following lecture:\n\n%s", text)
	return completer.Complete(ctx, systemPrompt, userPrompt)
}
