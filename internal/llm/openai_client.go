// internal/llm/openai_client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the contract the insights service depends on. Keeping it small
// makes the fallback path and the tests trivial.
type Client interface {
	// Answer returns a narrative completion for a system + user prompt.
	Answer(ctx context.Context, system, prompt string) (string, error)

	// Model reports the active model name.
	Model() string
}

type OpenAIClient struct {
	api   *openai.Client
	model string
}

// NewFromEnv reads API key and model from the environment:
//   - OPENAI_API_KEY (required)
//   - OPENAI_MODEL (optional, default gpt-4o-mini)
//   - OPENAI_BASE_URL (optional, proxy/self-hosted endpoint)
func NewFromEnv() (Client, error) {
	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}

	cfg := openai.DefaultConfig(key)
	if base := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); base != "" {
		cfg.BaseURL = base
	}

	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIClient{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}, nil
}

func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) Answer(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
