package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kondate-app/backend/config"
)

// Generation parameters are fixed: JSON-object response mode and a higher
// temperature so repeated calls from the same user get varied dishes.
const generationTemperature = 0.7

// OpenAIClient calls an OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient creates a generation client from configuration.
func NewOpenAIClient(cfg *config.Config, logger *zap.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.OpenAIBaseURL, "/")
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.OpenAIModel,
		logger: logger.Named("llm"),
	}
}

// Generate requests a single completion and returns its raw text content.
// An empty completion is returned as "{}" so that downstream validation
// reports it as a malformed proposal instead of a transport failure.
func (c *OpenAIClient) Generate(ctx context.Context, systemMessage, userMessage string) (string, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: generationTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		c.logger.Error("chat completion failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("chat completion: %w", err)
	}

	c.logger.Debug("chat completion finished",
		zap.String("model", c.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "{}", nil
	}
	return resp.Choices[0].Message.Content, nil
}
