package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(apiKey, model string) (TextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	return newOpenAIService(openai.DefaultConfig(apiKey), model), nil
}

func newOpenAIService(cfg openai.ClientConfig, model string) *openAIService {
	if model == "" {
		model = defaultOpenAIModel
	}

	return &openAIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// GenerateText implements TextGenerator.
func (o *openAIService) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	var messages []openai.ChatCompletionMessage
	if opts.SystemRole != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.SystemRole,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
	}
	// Reasoning models reject MaxTokens and any temperature but the default.
	if isReasoningModel(o.model) {
		req.MaxCompletionTokens = int(opts.MaxTokens)
	} else {
		req.MaxTokens = int(opts.MaxTokens)
		req.Temperature = opts.Temperature
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat completion")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateTextWithRetry implements TextGenerator.
func (o *openAIService) GenerateTextWithRetry(ctx context.Context, prompt string, opts GenerateOptions, maxRetries int) (string, error) {
	return generateWithRetry(ctx, maxRetries, func() (string, error) {
		return o.GenerateText(ctx, prompt, opts)
	})
}

func isReasoningModel(model string) bool {
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
