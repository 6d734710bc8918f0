package services

import (
	"context"
	"fmt"
	"log"
)

// GenerateOptions tunes a single text generation call.
type GenerateOptions struct {
	SystemRole  string
	Temperature float32
	MaxTokens   int32
}

// TextGenerator is the upstream generative-text contract: prompt in, text out, or failure.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, opts GenerateOptions, maxRetries int) (string, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// NewTextGenerator picks the provider named by LLM_PROVIDER.
func NewTextGenerator(provider, geminiAPIKey, openAIAPIKey, model string) (TextGenerator, error) {
	switch provider {
	case "", "gemini":
		return NewGeminiService(geminiAPIKey, model, "")
	case "openai":
		return NewOpenAIService(openAIAPIKey, model)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

func generateWithRetry(ctx context.Context, maxRetries int, generate func() (string, error)) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := generate()
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			log.Printf("⚠️ Attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
