package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAI(t *testing.T, model, reply string, captured *map[string]any) *openAIService {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		body := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*captured = body

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return newOpenAIService(cfg, model)
}

func TestOpenAIService_GenerateText(t *testing.T) {
	var body map[string]any
	svc := newTestOpenAI(t, "", "  자기소개를 해주세요.  ", &body)

	text, err := svc.GenerateText(context.Background(), "질문을 만들어 주세요", GenerateOptions{
		Temperature: 0.7,
		MaxTokens:   256,
		SystemRole:  "면접관",
	})
	require.NoError(t, err)

	assert.Equal(t, "자기소개를 해주세요.", text)
	assert.Equal(t, defaultOpenAIModel, body["model"])
	assert.EqualValues(t, 256, body["max_tokens"])
	assert.NotContains(t, body, "max_completion_tokens")

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestOpenAIService_ReasoningModelUsesCompletionTokens(t *testing.T) {
	var body map[string]any
	svc := newTestOpenAI(t, "o3-mini", "ok", &body)

	_, err := svc.GenerateText(context.Background(), "prompt", GenerateOptions{Temperature: 0.3, MaxTokens: 512})
	require.NoError(t, err)

	assert.EqualValues(t, 512, body["max_completion_tokens"])
	assert.NotContains(t, body, "max_tokens")
	assert.NotContains(t, body, "temperature")

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 1)
}

func TestOpenAIService_EmptyReply(t *testing.T) {
	var body map[string]any
	svc := newTestOpenAI(t, "gpt-4o-mini", "   ", &body)

	_, err := svc.GenerateText(context.Background(), "prompt", GenerateOptions{MaxTokens: 16})
	assert.ErrorContains(t, err, "no text content")
}
