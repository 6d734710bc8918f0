package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"jemyeonso/interview-ai/internal/models"
)

const (
	fallbackFollowUpText = "이 직무에 지원하게 된 동기는 무엇인가요?"
	followUpQuestionType = "꼬리질문"
)

type FollowUpGenerator interface {
	Generate(ctx context.Context, question, answer, jobRole string) models.FollowUpResponse
}

type followUpGenerator struct {
	llm        TextGenerator
	prompts    *PromptBuilder
	maxRetries int
}

func NewFollowUpGenerator(llm TextGenerator, maxRetries int) FollowUpGenerator {
	return &followUpGenerator{
		llm:        llm,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

// Generate implements FollowUpGenerator. Any upstream or parsing failure
// yields the fallback question.
func (f *followUpGenerator) Generate(ctx context.Context, question, answer, jobRole string) models.FollowUpResponse {
	prompt := f.prompts.BuildFollowUpPrompt(question, answer, jobRole)

	response, err := f.llm.GenerateTextWithRetry(ctx, prompt, GenerateOptions{
		SystemRole:  followUpRole,
		Temperature: 0.7,
		MaxTokens:   256,
	}, f.maxRetries)
	if err != nil {
		log.Printf("❌ Follow-up generation failed: %v\n", err)
		return FallbackFollowUp()
	}

	followUp, ok := parseFollowUp(response)
	if !ok {
		log.Println("⚠️  Follow-up response was not usable, returning fallback question")
		return FallbackFollowUp()
	}

	return followUp
}

func FallbackFollowUp() models.FollowUpResponse {
	return models.FollowUpResponse{
		Question: models.FollowUpQuestion{
			QuestionText: fallbackFollowUpText,
			QuestionType: followUpQuestionType,
		},
	}
}

// parseFollowUp decodes the span from the first '{' to the last '}'.
func parseFollowUp(response string) (models.FollowUpResponse, bool) {
	var followUp models.FollowUpResponse

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end < start {
		return followUp, false
	}

	if err := json.Unmarshal([]byte(response[start:end+1]), &followUp); err != nil {
		return followUp, false
	}

	if strings.TrimSpace(followUp.Question.QuestionText) == "" {
		return followUp, false
	}
	if followUp.Question.QuestionType == "" {
		followUp.Question.QuestionType = followUpQuestionType
	}

	return followUp, true
}
