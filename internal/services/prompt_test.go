package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptBuilder_BuildQuestionPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	t.Run("includes context and previous questions", func(t *testing.T) {
		prompt := pb.BuildQuestionPrompt(QuestionPromptInput{
			JobType:           "백엔드 개발자",
			Level:             "중급",
			Category:          "기술",
			QuestionType:      "경험",
			ResumeText:        "Go로 결제 시스템을 개발",
			PreviousQuestions: []string{"q1", "q2"},
			ReferenceContext:  "협업을 중시하는 문화",
		})

		for _, want := range []string{"백엔드 개발자", "중급", "기술", "경험", "Go로 결제 시스템을 개발", "- q1\n- q2", "협업을 중시하는 문화"} {
			assert.Contains(t, prompt, want)
		}
	})

	t.Run("placeholders when nothing is known", func(t *testing.T) {
		prompt := pb.BuildQuestionPrompt(QuestionPromptInput{JobType: "디자이너", ResumeText: missingResumeText})

		assert.Contains(t, prompt, noReferenceContext)
		assert.Contains(t, prompt, "중복 금지):\n없음")
	})

	t.Run("long resume is truncated", func(t *testing.T) {
		prompt := pb.BuildQuestionPrompt(QuestionPromptInput{ResumeText: strings.Repeat("가", maxPromptResumeBytes)})

		assert.NotContains(t, prompt, strings.Repeat("가", maxPromptResumeBytes/3+1))
	})
}

func TestPromptBuilder_BuildAnalysisPrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildAnalysisPrompt("  질문?  ", " 답변 ", "백엔드", "초급", "인성")

	assert.Contains(t, prompt, "질문:\n질문?\n")
	assert.Contains(t, prompt, "답변:\n답변\n")
	assert.Contains(t, prompt, `"score"`)
	assert.Contains(t, prompt, `"errorText"`)
	assert.Contains(t, prompt, "깊이_부족")
}

func TestPromptBuilder_BuildFollowUpPrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildFollowUpPrompt("이전 질문", "이전 답변", "데이터 엔지니어")

	assert.True(t, strings.HasPrefix(prompt, "데이터 엔지니어 직무"))
	assert.Contains(t, prompt, `"questiontext"`)
}

func TestFormatReferenceContext(t *testing.T) {
	assert.Empty(t, FormatReferenceContext(nil))

	got := FormatReferenceContext([]ReferenceMatch{
		{Text: " 첫 번째 ", Score: 0.9},
		{Text: "두 번째", Score: 0.75},
	})

	assert.Equal(t, "--- 참고 1 (유사도: 0.90) ---\n첫 번째\n\n--- 참고 2 (유사도: 0.75) ---\n두 번째", got)
}
