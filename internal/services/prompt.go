package services

import (
	"fmt"
	"strings"
)

const (
	interviewerRole       = "당신은 경험이 풍부한 면접관입니다."
	analystRole           = "당신은 경험이 풍부한 면접관입니다. 지원자의 답변을 분석하고, 면접자의 입장에서 구체적인 피드백을 제공합니다."
	followUpRole          = "당신은 면접 질문 생성 전문가입니다."
	missingResumeText     = "이력서 내용이 제공되지 않았습니다."
	resumeNotFoundText    = "이력서 내용을 찾을 수 없습니다."
	noReferenceContext    = "참고 자료 없음"
	maxPromptResumeBytes  = 12000
	maxPromptContextBytes = 4000
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// QuestionPromptInput holds everything the question prompt is built from.
type QuestionPromptInput struct {
	JobType           string
	Level             string
	Category          string
	QuestionType      string
	ResumeText        string
	PreviousQuestions []string
	ReferenceContext  string
}

// BuildQuestionPrompt creates the prompt for a résumé-based interview question.
func (pb *PromptBuilder) BuildQuestionPrompt(in QuestionPromptInput) string {
	previous := "없음"
	if len(in.PreviousQuestions) > 0 {
		lines := make([]string, 0, len(in.PreviousQuestions))
		for _, q := range in.PreviousQuestions {
			lines = append(lines, "- "+q)
		}
		previous = strings.Join(lines, "\n")
	}

	reference := strings.TrimSpace(in.ReferenceContext)
	if reference == "" {
		reference = noReferenceContext
	}

	return fmt.Sprintf(`다음 지원자의 이력서를 바탕으로 면접 질문을 하나 생성하세요.

직무: %s
난이도: %s
면접 카테고리: %s
질문 유형: %s

이력서:
%s

참고 자료:
%s

이미 출제된 질문 (중복 금지):
%s

규칙:
- 이력서에 나온 실제 경험이나 기술을 근거로 질문하세요.
- 난이도와 카테고리에 맞는 질문 하나만 작성하세요.
- 질문 문장만 출력하고 번호, 설명, 따옴표는 붙이지 마세요.`,
		in.JobType, in.Level, in.Category, in.QuestionType,
		truncateUTF8(in.ResumeText, maxPromptResumeBytes),
		truncateUTF8(reference, maxPromptContextBytes),
		previous)
}

// BuildAnalysisPrompt creates the prompt asking for a scored evaluation of an answer.
func (pb *PromptBuilder) BuildAnalysisPrompt(question, answer, jobType, level, category string) string {
	return fmt.Sprintf(`아래 면접 답변을 평가하세요.

직무: %s
난이도: %s
카테고리: %s

질문:
%s

답변:
%s

관련성, 논리적 깊이, 구조와 명확성, 의사소통, 창의성, 전문성을 고려해 0에서 100 사이의 점수를 매기고,
개선이 필요한 부분을 찾아 피드백을 작성하세요. errorType은 다음 중 하나를 사용하세요:
관련성_부족, 구조_문제, 의사소통_문제, 깊이_부족, 완성도_부족, 전문성_부족

다음 JSON 형식으로만 응답하세요:
{
  "score": <0-100 정수>,
  "analysis": [
    {
      "errorText": "<문제가 되는 답변 부분>",
      "errorType": "<오류 유형>",
      "feedback": "<무엇이 부족한지>",
      "suggestion": "<어떻게 개선할지>"
    }
  ]
}`, jobType, level, category, strings.TrimSpace(question), strings.TrimSpace(answer))
}

// BuildFollowUpPrompt creates the prompt for a follow-up question.
func (pb *PromptBuilder) BuildFollowUpPrompt(question, answer, jobRole string) string {
	return fmt.Sprintf(`%s 직무 면접에서 아래 질문과 답변이 오갔습니다.

이전 질문:
%s

지원자 답변:
%s

답변의 내용을 더 깊이 확인할 수 있는 꼬리질문을 하나 생성하세요.
다음 JSON 형식으로만 응답하세요:
{
  "question": {
    "questiontext": "<꼬리질문 내용>",
    "questiontype": "꼬리질문"
  }
}`, jobRole, strings.TrimSpace(question), strings.TrimSpace(answer))
}

// BuildReferenceQuery creates the retrieval query for reference material.
func (pb *PromptBuilder) BuildReferenceQuery(jobType, category string) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s 면접 평가 기준과 인재상", jobType, category))
}

// FormatReferenceContext joins retrieved chunks into one prompt section.
func FormatReferenceContext(results []ReferenceMatch) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- 참고 %d (유사도: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
