package scoring

import "unicode/utf8"

const excerptLimit = 50

// BuildFallback produces feedback for an answer when no upstream evaluation
// is usable. The question is accepted for symmetry with the scorer and is not
// inspected.
func BuildFallback(question, answer string, score int) []AnalysisItem {
	analysis := []AnalysisItem{}

	if isBlank(answer) {
		return append(analysis, AnalysisItem{
			ErrorText:  "답변이 없습니다",
			ErrorType:  ErrorTypeCompleteness,
			Feedback:   "질문에 대한 답변을 제공하지 않았습니다",
			Suggestion: "질문을 다시 읽고 구체적인 답변을 작성해보세요",
		})
	}

	if wordCount(answer) < 10 {
		analysis = append(analysis, AnalysisItem{
			ErrorText:  excerpt(answer),
			ErrorType:  ErrorTypeDepth,
			Feedback:   "답변이 너무 짧아 충분한 설명이 부족합니다",
			Suggestion: "더 자세한 설명과 구체적인 예시를 추가해보세요",
		})
	}

	if score < 60 {
		analysis = append(analysis, AnalysisItem{
			ErrorText:  "전반적인 답변 품질",
			ErrorType:  ErrorTypeStructure,
			Feedback:   "답변의 전반적인 구성과 내용에 개선이 필요합니다",
			Suggestion: "질문의 핵심을 파악하고 논리적으로 답변을 구성해보세요",
		})
	}

	return analysis
}

func excerpt(answer string) string {
	if utf8.RuneCountInString(answer) <= excerptLimit {
		return answer
	}
	return string([]rune(answer)[:excerptLimit]) + "..."
}
