package scoring

// Error type labels used by the heuristic feedback. Upstream evaluations may
// carry their own labels.
const (
	ErrorTypeRelevance       = "관련성_부족"
	ErrorTypeStructure       = "구조_문제"
	ErrorTypeCommunication   = "의사소통_문제"
	ErrorTypeDepth           = "깊이_부족"
	ErrorTypeCompleteness    = "완성도_부족"
	ErrorTypeProfessionalism = "전문성_부족"
)

// AnalysisItem is one piece of actionable feedback on an answer.
type AnalysisItem struct {
	ErrorText  string `json:"errorText"`
	ErrorType  string `json:"errorType"`
	Feedback   string `json:"feedback"`
	Suggestion string `json:"suggestion"`
}

var analysisItemFields = []string{"errorText", "errorType", "feedback", "suggestion"}

// analysisItemFromMap accepts an item only when all four fields are present
// and hold strings.
func analysisItemFromMap(m map[string]any) (AnalysisItem, bool) {
	values := make([]string, len(analysisItemFields))
	for i, field := range analysisItemFields {
		v, ok := m[field].(string)
		if !ok {
			return AnalysisItem{}, false
		}
		values[i] = v
	}

	return AnalysisItem{
		ErrorText:  values[0],
		ErrorType:  values[1],
		Feedback:   values[2],
		Suggestion: values[3],
	}, true
}
