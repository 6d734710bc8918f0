package scoring

import (
	"regexp"
	"strings"
)

// Lexicon holds the language-specific marker lists used by the dimension
// heuristics. A marker matches when it occurs anywhere in the answer.
type Lexicon struct {
	// StructureMarkers are matched against the lowercased answer.
	StructureMarkers []string
	FormalEndings    []string
	Connectives      []string
	// ReasoningMarkers are counted once each, not per occurrence.
	ReasoningMarkers   []string
	ExampleMarkers     []string
	CreativityKeywords []string
}

// KoreanLexicon returns the reference Korean lexicon.
func KoreanLexicon() Lexicon {
	return Lexicon{
		StructureMarkers:   []string{"예를 들어", "예시", "경험", "사례", "첫째", "둘째", "셋째"},
		FormalEndings:      []string{"습니다", "였습니다", "하였습니다", "생각합니다", "있습니다", "됩니다"},
		Connectives:        []string{"따라서", "그러므로", "또한", "하지만", "그러나"},
		ReasoningMarkers:   []string{"왜냐하면", "때문에", "따라서", "그러므로", "결과적으로", "분석", "특징", "장점", "단점"},
		ExampleMarkers:     []string{"예를 들어", "사례", "경험", "프로젝트"},
		CreativityKeywords: []string{"아이디어", "창의", "새로운", "혁신", "독특한", "참신한"},
	}
}

var (
	sentenceTerminatorPattern = regexp.MustCompile(`[.!?]+`)
	acronymPattern            = regexp.MustCompile(`[A-Z]{2,}`)

	// Tried in order; the first match of a pattern that is <= 100 wins.
	scorePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)점수[:\s]*(\d+)`),
		regexp.MustCompile(`(?i)score[:\s]*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)점`),
		regexp.MustCompile(`(?i)(\d+)/100`),
		regexp.MustCompile(`(?i)(\d+)%`),
	}
)

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func countPresent(text string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(text, m) {
			n++
		}
	}
	return n
}

func countSentenceTerminators(text string) int {
	return len(sentenceTerminatorPattern.FindAllStringIndex(text, -1))
}

func countAcronyms(text string) int {
	return len(acronymPattern.FindAllStringIndex(text, -1))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
