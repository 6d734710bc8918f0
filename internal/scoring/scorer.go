package scoring

import "strings"

// Scorer computes the six dimension heuristics. Each heuristic returns 0 for
// a blank answer.
type Scorer struct {
	lexicon Lexicon
}

func NewScorer(lexicon Lexicon) *Scorer {
	return &Scorer{lexicon: lexicon}
}

// Score evaluates every dimension independently.
func (s *Scorer) Score(question, answer string) DimensionScores {
	return DimensionScores{
		RelevanceAccuracy:     s.Relevance(question, answer),
		StructureClarity:      s.Structure(answer),
		CommunicationStyle:    s.Communication(answer),
		DepthReasoning:        s.Depth(answer),
		CreativityOriginality: s.Creativity(answer),
		TechnicalExpertise:    s.TechnicalExpertise(answer),
	}
}

// Relevance scores lexical overlap between question and answer, clamped to [40,100].
func (s *Scorer) Relevance(question, answer string) int {
	if isBlank(answer) {
		return 0
	}

	questionWords := tokenSet(question)
	overlap := 0
	for w := range tokenSet(answer) {
		if _, ok := questionWords[w]; ok {
			overlap++
		}
	}

	score := min(70, overlap*15+40)

	words := wordCount(answer)
	if words >= 10 {
		score += 15
	}
	if words >= 30 {
		score += 10
	}
	if words < 5 {
		score /= 2
	}

	return clamp(score, 40, 100)
}

func (s *Scorer) Structure(answer string) int {
	if isBlank(answer) {
		return 0
	}

	score := 60

	words := wordCount(answer)
	if words >= 10 && words <= 200 {
		score += 20
	} else if words > 200 {
		score += 15
	}

	sentences := countSentenceTerminators(answer)
	if sentences >= 2 {
		score += 10
	}
	if sentences >= 4 {
		score += 10
	}

	if containsAny(strings.ToLower(answer), s.lexicon.StructureMarkers) {
		score += 15
	}

	return min(100, score)
}

// Communication penalizes very short answers and rewards formal endings and
// logical connectives, clamped to [30,100].
func (s *Scorer) Communication(answer string) int {
	if isBlank(answer) {
		return 0
	}

	score := 70

	words := wordCount(answer)
	if words < 3 {
		score -= 40
	} else if words < 8 {
		score -= 20
	}

	if containsAny(answer, s.lexicon.FormalEndings) {
		score += 15
	}
	if containsAny(answer, s.lexicon.Connectives) {
		score += 10
	}

	return clamp(score, 30, 100)
}

func (s *Scorer) Depth(answer string) int {
	if isBlank(answer) {
		return 0
	}

	score := 50

	words := wordCount(answer)
	if words >= 15 {
		score += 15
	}
	if words >= 30 {
		score += 15
	}
	if words >= 60 {
		score += 10
	}

	score += min(20, countPresent(answer, s.lexicon.ReasoningMarkers)*8)

	if containsAny(answer, s.lexicon.ExampleMarkers) {
		score += 15
	}

	return min(100, score)
}

func (s *Scorer) Creativity(answer string) int {
	if isBlank(answer) {
		return 0
	}

	score := 50
	if containsAny(answer, s.lexicon.CreativityKeywords) {
		score += 30
	}

	return min(100, score)
}

// TechnicalExpertise uses runs of two or more uppercase letters as a proxy
// for acronyms.
func (s *Scorer) TechnicalExpertise(answer string) int {
	if isBlank(answer) {
		return 0
	}

	score := 50 + min(30, countAcronyms(answer)*10)

	return min(100, score)
}
