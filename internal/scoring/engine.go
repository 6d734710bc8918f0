package scoring

// Result is the resolved evaluation of one answer.
type Result struct {
	Score    int            `json:"score"`
	Analysis []AnalysisItem `json:"analysis"`
	Tier     Tier           `json:"tier"`
	// Dimensions is only set when the heuristic tier produced the result.
	Dimensions DimensionScores `json:"dimensions,omitempty"`
}

// Engine resolves answers against optional upstream model text. It is safe
// for concurrent use.
type Engine struct {
	scorer *Scorer
}

func NewEngine(lexicon Lexicon) *Engine {
	return &Engine{scorer: NewScorer(lexicon)}
}

// DefaultEngine uses the Korean lexicon.
func DefaultEngine() *Engine {
	return NewEngine(KoreanLexicon())
}

func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// Resolve returns the upstream evaluation when the upstream text states a
// score, and the heuristic evaluation otherwise. An empty upstream string
// means the upstream call failed or was skipped.
func (e *Engine) Resolve(question, answer, upstream string) Result {
	if upstream != "" {
		ex := Extract(upstream)
		if ex.ScoreFound {
			return Result{
				Score:    ex.Score,
				Analysis: ex.Analysis,
				Tier:     ex.Tier,
			}
		}
	}

	dimensions := e.scorer.Score(question, answer)
	score := Aggregate(dimensions)

	return Result{
		Score:      score,
		Analysis:   BuildFallback(question, answer, score),
		Tier:       TierHeuristic,
		Dimensions: dimensions,
	}
}

// CalculateEnhancedScore resolves with the default engine.
func CalculateEnhancedScore(question, answer, upstream string) (int, []AnalysisItem) {
	r := DefaultEngine().Resolve(question, answer, upstream)
	return r.Score, r.Analysis
}
