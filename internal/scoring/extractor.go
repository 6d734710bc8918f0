package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// NeutralScore is reported when nothing could be extracted.
const NeutralScore = 50

// Tier names the strategy that produced a result.
type Tier string

const (
	TierStructured Tier = "structured"
	TierPattern    Tier = "pattern"
	TierDefault    Tier = "default"
	TierHeuristic  Tier = "heuristic"
)

// Extraction is the outcome of reading upstream model text.
type Extraction struct {
	Score    int
	Analysis []AnalysisItem
	Tier     Tier
	// ScoreFound is false when Score is the neutral default rather than a
	// value stated by the upstream text.
	ScoreFound bool
}

// Extract reads a score and feedback from upstream model text. Structured
// JSON wins over numeric patterns, which win over the neutral default.
// Malformed input never fails the call.
func Extract(raw string) Extraction {
	if ex, ok := extractStructured(raw); ok {
		return ex
	}
	if ex, ok := extractPattern(raw); ok {
		return ex
	}
	return Extraction{
		Score:    NeutralScore,
		Analysis: []AnalysisItem{},
		Tier:     TierDefault,
	}
}

// jsonBlock returns the text from the first "{" to the last "}".
func jsonBlock(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func extractStructured(raw string) (Extraction, bool) {
	block, ok := jsonBlock(raw)
	if !ok {
		return Extraction{}, false
	}

	var parsed map[string]any
	dec := json.NewDecoder(bytes.NewReader([]byte(block)))
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil || parsed == nil {
		return Extraction{}, false
	}
	// The whole block must be one object; trailing text or braces reject it.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Extraction{}, false
	}

	ex := Extraction{
		Score:    NeutralScore,
		Analysis: []AnalysisItem{},
		Tier:     TierStructured,
	}

	if v, found := parsed["score"]; found {
		ex.Score = coerceScore(v)
		ex.ScoreFound = true
	}

	if items, ok := parsed["analysis"].([]any); ok {
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if a, ok := analysisItemFromMap(m); ok {
				ex.Analysis = append(ex.Analysis, a)
			}
		}
	}

	return ex, true
}

// coerceScore accepts a JSON number or a numeral string and falls back to the
// neutral score for anything else. Fractions are truncated.
func coerceScore(v any) int {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return clampScore(float64(i))
		}
		if f, err := t.Float64(); err == nil {
			return clampScore(math.Trunc(f))
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return clampScore(float64(i))
		}
	}
	return NeutralScore
}

func clampScore(f float64) int {
	if math.IsNaN(f) {
		return NeutralScore
	}
	return int(math.Max(0, math.Min(100, f)))
}

func extractPattern(raw string) (Extraction, bool) {
	for _, pattern := range scorePatterns {
		m := pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		score, err := strconv.Atoi(m[1])
		if err != nil || score > 100 {
			continue
		}
		return Extraction{
			Score:      score,
			Analysis:   []AnalysisItem{},
			Tier:       TierPattern,
			ScoreFound: true,
		}, true
	}
	return Extraction{}, false
}
