// Package scoring turns a free-text interview answer into a bounded 0-100
// score and a list of feedback items.
//
// A result is resolved in three tiers: a structured JSON evaluation from the
// upstream model, a numeric score pattern found in the model text, and finally
// a heuristic evaluation computed from the answer itself. Every call produces a
// valid result; nothing in this package returns an error or keeps state
// between calls.
package scoring

// Dimension identifies one axis of answer quality.
type Dimension string

const (
	RelevanceAccuracy     Dimension = "relevance_accuracy"
	DepthReasoning        Dimension = "depth_reasoning"
	StructureClarity      Dimension = "structure_clarity"
	CommunicationStyle    Dimension = "communication_style"
	CreativityOriginality Dimension = "creativity_originality"
	TechnicalExpertise    Dimension = "technical_expertise"
)

// DimensionScores maps a dimension to its score in [0,100]. Absent
// dimensions are left out of aggregation rather than counted as zero.
type DimensionScores map[Dimension]int

// Weights are kept in whole percent so aggregation stays exact.
var dimensionWeights = []struct {
	dimension Dimension
	percent   int
}{
	{RelevanceAccuracy, 25},
	{DepthReasoning, 20},
	{StructureClarity, 20},
	{CommunicationStyle, 15},
	{CreativityOriginality, 10},
	{TechnicalExpertise, 10},
}

// Dimensions lists every known dimension in weight-table order.
func Dimensions() []Dimension {
	dims := make([]Dimension, 0, len(dimensionWeights))
	for _, w := range dimensionWeights {
		dims = append(dims, w.dimension)
	}
	return dims
}

// DefaultWeights returns a copy of the fixed weight table. The weights sum to 1.0.
func DefaultWeights() map[Dimension]float64 {
	weights := make(map[Dimension]float64, len(dimensionWeights))
	for _, w := range dimensionWeights {
		weights[w.dimension] = float64(w.percent) / 100
	}
	return weights
}

// Weight returns the weight of a dimension, or 0 for an unknown one.
func Weight(d Dimension) float64 {
	for _, w := range dimensionWeights {
		if w.dimension == d {
			return float64(w.percent) / 100
		}
	}
	return 0
}
