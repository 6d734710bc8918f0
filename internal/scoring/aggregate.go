package scoring

// Aggregate combines dimension scores into one score using the fixed weights,
// normalized over the dimensions present. Unknown dimensions are ignored and
// an input without any known dimension scores 0. The mean is rounded half up.
func Aggregate(scores DimensionScores) int {
	weighted, total := 0, 0
	for _, w := range dimensionWeights {
		score, ok := scores[w.dimension]
		if !ok {
			continue
		}
		weighted += score * w.percent
		total += w.percent
	}

	if total == 0 {
		return 0
	}

	return clamp(roundHalfUp(weighted, total), 0, 100)
}

func roundHalfUp(num, den int) int {
	if num < 0 {
		return -roundHalfUp(-num, den)
	}
	return (2*num + den) / (2 * den)
}
