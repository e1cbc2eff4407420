package ranking

import "math"

// normalizeEpsilon keeps min-max normalization defined when every candidate
// has the same raw similarity, including the single-candidate case (which
// always normalizes to zero).
const normalizeEpsilon = 1e-9

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for zero-magnitude or empty vectors.
func cosineSimilarity(a, b []float32) float64 {
	n := min(len(a), len(b))

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// minMaxNormalize rescales values to [0,1] relative to the slice's own
// min and max. The epsilon in the denominator makes a flat input normalize
// to all zeros instead of dividing by zero.
func minMaxNormalize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	normalized := make([]float64, len(values))
	for i, v := range values {
		normalized[i] = (v - lo) / (hi - lo + normalizeEpsilon)
	}
	return normalized
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
