package resultant

// EstimateDegree returns the kernel degree suggested by the knee of the
// normalized singular spectrum.
//
// With σ̂ the spectrum divided by its largest value, the first difference
// Δ_i = σ̂_{i+1} - σ̂_i is taken for i in [0, min(maxDegree, len-1)) and the
// result is argmax(Δ)+1. Ties resolve to the first maximal index, so a flat
// or all-zero spectrum yields 1. The result is always in [1, maxDegree] for
// maxDegree >= 1.
func EstimateDegree(sp Spectrum, maxDegree int) int {
	return KneeIndex(sp.Normalized(), maxDegree) + 1
}

// KneeIndex returns argmax over the first limit first differences of values,
// taking the first index on ties. It returns 0 when fewer than two values
// are available or limit < 1.
func KneeIndex(values []float64, limit int) int {
	n := min(limit, len(values)-1)
	if n < 1 {
		return 0
	}

	best := 0
	bestDiff := values[1] - values[0]
	for i := 1; i < n; i++ {
		if d := values[i+1] - values[i]; d > bestDiff {
			best = i
			bestDiff = d
		}
	}

	return best
}
