package simulation

// meanHourWeight is the per-hour share of a distribution normalized across
// 24 hours. Increments are scaled relative to this baseline: an hour at
// exactly the mean weight leaves the drawn increment unchanged.
const meanHourWeight = 1.0 / 24.0

// NormalizeWeights converts raw per-hour weights into a distribution over
// all 24 hours summing to 1. Missing hours are filled with the uniform
// default before normalizing. A total of zero or less (degenerate all-zero
// configuration) yields the uniform distribution.
//
// The function is pure and idempotent: a distribution that already sums to 1
// is returned unchanged up to floating-point tolerance.
func NormalizeWeights(raw map[int]float64) map[int]float64 {
	filled := make(map[int]float64, 24)
	total := 0.0
	for h := 0; h < 24; h++ {
		w, ok := raw[h]
		if !ok {
			w = meanHourWeight
		}
		filled[h] = w
		total += w
	}

	out := make(map[int]float64, 24)
	if total <= 0 {
		for h := 0; h < 24; h++ {
			out[h] = meanHourWeight
		}
		return out
	}
	for h := 0; h < 24; h++ {
		out[h] = filled[h] / total
	}
	return out
}
