package traversal

import "math"

// epsilonScale computes the single tolerance epsilon_t used throughout
// the traversal (spec.md §4.5 "Numerical tolerance", §9 "Epsilon
// choice"). It is scaled to both tMax and the sphere's own dimension so
// that a single value serves "strictly greater than t_cur" comparisons
// and tie detection consistently across all three step functions -
// using different epsilons per axis would make ties asymmetric.
func epsilonScale(tMax, radialMax float64) float64 {
	scale := math.Max(1.0, tMax)
	scale = math.Max(scale, radialMax)
	return 1e-9 * scale
}
