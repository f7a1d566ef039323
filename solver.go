package framecad

import "math"

// solveQuadratic finds the real roots of a*x^2 + b*x + c = 0 in ascending
// order. A vanishing leading coefficient falls back to the linear case.
// The stable form avoids cancellation when b dominates the discriminant.
func solveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		return nil
	}

	disc := sc1*sc1 - 4.0*sc0
	switch {
	case !isFinite(disc):
		// Discriminant overflow: one root is approximately -sc1.
		return sortedRoots(-sc1, sc0/-sc1)
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-0.5 * sc1}
	}

	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(disc), sc1))
	return sortedRoots(root1, sc0/root1)
}

func sortedRoots(r1, r2 float64) []float64 {
	if !isFinite(r2) {
		return []float64{r1}
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return []float64{r1, r2}
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
