package vor

import "math"

// NormalizeDegrees wraps an angle into [0, 360). It accepts any finite
// input, including large negative angles.
func NormalizeDegrees(angle float64) float64 {
	return math.Mod(math.Mod(angle, 360)+360, 360)
}

// SignedDifference returns a-b as the closest angular distance, in (-180, 180].
func SignedDifference(a, b float64) float64 {
	diff := NormalizeDegrees(a - b)
	if diff > 180 {
		diff -= 360
	}
	return diff
}

// foldToNearestRadial folds a signed angular difference in (-180, 180] onto
// whichever of the selected radial or its reciprocal is nearer, returning the
// signed deviation in (-90, 90]. The second result reports whether the
// reciprocal radial won. A tie (exactly 90 degrees from both radials) stays
// on the main radial; both the TO/FROM resolver and the CDI calculator
// depend on that tie-break.
func foldToNearestRadial(diff float64) (float64, bool) {
	var reciprocal float64
	if diff >= 0 {
		reciprocal = diff - 180
	} else {
		reciprocal = diff + 180
	}
	if math.Abs(reciprocal) < math.Abs(diff) {
		return reciprocal, true
	}
	return diff, false
}
