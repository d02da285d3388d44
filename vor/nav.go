package vor

import "math"

// Direction is the TO/FROM flag shown by the course deviation indicator.
type Direction string

const (
	DirectionTo   Direction = "TO"
	DirectionFrom Direction = "FROM"
)

// Bearing returns the bearing from the aircraft to the station in degrees
// [0, 360). Bearings are measured clockwise from the +y axis (the grid's
// north-up convention), so the arguments to atan2 are deliberately
// (dx, dy) rather than the usual (dy, dx). When the aircraft sits exactly
// on the station the bearing is 0 by convention.
func Bearing(aircraft, station Point) float64 {
	dx := station.X - aircraft.X
	dy := station.Y - aircraft.Y
	angle := math.Atan2(dx, dy) * 180 / math.Pi
	return NormalizeDegrees(angle)
}

// Distance returns the straight-line distance between two grid points,
// rounded to 2 decimal places. Grid units are reported as nautical miles by
// convention only.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Round(math.Sqrt(dx*dx+dy*dy)*100) / 100
}

// ToFrom resolves whether flying the selected course would lead toward or
// away from the station. The resolver is symmetric: an OBS setting and its
// exact reciprocal select the same pair of radial lines, with the TO/FROM
// sense flipped on the reciprocal side. At exactly 90 degrees off either
// radial the indicator reads FROM.
func ToFrom(obs, bearingToStation float64) Direction {
	diff := SignedDifference(bearingToStation, obs)
	folded, reciprocal := foldToNearestRadial(diff)
	if !reciprocal && math.Abs(folded) < 90 {
		return DirectionTo
	}
	return DirectionFrom
}

// CDIDeflection returns the needle deflection in dots, from -10 (full left)
// to +10 (full right), with 2 degrees of deviation per dot. The deviation is
// measured against whichever of the selected radial or its reciprocal is
// nearer, so the needle centers on both the selected course and its
// reciprocal and saturates 20 degrees off either line.
func CDIDeflection(obs, bearingToStation float64) float64 {
	diff := SignedDifference(bearingToStation, obs)
	folded, _ := foldToNearestRadial(diff)
	dots := folded / 2.0
	return math.Max(-10, math.Min(10, dots))
}

// ComputeDisplay derives the full instrument display for an aircraft and a
// station. The result is recomputed from scratch on every call; nothing is
// cached between ticks.
func ComputeDisplay(aircraft Point, obs float64, station Station) DisplayState {
	bearing := Bearing(aircraft, station.Position)
	return DisplayState{
		StationID:  station.ID,
		Bearing:    bearing,
		Radial:     NormalizeDegrees(bearing + 180),
		Distance:   Distance(aircraft, station.Position),
		Direction:  ToFrom(obs, bearing),
		Deflection: CDIDeflection(obs, bearing),
	}
}
