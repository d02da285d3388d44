package vor

import "math"

// NavigationState owns the mutable session state: aircraft position and
// heading, the OBS setting, and the station registry with its active index.
// It is a plain value driven from a single logical thread; the Simulator
// provides the locking when commands arrive from other goroutines.
type NavigationState struct {
	aircraft Point
	heading  float64 // degrees, [0, 360)
	obs      float64 // degrees, [0, 360)
	stations []Station
	active   int

	defaultAircraft Point
	defaultHeading  float64
	defaultOBS      float64
}

// NewNavigationState creates a navigation state with the given session
// defaults. The station list must be non-empty; station 0 starts active.
func NewNavigationState(start Point, heading, obs float64, stations []Station) (*NavigationState, error) {
	if len(stations) == 0 {
		return nil, ErrNoStations
	}
	owned := make([]Station, len(stations))
	copy(owned, stations)

	heading = NormalizeDegrees(heading)
	obs = NormalizeDegrees(obs)
	return &NavigationState{
		aircraft:        start,
		heading:         heading,
		obs:             obs,
		stations:        owned,
		active:          0,
		defaultAircraft: start,
		defaultHeading:  heading,
		defaultOBS:      obs,
	}, nil
}

// ApplyDisplacement moves the aircraft by (dx, dy) scaled by speedScale and
// points the heading along the instantaneous displacement. A zero
// displacement is a no-op: position and heading are left untouched, so the
// heading holds the direction of the last nonzero movement. The aircraft is
// free to leave the visible grid.
func (n *NavigationState) ApplyDisplacement(dx, dy, speedScale float64) {
	if dx == 0 && dy == 0 {
		return
	}
	n.heading = NormalizeDegrees(math.Atan2(dx, -dy) * 180 / math.Pi)
	n.aircraft.X += dx * speedScale
	n.aircraft.Y += dy * speedScale
}

// SetOBS rotates the OBS setting by delta degrees. Any delta is accepted;
// the result wraps into [0, 360).
func (n *NavigationState) SetOBS(delta float64) {
	n.obs = NormalizeDegrees(n.obs + delta)
}

// SetActiveStation switches which station feeds the calculators. An index
// that does not name an existing station is rejected and the active station
// is left unchanged.
func (n *NavigationState) SetActiveStation(index int) error {
	if index < 0 || index >= len(n.stations) {
		return ErrStationIndexOutOfRange
	}
	n.active = index
	return nil
}

// Reset returns the aircraft position, heading, and OBS to their session
// defaults. The station list and active index are untouched.
func (n *NavigationState) Reset() {
	n.aircraft = n.defaultAircraft
	n.heading = n.defaultHeading
	n.obs = n.defaultOBS
}

// ActiveStation returns the station at the current active index. The driver
// reads it once per tick so that every derived value in a report comes from
// the same station.
func (n *NavigationState) ActiveStation() Station {
	return n.stations[n.active]
}

// ActiveIndex returns the index of the active station.
func (n *NavigationState) ActiveIndex() int {
	return n.active
}

// Stations returns a copy of the station registry.
func (n *NavigationState) Stations() []Station {
	out := make([]Station, len(n.stations))
	copy(out, n.stations)
	return out
}

// Aircraft returns the current aircraft position.
func (n *NavigationState) Aircraft() Point {
	return n.aircraft
}

// Heading returns the current aircraft heading in degrees.
func (n *NavigationState) Heading() float64 {
	return n.heading
}

// OBS returns the current OBS setting in degrees.
func (n *NavigationState) OBS() float64 {
	return n.obs
}

// setPosition places the aircraft directly; used by track replay.
func (n *NavigationState) setPosition(p Point) {
	n.aircraft = p
}

// setHeading sets the heading directly, normalized; used by track replay.
func (n *NavigationState) setHeading(h float64) {
	n.heading = NormalizeDegrees(h)
}

// Display computes the instrument display against the active station.
func (n *NavigationState) Display() DisplayState {
	return ComputeDisplay(n.aircraft, n.obs, n.ActiveStation())
}
