package vor

import "time"

// Grid bounds of the simulated area. Positions are abstract grid units with
// no real-world projection; the aircraft may fly beyond these bounds.
const (
	GridMin = 0.0
	GridMax = 100.0
)

// Point is a 2-D coordinate on the abstract grid.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Station is a VOR ground station. Stations are immutable once created;
// only the navigation state's active-station index changes.
type Station struct {
	ID       string `json:"id"`
	Position Point  `json:"position"`
}

// DisplayState holds the derived instrument readings for one station. It is
// produced fresh each time it is requested and never stored.
type DisplayState struct {
	StationID  string    `json:"station_id"`
	Bearing    float64   `json:"bearing"`    // degrees, aircraft to station
	Radial     float64   `json:"radial"`     // degrees, station to aircraft
	Distance   float64   `json:"distance"`   // NM (grid units)
	Direction  Direction `json:"direction"`  // TO or FROM
	Deflection float64   `json:"deflection"` // dots, -10..+10
}

// TrackPoint is a recorded aircraft position in a track log.
type TrackPoint struct {
	X       float64   `xml:"x,attr"`
	Y       float64   `xml:"y,attr"`
	Heading float64   `xml:"hdg"`
	Time    time.Time `xml:"time"`
}

// Snapshot captures the mutable navigation state at one instant.
type Snapshot struct {
	Aircraft      Point     `json:"aircraft"`
	Heading       float64   `json:"heading"`      // degrees
	OBS           float64   `json:"obs"`          // degrees
	GroundSpeed   float64   `json:"ground_speed"` // grid units per second
	ActiveStation Station   `json:"active_station"`
	ActiveIndex   int       `json:"active_index"`
	Stations      []Station `json:"stations"`
	Timestamp     time.Time `json:"timestamp"`
}

// Status represents the current simulator status.
type Status struct {
	SessionID       string        `json:"session_id"`
	Running         bool          `json:"running"`
	StartTime       time.Time     `json:"start_time,omitempty"`
	ElapsedTime     time.Duration `json:"elapsed_time"`
	Snapshot        Snapshot      `json:"snapshot"`
	Display         DisplayState  `json:"display"`
	Config          Config        `json:"config"`
	ReplayIndex     int           `json:"replay_index,omitempty"`
	ReplayTotal     int           `json:"replay_total,omitempty"`
	ReplayCompleted bool          `json:"replay_completed,omitempty"`
}

// Report is the per-tick output delivered to callbacks and the sentence
// writer.
type Report struct {
	SessionID string       `json:"session_id"`
	Sentences []string     `json:"sentences"`
	Snapshot  Snapshot     `json:"snapshot"`
	Display   DisplayState `json:"display"`
	Timestamp time.Time    `json:"timestamp"`
}
