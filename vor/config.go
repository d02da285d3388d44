package vor

import "time"

// Config holds all configuration options for the VOR simulator
type Config struct {
	StartX       float64       // initial aircraft x on the 0-100 grid
	StartY       float64       // initial aircraft y on the 0-100 grid
	OBS          float64       // initial OBS setting in degrees (0-359)
	Speed        float64       // displacement scale per tick (0.1-2.0)
	Course       float64       // autopilot course in degrees (0-359)
	Turbulence   float64       // autopilot course wobble factor (0.0-1.0)
	Stations     []Station     // station registry; index 0 starts active
	TickRate     time.Duration // update cadence
	SerialPort   string        // Serial port device (e.g., /dev/ttyUSB0, COM1)
	BaudRate     int           // Serial baud rate
	Quiet        bool          // Suppress informational messages
	TrackEnabled bool          // Enable track log with timestamp filename
	TrackFile    string        // Generated track filename (internal use)
	Duration     time.Duration // How long to run the simulation (0 = run indefinitely)
	ReplayFile   string        // Track file to replay (empty = autopilot flight)
	ReplaySpeed  float64       // Replay speed multiplier (1.0 = real-time)
	ReplayLoop   bool          // Whether to loop the replay
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		StartX:      10.0,
		StartY:      10.0,
		OBS:         0.0,
		Speed:       0.7,
		Course:      0.0,
		Turbulence:  0.0,
		Stations:    DefaultStations(),
		TickRate:    50 * time.Millisecond,
		BaudRate:    9600,
		Quiet:       false,
		Duration:    0,
		ReplaySpeed: 1.0,
		ReplayLoop:  false,
	}
}

// DefaultStations returns the built-in two-station registry.
func DefaultStations() []Station {
	return []Station{
		{ID: "ALFA", Position: Point{X: 50, Y: 50}},
		{ID: "BRAVO", Position: Point{X: 75, Y: 25}},
	}
}

// Validate checks if the configuration is valid and returns an error if not
func (c *Config) Validate() error {
	if len(c.Stations) == 0 {
		return ErrNoStations
	}
	seen := make(map[string]bool, len(c.Stations))
	for _, st := range c.Stations {
		if seen[st.ID] {
			return ErrDuplicateStationID
		}
		seen[st.ID] = true
	}
	if c.Speed < 0.1 || c.Speed > 2.0 {
		return ErrInvalidSpeed
	}
	if c.OBS < 0.0 || c.OBS >= 360.0 {
		return ErrInvalidOBS
	}
	if c.Course < 0.0 || c.Course >= 360.0 {
		return ErrInvalidCourse
	}
	if c.Turbulence < 0.0 || c.Turbulence > 1.0 {
		return ErrInvalidTurbulence
	}
	if c.TickRate <= 0 {
		return ErrInvalidTickRate
	}
	if c.BaudRate <= 0 {
		return ErrInvalidBaudRate
	}
	if c.ReplaySpeed <= 0.0 {
		return ErrInvalidReplaySpeed
	}
	return nil
}
