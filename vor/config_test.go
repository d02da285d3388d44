package vor

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.StartX != 10.0 || config.StartY != 10.0 {
		t.Errorf("Expected start (10, 10), got (%v, %v)", config.StartX, config.StartY)
	}
	if config.Speed != 0.7 {
		t.Errorf("Expected speed 0.7, got %v", config.Speed)
	}
	if config.TickRate != 50*time.Millisecond {
		t.Errorf("Expected tick rate 50ms, got %v", config.TickRate)
	}
	if config.BaudRate != 9600 {
		t.Errorf("Expected baud rate 9600, got %d", config.BaudRate)
	}
	if config.ReplaySpeed != 1.0 {
		t.Errorf("Expected replay speed 1.0, got %v", config.ReplaySpeed)
	}
	if len(config.Stations) != 2 {
		t.Fatalf("Expected 2 default stations, got %d", len(config.Stations))
	}
	if config.Stations[0].ID != "ALFA" || config.Stations[1].ID != "BRAVO" {
		t.Errorf("Unexpected default station IDs: %s, %s", config.Stations[0].ID, config.Stations[1].ID)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		expected error
	}{
		{
			name:     "Valid config",
			mutate:   func(c *Config) {},
			expected: nil,
		},
		{
			name:     "No stations",
			mutate:   func(c *Config) { c.Stations = nil },
			expected: ErrNoStations,
		},
		{
			name: "Duplicate station IDs",
			mutate: func(c *Config) {
				c.Stations = append(c.Stations, Station{ID: "ALFA", Position: Point{X: 20, Y: 80}})
			},
			expected: ErrDuplicateStationID,
		},
		{
			name:     "Speed too low",
			mutate:   func(c *Config) { c.Speed = 0.05 },
			expected: ErrInvalidSpeed,
		},
		{
			name:     "Speed too high",
			mutate:   func(c *Config) { c.Speed = 2.5 },
			expected: ErrInvalidSpeed,
		},
		{
			name:     "Speed at lower bound",
			mutate:   func(c *Config) { c.Speed = 0.1 },
			expected: nil,
		},
		{
			name:     "Speed at upper bound",
			mutate:   func(c *Config) { c.Speed = 2.0 },
			expected: nil,
		},
		{
			name:     "OBS negative",
			mutate:   func(c *Config) { c.OBS = -1 },
			expected: ErrInvalidOBS,
		},
		{
			name:     "OBS at 360",
			mutate:   func(c *Config) { c.OBS = 360 },
			expected: ErrInvalidOBS,
		},
		{
			name:     "Course at 360",
			mutate:   func(c *Config) { c.Course = 360 },
			expected: ErrInvalidCourse,
		},
		{
			name:     "Turbulence above 1",
			mutate:   func(c *Config) { c.Turbulence = 1.1 },
			expected: ErrInvalidTurbulence,
		},
		{
			name:     "Turbulence at 1",
			mutate:   func(c *Config) { c.Turbulence = 1.0 },
			expected: nil,
		},
		{
			name:     "Zero tick rate",
			mutate:   func(c *Config) { c.TickRate = 0 },
			expected: ErrInvalidTickRate,
		},
		{
			name:     "Negative tick rate",
			mutate:   func(c *Config) { c.TickRate = -time.Second },
			expected: ErrInvalidTickRate,
		},
		{
			name:     "Zero baud rate",
			mutate:   func(c *Config) { c.BaudRate = 0 },
			expected: ErrInvalidBaudRate,
		},
		{
			name:     "Zero replay speed",
			mutate:   func(c *Config) { c.ReplaySpeed = 0 },
			expected: ErrInvalidReplaySpeed,
		},
		{
			name:     "Negative replay speed",
			mutate:   func(c *Config) { c.ReplaySpeed = -1 },
			expected: ErrInvalidReplaySpeed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			err := config.Validate()
			if tt.expected == nil {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestDefaultStations(t *testing.T) {
	stations := DefaultStations()

	if len(stations) != 2 {
		t.Fatalf("Expected 2 stations, got %d", len(stations))
	}
	if stations[0] != (Station{ID: "ALFA", Position: Point{X: 50, Y: 50}}) {
		t.Errorf("Unexpected first station: %+v", stations[0])
	}
	if stations[1] != (Station{ID: "BRAVO", Position: Point{X: 75, Y: 25}}) {
		t.Errorf("Unexpected second station: %+v", stations[1])
	}
}
