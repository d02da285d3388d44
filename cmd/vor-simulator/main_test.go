package main

import (
	"testing"

	"github.com/sirll0i/Vor-Indicator/vor"
)

func TestParseStations(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		expected []vor.Station
		wantErr  bool
	}{
		{
			name: "Single station",
			spec: "ALFA:50:50",
			expected: []vor.Station{
				{ID: "ALFA", Position: vor.Point{X: 50, Y: 50}},
			},
		},
		{
			name: "Multiple stations",
			spec: "ALFA:50:50,BRAVO:75:25",
			expected: []vor.Station{
				{ID: "ALFA", Position: vor.Point{X: 50, Y: 50}},
				{ID: "BRAVO", Position: vor.Point{X: 75, Y: 25}},
			},
		},
		{
			name: "Whitespace and trailing comma tolerated",
			spec: " ALFA:50:50 , BRAVO:75:25 ,",
			expected: []vor.Station{
				{ID: "ALFA", Position: vor.Point{X: 50, Y: 50}},
				{ID: "BRAVO", Position: vor.Point{X: 75, Y: 25}},
			},
		},
		{
			name: "Fractional coordinates",
			spec: "ALFA:12.5:87.5",
			expected: []vor.Station{
				{ID: "ALFA", Position: vor.Point{X: 12.5, Y: 87.5}},
			},
		},
		{
			name:    "Missing coordinate",
			spec:    "ALFA:50",
			wantErr: true,
		},
		{
			name:    "Non-numeric x",
			spec:    "ALFA:abc:50",
			wantErr: true,
		},
		{
			name:    "Non-numeric y",
			spec:    "ALFA:50:xyz",
			wantErr: true,
		},
		{
			name:    "Empty spec",
			spec:    "",
			wantErr: true,
		},
		{
			name:    "Only separators",
			spec:    ", ,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stations, err := parseStations(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseStations(%q) succeeded, want error", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseStations(%q) failed: %v", tt.spec, err)
			}
			if len(stations) != len(tt.expected) {
				t.Fatalf("parseStations(%q) returned %d stations, want %d", tt.spec, len(stations), len(tt.expected))
			}
			for i, want := range tt.expected {
				if stations[i] != want {
					t.Errorf("Station %d = %+v, want %+v", i, stations[i], want)
				}
			}
		})
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("VOR_TEST_STRING", "/dev/ttyUSB0")

	if got := envOr("VOR_TEST_STRING", "fallback"); got != "/dev/ttyUSB0" {
		t.Errorf("envOr with set variable = %q, want /dev/ttyUSB0", got)
	}
	if got := envOr("VOR_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("envOr with unset variable = %q, want fallback", got)
	}
}

func TestEnvIntOr(t *testing.T) {
	t.Setenv("VOR_TEST_INT", "4800")
	t.Setenv("VOR_TEST_BAD_INT", "not-a-number")

	if got := envIntOr("VOR_TEST_INT", 9600); got != 4800 {
		t.Errorf("envIntOr with set variable = %d, want 4800", got)
	}
	if got := envIntOr("VOR_TEST_UNSET", 9600); got != 9600 {
		t.Errorf("envIntOr with unset variable = %d, want 9600", got)
	}
	if got := envIntOr("VOR_TEST_BAD_INT", 9600); got != 9600 {
		t.Errorf("envIntOr with malformed variable = %d, want fallback 9600", got)
	}
}

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}

	if Version != "dev" {
		t.Logf("Version set via ldflags: %s", Version)
	}
}
