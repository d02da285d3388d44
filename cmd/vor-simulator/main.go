package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.bug.st/serial"

	"github.com/sirll0i/Vor-Indicator/vor"
)

// Version information - populated at build time via ldflags
var (
	Version   = "dev"     // Will be set to git tag if available, otherwise "dev"
	Commit    = "unknown" // Will be set to git commit hash
	BuildDate = "unknown" // Will be set to build timestamp
)

func main() {
	var config vor.Config
	var showVersion bool
	var stationsFlag string

	// A .env file can predefine the VOR_* environment overrides
	godotenv.Load()

	// Define command line flags
	flag.BoolVar(&showVersion, "version", false, "Show version information and exit")
	flag.Float64Var(&config.StartX, "start-x", 10.0, "Initial aircraft x position (grid units, 0-100)")
	flag.Float64Var(&config.StartY, "start-y", 10.0, "Initial aircraft y position (grid units, 0-100)")
	flag.Float64Var(&config.OBS, "obs", 0.0, "Initial OBS setting in degrees (0-359)")
	flag.Float64Var(&config.Speed, "speed", 0.7, "Aircraft speed scale per tick (0.1-2.0)")
	flag.Float64Var(&config.Course, "course", 0.0, "Autopilot course in degrees (0-359)")
	flag.Float64Var(&config.Turbulence, "turbulence", 0.0, "Autopilot course wobble factor (0.0=stable, 1.0=high)")
	flag.StringVar(&stationsFlag, "stations", "", "Station registry as ID:X:Y pairs (e.g. ALFA:50:50,BRAVO:75:25)")
	flag.DurationVar(&config.TickRate, "rate", 50*time.Millisecond, "Simulation tick rate")
	flag.StringVar(&config.SerialPort, "serial", envOr("VOR_SERIAL_PORT", ""), "Serial port for sentence output (e.g., /dev/ttyUSB0, COM1)")
	flag.IntVar(&config.BaudRate, "baud", envIntOr("VOR_BAUD_RATE", 9600), "Serial port baud rate")
	flag.BoolVar(&config.Quiet, "quiet", false, "Suppress info messages (only output sentence data)")
	flag.BoolVar(&config.TrackEnabled, "track", false, "Record a track file with timestamp-based filename")
	flag.DurationVar(&config.Duration, "duration", 0, "How long to run the simulation (e.g., 30s, 5m, 1h). Default is indefinite")
	flag.StringVar(&config.ReplayFile, "replay", "", "Track file to replay instead of autopilot flight (e.g., flight.xml)")
	flag.Float64Var(&config.ReplaySpeed, "replay-speed", 1.0, "Replay speed multiplier (1.0=real-time, 2.0=2x speed, 0.5=half speed)")
	flag.BoolVar(&config.ReplayLoop, "replay-loop", false, "Loop the track replay continuously (default: stop after one pass)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nVOR Receiver Simulator\n")
		fmt.Fprintf(os.Stderr, "Simulates a VOR receiver outputting navigation sentences with configurable parameters.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	// Handle version flag
	if showVersion {
		if Version != "dev" {
			fmt.Printf("v%s\n", Version)
		} else {
			fmt.Printf("%s\n", Commit)
		}
		os.Exit(0)
	}

	// Resolve the station registry: flag, then environment, then defaults
	if stationsFlag == "" {
		stationsFlag = os.Getenv("VOR_STATIONS")
	}
	if stationsFlag != "" {
		stations, err := parseStations(stationsFlag)
		if err != nil {
			log.Fatalf("Invalid -stations value: %v", err)
		}
		config.Stations = stations
	} else {
		config.Stations = vor.DefaultStations()
	}

	// Validate input parameters
	if config.Speed < 0.1 || config.Speed > 2.0 {
		log.Fatal("Speed must be between 0.1 and 2.0")
	}

	if config.OBS < 0.0 || config.OBS >= 360.0 {
		log.Fatal("OBS must be between 0.0 and 359.9 degrees")
	}

	if config.Course < 0.0 || config.Course >= 360.0 {
		log.Fatal("Course must be between 0.0 and 359.9 degrees")
	}

	if config.Turbulence < 0.0 || config.Turbulence > 1.0 {
		log.Fatal("Turbulence must be between 0.0 and 1.0")
	}

	if config.TickRate <= 0 {
		log.Fatal("Tick rate must be positive")
	}

	if config.BaudRate <= 0 {
		log.Fatal("Baud rate must be positive")
	}

	if config.ReplaySpeed <= 0.0 {
		log.Fatal("Replay speed must be positive")
	}

	// Handle track filename generation and validation
	if config.TrackEnabled {
		// Require duration when track recording is enabled
		if config.Duration <= 0 {
			log.Fatal("Duration greater than 0 must be specified when using -track flag (e.g., -duration 30s)")
		}
		// Always generate timestamp-based filename when -track flag is used
		config.TrackFile = fmt.Sprintf("%s.xml", time.Now().Format("20060102_150405"))
	}

	// Setup output writer (serial port or stdout)
	var sentenceWriter io.Writer = os.Stdout
	var serialPort serial.Port

	if config.SerialPort != "" {
		mode := &serial.Mode{
			BaudRate: config.BaudRate,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		}

		var err error
		serialPort, err = serial.Open(config.SerialPort, mode)
		if err != nil {
			log.Fatalf("Failed to open serial port %s: %v", config.SerialPort, err)
		}
		defer serialPort.Close()
		sentenceWriter = serialPort

		if !config.Quiet {
			fmt.Fprintf(os.Stderr, "Opened serial port: %s at %d baud\n", config.SerialPort, config.BaudRate)
		}
	}

	// Log to stderr so it doesn't interfere with sentence output
	if !config.Quiet {
		if config.ReplayFile != "" {
			fmt.Fprintf(os.Stderr, "Starting VOR replay from: %s\n", config.ReplayFile)
			fmt.Fprintf(os.Stderr, "Replay speed: %.1fx\n", config.ReplaySpeed)
		} else {
			fmt.Fprintf(os.Stderr, "Starting VOR simulator...\n")
			fmt.Fprintf(os.Stderr, "Initial position: %.1f, %.1f (grid units)\n", config.StartX, config.StartY)
			fmt.Fprintf(os.Stderr, "OBS setting: %.1f degrees\n", config.OBS)
			fmt.Fprintf(os.Stderr, "Autopilot course: %.1f degrees\n", config.Course)
			fmt.Fprintf(os.Stderr, "Turbulence: %.1f (%.0f%% wobble)\n", config.Turbulence, config.Turbulence*100)
			fmt.Fprintf(os.Stderr, "Speed scale: %.1f\n", config.Speed)
		}
		for i, st := range config.Stations {
			marker := " "
			if i == 0 {
				marker = "*"
			}
			fmt.Fprintf(os.Stderr, "Station %s %s at (%.1f, %.1f)\n", marker, st.ID, st.Position.X, st.Position.Y)
		}
		fmt.Fprintf(os.Stderr, "Tick rate: %v\n", config.TickRate)
		if config.SerialPort != "" {
			fmt.Fprintf(os.Stderr, "Sentence output: %s (%d baud)\n", config.SerialPort, config.BaudRate)
		} else {
			fmt.Fprintf(os.Stderr, "Sentence output: stdout\n")
		}
		fmt.Fprintf(os.Stderr, "\nPress Ctrl+C to stop\n\n")
	}

	// Start VOR simulation
	simulator, err := vor.NewSimulator(config)
	if err != nil {
		log.Fatalf("Failed to create VOR simulator: %v", err)
	}
	simulator.SetSentenceWriter(sentenceWriter)

	// Show track file info if enabled
	if config.TrackEnabled && !config.Quiet {
		fmt.Fprintf(os.Stderr, "Track output: %s\n", config.TrackFile)
	}

	if err := simulator.Run(); err != nil {
		log.Fatalf("Simulator failed: %v", err)
	}
}

// parseStations parses a comma-separated list of ID:X:Y station specs.
func parseStations(spec string) ([]vor.Station, error) {
	var stations []vor.Station
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("station %q must be ID:X:Y", entry)
		}
		x, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("station %q has invalid x: %v", entry, err)
		}
		y, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("station %q has invalid y: %v", entry, err)
		}
		stations = append(stations, vor.Station{ID: parts[0], Position: vor.Point{X: x, Y: y}})
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("no stations in %q", spec)
	}
	return stations, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
