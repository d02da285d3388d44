package vor

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InputFunc supplies one merged displacement vector per tick. Merging of
// input sources (keyboard, joystick, mouse) is the caller's responsibility;
// the simulator has no opinion on source priority.
type InputFunc func() (dx, dy float64)

// Simulator drives a NavigationState on a fixed tick: it samples a
// displacement, applies it, recomputes the instrument display against the
// active station, and emits sentences, track points, and reports.
type Simulator struct {
	mu          sync.RWMutex
	config      Config
	nav         *NavigationState
	sessionID   string
	input       InputFunc
	course      float64 // autopilot course with turbulence applied (degrees)
	groundSpeed float64 // grid units per second, derived per tick

	sentenceWriter io.Writer
	trackWriter    *TrackWriter

	// Replay mode fields
	replayPoints    []TrackPoint
	replayIndex     int
	replayStartTime time.Time
	replayCompleted bool

	// Control fields
	running        bool
	startTime      time.Time
	lastUpdateTime time.Time
	ctx            context.Context
	cancel         context.CancelFunc
	ticker         *time.Ticker
	callbacks      []func(Report)
}

// NewSimulator creates a new VOR simulator instance
func NewSimulator(config Config) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	nav, err := NewNavigationState(Point{X: config.StartX, Y: config.StartY}, 0, config.OBS, config.Stations)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sim := &Simulator{
		config:          config,
		nav:             nav,
		sessionID:       uuid.NewString(),
		course:          config.Course,
		startTime:       now,
		lastUpdateTime:  now,
		replayIndex:     0,
		replayStartTime: now,
		replayCompleted: false,
		running:         false,
		callbacks:       make([]func(Report), 0),
	}

	// Load track file for replay mode
	if config.ReplayFile != "" {
		points, err := ReadTrackFile(config.ReplayFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load replay file: %v", err)
		}
		sim.replayPoints = points

		// Set initial position from first track point
		if len(points) > 0 {
			nav.setPosition(Point{X: points[0].X, Y: points[0].Y})
			nav.setHeading(points[0].Heading)
		}
	}

	// Initialize track writer if recording is enabled
	if config.TrackEnabled && config.TrackFile != "" {
		trackWriter, err := NewTrackWriter(config.TrackFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create track writer: %v", err)
		}
		sim.trackWriter = trackWriter
	}

	return sim, nil
}

// SetSentenceWriter sets the writer for NMEA sentence output
func (s *Simulator) SetSentenceWriter(writer io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sentenceWriter = writer
}

// SetInputFunc attaches an input source sampled once per tick. When no input
// source is attached and no replay file is configured, the simulator flies
// the configured autopilot course.
func (s *Simulator) SetInputFunc(input InputFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = input
}

// AddCallback adds a callback function that will be called with each report
func (s *Simulator) AddCallback(callback func(Report)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, callback)
}

// SessionID returns the identifier stamped on this session's reports.
func (s *Simulator) SessionID() string {
	return s.sessionID
}

// Start starts the simulation
func (s *Simulator) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrSimulatorAlreadyRunning
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.ticker = time.NewTicker(s.config.TickRate)
	s.running = true
	s.startTime = time.Now()
	s.lastUpdateTime = s.startTime
	s.replayStartTime = s.startTime

	go s.run()
	return nil
}

// Stop stops the simulation
func (s *Simulator) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrSimulatorNotRunning
	}

	s.cancel()
	s.ticker.Stop()
	s.running = false

	// Close track writer if enabled
	if s.trackWriter != nil {
		s.trackWriter.Close()
	}

	return nil
}

// Run starts the simulation and blocks until it stops.
func (s *Simulator) Run() error {
	if err := s.Start(); err != nil {
		return err
	}
	s.mu.RLock()
	done := s.ctx.Done()
	s.mu.RUnlock()
	<-done
	return nil
}

// IsRunning returns whether the simulator is currently running
func (s *Simulator) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// RotateOBS rotates the OBS setting by delta degrees; the change feeds the
// next tick's display.
func (s *Simulator) RotateOBS(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.SetOBS(delta)
}

// SelectStation switches the active station. An out-of-range index is
// rejected and the selection is left unchanged.
func (s *Simulator) SelectStation(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.SetActiveStation(index)
}

// ResetNav returns the aircraft position, heading, and OBS to the session
// defaults. The station registry and active selection are untouched.
func (s *Simulator) ResetNav() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Reset()
}

// GetStatus returns the current simulator status
func (s *Simulator) GetStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var elapsedTime time.Duration
	if s.running {
		elapsedTime = time.Since(s.startTime)
	}

	return Status{
		SessionID:       s.sessionID,
		Running:         s.running,
		StartTime:       s.startTime,
		ElapsedTime:     elapsedTime,
		Snapshot:        s.snapshot(time.Now()),
		Display:         s.nav.Display(),
		Config:          s.config,
		ReplayIndex:     s.replayIndex,
		ReplayTotal:     len(s.replayPoints),
		ReplayCompleted: s.replayCompleted,
	}
}

// UpdateConfig updates the simulator configuration (can be called while
// running). The station registry is fixed for the session: station changes
// in newConfig are ignored.
func (s *Simulator) UpdateConfig(newConfig Config) error {
	if err := newConfig.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	oldRate := s.config.TickRate
	newConfig.Stations = s.nav.Stations()
	s.config = newConfig
	s.course = newConfig.Course

	// If tick rate changed and simulator is running, restart ticker
	if s.running && oldRate != newConfig.TickRate {
		s.ticker.Stop()
		s.ticker = time.NewTicker(newConfig.TickRate)
	}

	return nil
}

// run is the main simulation loop
func (s *Simulator) run() {
	defer func() {
		if s.trackWriter != nil {
			s.trackWriter.Close()
		}
	}()

	var durationTimer *time.Timer
	var durationChan <-chan time.Time
	if s.config.Duration > 0 {
		durationTimer = time.NewTimer(s.config.Duration)
		durationChan = durationTimer.C
		defer durationTimer.Stop()
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.ticker.C:
			s.update()
			s.emit()

			// Check if replay is completed and looping is disabled
			if s.config.ReplayFile != "" && !s.config.ReplayLoop && s.replayCompleted {
				s.Stop()
				return
			}
		case <-durationChan:
			s.Stop()
			return
		}
	}
}

// update advances the aircraft by one tick: sample the displacement, apply
// it, and leave the navigation state ready for the display recomputation.
func (s *Simulator) update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	tickSeconds := now.Sub(s.lastUpdateTime).Seconds()
	s.lastUpdateTime = now

	switch {
	case s.config.ReplayFile != "":
		s.updateReplayPosition()
	case s.input != nil:
		dx, dy := s.input()
		s.applyTick(dx, dy, tickSeconds)
	default:
		s.updateAutopilotCourse()
		courseRad := s.course * math.Pi / 180
		s.applyTick(math.Sin(courseRad), -math.Cos(courseRad), tickSeconds)
	}
}

// applyTick feeds one displacement vector to the kinematics and derives the
// ground speed from it.
func (s *Simulator) applyTick(dx, dy, tickSeconds float64) {
	s.nav.ApplyDisplacement(dx, dy, s.config.Speed)
	if tickSeconds > 0 {
		s.groundSpeed = math.Sqrt(dx*dx+dy*dy) * s.config.Speed / tickSeconds
	}
}

// updateAutopilotCourse applies turbulence wobble to the autopilot course
func (s *Simulator) updateAutopilotCourse() {
	var courseVariation float64

	if s.config.Turbulence == 0.0 {
		courseVariation = 0.0
	} else if s.config.Turbulence < 0.2 {
		courseVariation = 2.0
	} else if s.config.Turbulence < 0.7 {
		courseVariation = 5.0 + (s.config.Turbulence-0.2)*20.0
	} else {
		courseVariation = 15.0 + (s.config.Turbulence-0.7)*50.0
	}

	courseDelta := (rand.Float64() - 0.5) * 2 * courseVariation
	s.course = NormalizeDegrees(s.config.Course + courseDelta)
}

// snapshot captures the navigation state; callers hold at least a read lock.
func (s *Simulator) snapshot(timestamp time.Time) Snapshot {
	return Snapshot{
		Aircraft:      s.nav.Aircraft(),
		Heading:       s.nav.Heading(),
		OBS:           s.nav.OBS(),
		GroundSpeed:   s.groundSpeed,
		ActiveStation: s.nav.ActiveStation(),
		ActiveIndex:   s.nav.ActiveIndex(),
		Stations:      s.nav.Stations(),
		Timestamp:     timestamp,
	}
}

// emit recomputes the display, writes sentences and the track log, and
// notifies callbacks.
func (s *Simulator) emit() {
	timestamp := time.Now()

	s.mu.Lock()
	display := s.nav.Display()
	snapshot := s.snapshot(timestamp)
	sentences := s.generateSentences(snapshot, display, timestamp)

	if s.trackWriter != nil {
		s.trackWriter.AddPoint(snapshot.Aircraft, snapshot.Heading, timestamp)

		// Write to file periodically
		if s.trackWriter.PointCount()%10 == 0 {
			s.trackWriter.WriteToFile()
		}
	}

	writer := s.sentenceWriter
	callbacks := s.callbacks
	s.mu.Unlock()

	if writer != nil {
		for _, sentence := range sentences {
			fmt.Fprint(writer, sentence)
		}
	}

	report := Report{
		SessionID: s.sessionID,
		Sentences: sentences,
		Snapshot:  snapshot,
		Display:   display,
		Timestamp: timestamp,
	}

	for _, callback := range callbacks {
		go callback(report) // Call async to avoid blocking
	}
}
