package vor

import "errors"

// Common errors returned by the VOR simulator
var (
	ErrNoStations              = errors.New("at least one station is required")
	ErrStationIndexOutOfRange  = errors.New("station index out of range")
	ErrInvalidSpeed            = errors.New("speed must be between 0.1 and 2.0")
	ErrInvalidOBS              = errors.New("obs must be between 0.0 and 359.9 degrees")
	ErrInvalidCourse           = errors.New("course must be between 0.0 and 359.9 degrees")
	ErrInvalidTurbulence       = errors.New("turbulence must be between 0.0 and 1.0")
	ErrInvalidTickRate         = errors.New("tick rate must be positive")
	ErrInvalidBaudRate         = errors.New("baud rate must be positive")
	ErrInvalidReplaySpeed      = errors.New("replay speed must be positive")
	ErrDuplicateStationID      = errors.New("station ids must be unique")
	ErrSimulatorNotRunning     = errors.New("simulator is not running")
	ErrSimulatorAlreadyRunning = errors.New("simulator is already running")
)
