package vor

import (
	"math"
	"time"
)

// updateReplayPosition updates position based on recorded track data.
// Callers hold the write lock.
func (s *Simulator) updateReplayPosition() {
	if len(s.replayPoints) == 0 {
		return
	}

	// Defensive check for invalid replay speed
	if s.config.ReplaySpeed <= 0 {
		s.config.ReplaySpeed = 1.0
	}

	now := time.Now()
	elapsedTime := now.Sub(s.replayStartTime)

	// Apply replay speed multiplier
	adjustedTime := time.Duration(float64(elapsedTime) * s.config.ReplaySpeed)

	// Check if timestamps are sequential for time-based progression
	useTimestamps := s.hasSequentialTimestamps()

	if useTimestamps {
		// Time-based progression using track timestamps
		targetTime := s.replayPoints[0].Time.Add(adjustedTime)

		// Find the track point that should be active at this time
		newIndex := 0
		for i := 0; i < len(s.replayPoints); i++ {
			if targetTime.After(s.replayPoints[i].Time) || targetTime.Equal(s.replayPoints[i].Time) {
				newIndex = i
			} else {
				break
			}
		}

		// If target time is past the last timestamp, we've completed the replay
		if targetTime.After(s.replayPoints[len(s.replayPoints)-1].Time) {
			newIndex = len(s.replayPoints) // This will trigger completion check
		}

		s.replayIndex = newIndex
	} else {
		// Index-based progression when timestamps are not sequential
		// Progress through points at a steady rate (1 point per second at 1x speed)
		pointInterval := time.Duration(float64(time.Second) / s.config.ReplaySpeed)
		pointsSinceStart := int(elapsedTime / pointInterval)

		if s.config.ReplayLoop {
			s.replayIndex = pointsSinceStart % len(s.replayPoints)
		} else {
			s.replayIndex = pointsSinceStart
		}
	}

	// If we've reached the end, handle completion/looping
	if s.replayIndex >= len(s.replayPoints) {
		s.replayCompleted = true
		if s.config.ReplayLoop {
			// Loop back to start if looping is enabled
			s.replayIndex = 0
			s.replayStartTime = now
		}
		return
	}

	// Update current position from track point
	currentPoint := s.replayPoints[s.replayIndex]
	s.nav.setPosition(Point{X: currentPoint.X, Y: currentPoint.Y})
	s.nav.setHeading(currentPoint.Heading)

	// Derive heading and ground speed from the next point if available
	if s.replayIndex < len(s.replayPoints)-1 {
		nextPoint := s.replayPoints[s.replayIndex+1]
		dx := nextPoint.X - currentPoint.X
		dy := nextPoint.Y - currentPoint.Y

		var timeDiff float64
		if useTimestamps {
			timeDiff = nextPoint.Time.Sub(currentPoint.Time).Seconds()
		} else {
			// Use a fixed time interval for non-sequential timestamps
			timeDiff = 1.0 // 1 second between points
		}

		if timeDiff > 0 && (dx != 0 || dy != 0) {
			s.groundSpeed = math.Sqrt(dx*dx+dy*dy) / timeDiff

			// Heading follows the displacement toward the next point, using
			// the same convention as the kinematics
			s.nav.setHeading(math.Atan2(dx, -dy) * 180 / math.Pi)
		}
	}
}

// hasSequentialTimestamps checks if the replay points have sequential timestamps
func (s *Simulator) hasSequentialTimestamps() bool {
	if len(s.replayPoints) < 2 {
		return false
	}

	// Check if timestamps are generally increasing
	for i := 0; i < len(s.replayPoints)-1; i++ {
		if s.replayPoints[i+1].Time.Before(s.replayPoints[i].Time) {
			return false
		}
	}
	return true
}
