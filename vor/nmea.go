package vor

import (
	"fmt"
	"time"
)

// calculateChecksum calculates the NMEA checksum for a sentence
func calculateChecksum(sentence string) string {
	var checksum byte
	for i := 1; i < len(sentence); i++ { // Skip the '$' character
		checksum ^= sentence[i]
	}
	return fmt.Sprintf("%02X", checksum)
}

// formatNMEA formats a complete NMEA sentence with checksum
func formatNMEA(sentence string) string {
	checksum := calculateChecksum(sentence)
	return fmt.Sprintf("%s*%s\r\n", sentence, checksum)
}

// generateHDT generates an HDT (Heading - True) sentence
func generateHDT(heading float64) string {
	sentence := fmt.Sprintf("$INHDT,%05.1f,T", heading)
	return formatNMEA(sentence)
}

// generateBOD generates a BOD (Bearing - Origin to Destination) sentence
// carrying the selected course. The magnetic field is left empty; the grid
// has no magnetic variation. Destination is the active station; the origin
// waypoint has no equivalent here and stays empty.
func generateBOD(obs float64, stationID string) string {
	sentence := fmt.Sprintf("$INBOD,%05.1f,T,,M,%s,", obs, stationID)
	return formatNMEA(sentence)
}

// generateVORB generates the proprietary station geometry sentence:
// timestamp, station ID, bearing to the station, radial from the station,
// and distance in NM (grid units by convention).
func generateVORB(display DisplayState, timestamp time.Time) string {
	timeStr := timestamp.UTC().Format("150405") // HHMMSS
	sentence := fmt.Sprintf("$PVORB,%s,%s,%05.1f,%05.1f,%.2f",
		timeStr, display.StationID, display.Bearing, display.Radial, display.Distance)
	return formatNMEA(sentence)
}

// generateVORC generates the proprietary CDI sentence: OBS setting, TO/FROM
// flag, and needle deflection in dots (negative = left).
func generateVORC(obs float64, display DisplayState) string {
	sentence := fmt.Sprintf("$PVORC,%05.1f,%s,%.1f", obs, display.Direction, display.Deflection)
	return formatNMEA(sentence)
}

// generateSentences produces the per-tick sentence set for one report.
func (s *Simulator) generateSentences(snapshot Snapshot, display DisplayState, timestamp time.Time) []string {
	return []string{
		generateHDT(snapshot.Heading),
		generateBOD(snapshot.OBS, display.StationID),
		generateVORB(display, timestamp),
		generateVORC(snapshot.OBS, display),
	}
}
