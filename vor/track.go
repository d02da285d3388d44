package vor

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"
)

// TrackLog represents the root track document structure. The format mirrors
// GPX but carries grid coordinates instead of lat/lon.
type TrackLog struct {
	XMLName xml.Name `xml:"vortrack"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Track   Track    `xml:"trk"`
	Routes  []Route  `xml:"rte"`
}

// Track represents a recorded flight track
type Track struct {
	Name         string       `xml:"name"`
	TrackSegment TrackSegment `xml:"trkseg"`
}

// TrackSegment represents a segment of a flight track
type TrackSegment struct {
	TrackPoints []TrackPoint `xml:"trkpt"`
}

// Route represents a scripted route
type Route struct {
	Name        string       `xml:"name"`
	RoutePoints []RoutePoint `xml:"rtept"`
}

// RoutePoint represents a single point in a scripted route
type RoutePoint struct {
	X       float64   `xml:"x,attr"`
	Y       float64   `xml:"y,attr"`
	Heading float64   `xml:"hdg"`
	Time    time.Time `xml:"time"`
}

// TrackWriter handles writing flight data to a track file
type TrackWriter struct {
	filename string
	log      *TrackLog
	file     *os.File
}

// NewTrackWriter creates a new track writer
func NewTrackWriter(filename string) (*TrackWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create track file %s: %v", filename, err)
	}

	trackLog := &TrackLog{
		Version: "1.0",
		Creator: "vor-indicator",
		Track: Track{
			Name: "VOR Simulator Track",
			TrackSegment: TrackSegment{
				TrackPoints: []TrackPoint{},
			},
		},
	}

	writer := &TrackWriter{
		filename: filename,
		log:      trackLog,
		file:     file,
	}

	return writer, nil
}

// AddPoint adds a new track point to the track file
func (w *TrackWriter) AddPoint(position Point, heading float64, timestamp time.Time) {
	trackPoint := TrackPoint{
		X:       position.X,
		Y:       position.Y,
		Heading: heading,
		Time:    timestamp.UTC(),
	}

	w.log.Track.TrackSegment.TrackPoints = append(w.log.Track.TrackSegment.TrackPoints, trackPoint)
}

// WriteToFile writes the current track data to the file
func (w *TrackWriter) WriteToFile() error {
	// Seek to the beginning of the file
	_, err := w.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("failed to seek to beginning of file: %v", err)
	}

	// Truncate the file to remove any existing content
	err = w.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("failed to truncate file: %v", err)
	}

	// Write XML header
	_, err = w.file.WriteString(xml.Header)
	if err != nil {
		return fmt.Errorf("failed to write XML header: %v", err)
	}

	// Marshal and write the track data
	encoder := xml.NewEncoder(w.file)
	encoder.Indent("", "  ")
	err = encoder.Encode(w.log)
	if err != nil {
		return fmt.Errorf("failed to encode track data: %v", err)
	}

	// Flush to ensure data is written
	err = w.file.Sync()
	if err != nil {
		return fmt.Errorf("failed to sync file: %v", err)
	}

	return nil
}

// Close closes the track file
func (w *TrackWriter) Close() error {
	if w.file != nil {
		// Write final data before closing
		err := w.WriteToFile()
		if err != nil {
			w.file.Close()
			return err
		}
		return w.file.Close()
	}
	return nil
}

// PointCount returns the number of track points currently stored
func (w *TrackWriter) PointCount() int {
	return len(w.log.Track.TrackSegment.TrackPoints)
}

// ReadTrackFile reads and parses a track file, returning the track points
func ReadTrackFile(filename string) ([]TrackPoint, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open track file %s: %v", filename, err)
	}
	defer file.Close()

	var trackLog TrackLog
	decoder := xml.NewDecoder(file)
	err = decoder.Decode(&trackLog)
	if err != nil {
		return nil, fmt.Errorf("failed to parse track file %s: %v", filename, err)
	}

	var points []TrackPoint

	// Try to get points from tracks first
	if len(trackLog.Track.TrackSegment.TrackPoints) > 0 {
		points = trackLog.Track.TrackSegment.TrackPoints
	} else if len(trackLog.Routes) > 0 && len(trackLog.Routes[0].RoutePoints) > 0 {
		// Convert route points to track points
		routePoints := trackLog.Routes[0].RoutePoints
		points = make([]TrackPoint, len(routePoints))
		for i, rp := range routePoints {
			points[i] = TrackPoint{
				X:       rp.X,
				Y:       rp.Y,
				Heading: rp.Heading,
				Time:    rp.Time,
			}
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no track points or route points found in track file %s", filename)
	}

	return points, nil
}
