package vor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTrackWriterRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test_track.xml")

	writer, err := NewTrackWriter(filename)
	if err != nil {
		t.Fatalf("Failed to create track writer: %v", err)
	}

	base := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	writer.AddPoint(Point{X: 10, Y: 10}, 0, base)
	writer.AddPoint(Point{X: 10.7, Y: 10}, 90, base.Add(time.Second))
	writer.AddPoint(Point{X: 11.4, Y: 10}, 90, base.Add(2*time.Second))

	if writer.PointCount() != 3 {
		t.Errorf("Expected 3 points, got %d", writer.PointCount())
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close track writer: %v", err)
	}

	points, err := ReadTrackFile(filename)
	if err != nil {
		t.Fatalf("Failed to read track file: %v", err)
	}

	if len(points) != 3 {
		t.Fatalf("Expected 3 points after round trip, got %d", len(points))
	}
	if points[0].X != 10 || points[0].Y != 10 {
		t.Errorf("First point = (%v, %v), want (10, 10)", points[0].X, points[0].Y)
	}
	if points[1].Heading != 90 {
		t.Errorf("Second point heading = %v, want 90", points[1].Heading)
	}
	if !points[2].Time.Equal(base.Add(2 * time.Second)) {
		t.Errorf("Third point time = %v, want %v", points[2].Time, base.Add(2*time.Second))
	}
}

func TestTrackWriterFileFormat(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "format_track.xml")

	writer, err := NewTrackWriter(filename)
	if err != nil {
		t.Fatalf("Failed to create track writer: %v", err)
	}
	writer.AddPoint(Point{X: 50, Y: 50}, 180, time.Now())
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close track writer: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read track file: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "<?xml") {
		t.Error("Track file missing XML header")
	}
	if !strings.Contains(content, "<vortrack") {
		t.Error("Track file missing vortrack root element")
	}
	if !strings.Contains(content, `creator="vor-indicator"`) {
		t.Error("Track file missing creator attribute")
	}
	if !strings.Contains(content, `x="50"`) || !strings.Contains(content, `y="50"`) {
		t.Error("Track point coordinates not written as attributes")
	}
}

func TestTrackWriterIncrementalWrites(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "incremental_track.xml")

	writer, err := NewTrackWriter(filename)
	if err != nil {
		t.Fatalf("Failed to create track writer: %v", err)
	}
	defer writer.Close()

	// Each WriteToFile rewrites the whole document, so a second write after
	// adding points must not corrupt or duplicate earlier ones
	writer.AddPoint(Point{X: 1, Y: 1}, 0, time.Now())
	if err := writer.WriteToFile(); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	writer.AddPoint(Point{X: 2, Y: 2}, 45, time.Now())
	if err := writer.WriteToFile(); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	points, err := ReadTrackFile(filename)
	if err != nil {
		t.Fatalf("Failed to read track file: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("Expected 2 points, got %d", len(points))
	}
}

func TestReadTrackFileRouteFallback(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "route_track.xml")

	routeXML := `<?xml version="1.0" encoding="UTF-8"?>
<vortrack version="1.0" creator="vor-indicator">
  <rte>
    <name>Scripted Route</name>
    <rtept x="10" y="10">
      <hdg>45</hdg>
      <time>2025-06-15T10:30:00Z</time>
    </rtept>
    <rtept x="20" y="20">
      <hdg>45</hdg>
      <time>2025-06-15T10:30:10Z</time>
    </rtept>
  </rte>
</vortrack>`

	if err := os.WriteFile(filename, []byte(routeXML), 0644); err != nil {
		t.Fatalf("Failed to write route file: %v", err)
	}

	points, err := ReadTrackFile(filename)
	if err != nil {
		t.Fatalf("Failed to read route file: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Expected 2 points from route fallback, got %d", len(points))
	}
	if points[0].X != 10 || points[0].Heading != 45 {
		t.Errorf("Unexpected first route point: %+v", points[0])
	}
}

func TestReadTrackFileEmpty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty_track.xml")

	emptyXML := `<?xml version="1.0" encoding="UTF-8"?>
<vortrack version="1.0" creator="vor-indicator">
  <trk>
    <name>Empty</name>
    <trkseg></trkseg>
  </trk>
</vortrack>`

	if err := os.WriteFile(filename, []byte(emptyXML), 0644); err != nil {
		t.Fatalf("Failed to write empty file: %v", err)
	}

	_, err := ReadTrackFile(filename)
	if err == nil {
		t.Fatal("Expected error for track file with no points")
	}
	if !strings.Contains(err.Error(), "no track points") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestReadTrackFileMissing(t *testing.T) {
	_, err := ReadTrackFile(filepath.Join(t.TempDir(), "does_not_exist.xml"))
	if err == nil {
		t.Fatal("Expected error for missing track file")
	}
}
