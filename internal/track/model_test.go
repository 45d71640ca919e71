package track

import (
	"math"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	points := []Point{
		{Timestamp: start, X: 0, Y: 0, Z: 1},
		{Timestamp: start.Add(time.Second), X: 3, Y: 4, Z: 1},
		{Timestamp: start.Add(2 * time.Second), X: 3, Y: 4, Z: 3},
	}

	s := Summarize(points)

	if s.Points != 3 {
		t.Errorf("Expected 3 points, got %d", s.Points)
	}
	if math.Abs(s.PathLength-7) > 1e-9 {
		t.Errorf("Expected path length 7, got %f", s.PathLength)
	}
	if s.Duration() != 2*time.Second {
		t.Errorf("Expected duration 2s, got %s", s.Duration())
	}

	want := Bounds{MinX: 0, MaxX: 3, MinY: 0, MaxY: 4, MinZ: 1, MaxZ: 3}
	if s.Bounds != want {
		t.Errorf("Expected bounds %+v, got %+v", want, s.Bounds)
	}
	if s.Bounds.Width() != 3 || s.Bounds.Height() != 4 {
		t.Errorf("Expected 3x4, got %fx%f", s.Bounds.Width(), s.Bounds.Height())
	}
}

func TestEmptyBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Error("Expected empty bounds")
	}

	b.Extend(Point{X: -1, Y: 2, Z: 0.5})
	if b.IsEmpty() {
		t.Error("Expected non-empty bounds")
	}
	if b.Width() != 0 || b.Height() != 0 {
		t.Errorf("Expected zero extent, got %fx%f", b.Width(), b.Height())
	}

	if s := Summarize(nil); s.Points != 0 || s.PathLength != 0 {
		t.Errorf("Expected empty summary, got %+v", s)
	}
}
