package track

import (
	"math"
	"time"
)

// Session represents a single publishing run. Each session captures metadata
// about when the run started and where the state came from.
type Session struct {
	ID        int64     `json:"ID"`                      // Unique identifier for the session
	StartTime time.Time `json:"startTime"`               // When the run began
	RunID     string    `json:"runID"`                   // Process run identifier (UUID)
	Source    string    `json:"source"`                  // State source (e.g., "sim", "mavlink")
	Config    *string   `json:"config,string,omitempty"` // Optional run configuration in JSON format
}

// Point is a recorded state estimate
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	X         float64   `json:"x"`     // metres
	Y         float64   `json:"y"`     // metres
	Z         float64   `json:"z"`     // metres, up
	Roll      float64   `json:"roll"`  // degrees
	Pitch     float64   `json:"pitch"` // degrees
	Yaw       float64   `json:"yaw"`   // degrees
	QX        float64   `json:"qx"`
	QY        float64   `json:"qy"`
	QZ        float64   `json:"qz"`
	QW        float64   `json:"qw"`
}

// Bounds is the axis aligned box enclosing a track
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// EmptyBounds returns bounds that any point extends
func EmptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		MinZ: math.Inf(1), MaxZ: math.Inf(-1),
	}
}

// Extend grows the bounds to include p
func (b *Bounds) Extend(p Point) {
	b.MinX, b.MaxX = math.Min(b.MinX, p.X), math.Max(b.MaxX, p.X)
	b.MinY, b.MaxY = math.Min(b.MinY, p.Y), math.Max(b.MaxY, p.Y)
	b.MinZ, b.MaxZ = math.Min(b.MinZ, p.Z), math.Max(b.MaxZ, p.Z)
}

// IsEmpty reports whether no point was added
func (b Bounds) IsEmpty() bool {
	return b.MinX > b.MaxX
}

// Width returns the X extent
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the Y extent
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// Summary describes a track
type Summary struct {
	Points     int
	Bounds     Bounds
	PathLength float64 // metres, 3D
	Start, End time.Time
}

// Duration returns the time span of the track
func (s Summary) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Add accumulates a point. Points are expected in time order.
func (s *Summary) Add(p Point, prev *Point) {
	if s.Points == 0 {
		s.Bounds = EmptyBounds()
		s.Start = p.Timestamp
	}
	s.Points++
	s.Bounds.Extend(p)
	s.End = p.Timestamp

	if prev != nil {
		s.PathLength += Distance(*prev, p)
	}
}

// Summarize computes the summary of a whole track
func Summarize(points []Point) Summary {
	var s Summary
	for i := range points {
		var prev *Point
		if i > 0 {
			prev = &points[i-1]
		}
		s.Add(points[i], prev)
	}
	return s
}

// Distance returns the euclidean distance between two points
func Distance(a, b Point) float64 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
