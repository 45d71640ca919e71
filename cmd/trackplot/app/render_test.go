package app

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/roman-kulish/drone-state-publisher/internal/track"
)

func testTrack(start time.Time) *TrackData {
	var points []track.Point
	for i := 0; i < 50; i++ {
		a := float64(i) / 49 * math.Pi
		points = append(points, track.Point{
			Timestamp: start.Add(time.Duration(i) * 100 * time.Millisecond),
			X:         3 * math.Cos(a),
			Y:         3 * math.Sin(a),
			Z:         1 + float64(i)/49,
			QW:        1,
		})
	}

	return &TrackData{
		Session: &track.Session{ID: 1, StartTime: start, RunID: "run-1", Source: "sim"},
		Points:  points,
		Summary: track.Summarize(points),
	}
}

func TestProjection(t *testing.T) {
	b := track.Bounds{MinX: -1, MaxX: 1, MinY: 0, MaxY: 1}
	area := image.Rect(10, 10, 110, 110)
	p := newProjection(b, area)

	centre := p.point(0, 0.5)
	if centre != (image.Point{X: 60, Y: 59}) {
		t.Errorf("Expected centre at (60,59), got %v", centre)
	}

	// Y is flipped
	if up, down := p.point(0, 1), p.point(0, 0); up.Y >= down.Y {
		t.Errorf("Expected higher Y to be drawn above, got %v and %v", up, down)
	}

	for _, pt := range []image.Point{p.point(-1, 0), p.point(1, 1)} {
		if !pt.In(area) {
			t.Errorf("Expected %v inside the plot area %v", pt, area)
		}
	}

	if m := p.metres(100); math.Abs(m-2.2) > 1e-9 {
		t.Errorf("Expected 100 pixels to cover 2.2m, got %f", m)
	}
}

func TestProjection_MinExtent(t *testing.T) {
	p := newProjection(track.Bounds{MinX: 5, MaxX: 5, MinY: 5, MaxY: 5}, image.Rect(0, 0, 100, 100))
	if math.IsInf(p.scale, 0) || math.IsNaN(p.scale) {
		t.Fatalf("Expected a finite scale for a single point, got %f", p.scale)
	}
	if pt := p.point(5, 5); pt != (image.Point{X: 50, Y: 49}) {
		t.Errorf("Expected the point in the centre, got %v", pt)
	}
}

func TestColorMapper(t *testing.T) {
	for theme := range validColorThemes {
		t.Run(string(theme), func(t *testing.T) {
			cm := NewColorMapper(theme, 0, 10)
			if cm.ThemeName() != theme {
				t.Errorf("Expected theme %s, got %s", theme, cm.ThemeName())
			}
			if cm.GetColor(-5) != cm.GetColor(0) {
				t.Error("Expected values below the range to clamp to the first color")
			}
			if cm.GetColor(15) != cm.GetColor(10) {
				t.Error("Expected values above the range to clamp to the last color")
			}
			if cm.GetColor(0) == cm.GetColor(10) {
				t.Error("Expected distinct colors at both ends of the range")
			}
		})
	}
}

func TestColorMapper_FlatRange(t *testing.T) {
	cm := NewColorMapper(ClassicTheme, 2, 2)
	if got, want := cm.GetColor(2), cm.colorMap[cm.size/2]; got != want {
		t.Errorf("Expected mid gradient color %v, got %v", want, got)
	}
}

func TestTrackRenderer_Render(t *testing.T) {
	data := testTrack(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		name          string
		noAnnotations bool
	}{
		{"plain", true},
		{"annotated", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewTrackRenderer(RenderConfig{
				Size:          200,
				Location:      time.UTC,
				NoAnnotations: tt.noAnnotations,
			})
			if err != nil {
				t.Fatalf("Failed to create renderer: %v", err)
			}

			img, err := r.Render(data)
			if err != nil {
				t.Fatalf("Failed to render: %v", err)
			}

			wantBounds := image.Rect(0, 0, 200+defaultLeftBorder+defaultRightBorder, 200+defaultTopBorder+defaultBottomBorder)
			if img.Bounds() != wantBounds {
				t.Errorf("Expected bounds %v, got %v", wantBounds, img.Bounds())
			}

			area := image.Rect(defaultLeftBorder, defaultTopBorder, defaultLeftBorder+200, defaultTopBorder+200)
			proj := newProjection(data.Summary.Bounds, area)

			first, last := data.Points[0], data.Points[len(data.Points)-1]
			if c := img.At(proj.point(first.X, first.Y).X, proj.point(first.X, first.Y).Y); c != color.Color(startColor) {
				t.Errorf("Expected start marker color, got %v", c)
			}
			if c := img.At(proj.point(last.X, last.Y).X, proj.point(last.X, last.Y).Y); c != color.Color(endColor) {
				t.Errorf("Expected end marker color, got %v", c)
			}

			// the info bar is only drawn with annotations
			text := countNot(img, image.Rect(area.Min.X, area.Max.Y+35, img.Bounds().Max.X, img.Bounds().Max.Y), backgroundColor)
			if tt.noAnnotations && text != 0 {
				t.Errorf("Expected empty info bar, got %d pixels drawn", text)
			}
			if !tt.noAnnotations && text == 0 {
				t.Error("Expected info bar text")
			}
		})
	}
}

func TestDrawLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	c := color.RGBA{R: 0xff, A: 0xff}

	drawLine(img, image.Point{X: 1, Y: 1}, image.Point{X: 8, Y: 8}, c)

	for i := 1; i <= 8; i++ {
		if got := img.RGBAAt(i, i); got != c {
			t.Errorf("Expected pixel (%d,%d) to be set, got %v", i, i, got)
		}
	}
	if n := countNot(img, img.Bounds(), color.RGBA{}); n != 8 {
		t.Errorf("Expected 8 pixels drawn, got %d", n)
	}
}

func countNot(img *image.RGBA, r image.Rectangle, c color.RGBA) int {
	var n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) != c {
				n++
			}
		}
	}
	return n
}
