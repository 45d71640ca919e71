package app

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/roman-kulish/drone-state-publisher/internal/track"
)

const (
	defaultPlotSize = 800
	minPlotSize     = 100
	gridStep        = 100 // pixels

	// Default border sizes in pixels
	defaultTopBorder    = 40
	defaultLeftBorder   = 80
	defaultBottomBorder = 140
	defaultRightBorder  = 40

	markerRadius = 4

	defaultDatetimeFormat = time.DateTime
)

var (
	backgroundColor = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}
	gridColor       = color.RGBA{R: 0x30, G: 0x34, B: 0x40, A: 0xff}
	startColor      = color.RGBA{G: 0xe0, A: 0xff}
	endColor        = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
)

// BorderConfig defines the sizes of space around the plot
type BorderConfig struct {
	Top    int
	Left   int // Space for the Y scale
	Bottom int // Space for the information bar
	Right  int
}

// RenderConfig holds all configuration options for track visualization
type RenderConfig struct {
	Size           int            // Plot area size in pixels
	DatetimeFormat string         // Format string for date/time display
	Location       *time.Location // Timezone for time display
	ColorTheme     ColorTheme     // Color scheme for altitude
	NoAnnotations  bool
	BorderConfig   BorderConfig
}

// TrackData is a track loaded for rendering
type TrackData struct {
	Session *track.Session
	Points  []track.Point
	Summary track.Summary
}

// TrackRenderer draws a top-down view of a flight track
type TrackRenderer struct {
	config    RenderConfig
	annotator *Annotator
}

// NewTrackRenderer creates a renderer with the given configuration
func NewTrackRenderer(config RenderConfig) (*TrackRenderer, error) {
	if config.Size == 0 {
		config.Size = defaultPlotSize
	}
	if config.DatetimeFormat == "" {
		config.DatetimeFormat = defaultDatetimeFormat
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.BorderConfig == (BorderConfig{}) {
		config.BorderConfig = BorderConfig{
			Top:    defaultTopBorder,
			Left:   defaultLeftBorder,
			Bottom: defaultBottomBorder,
			Right:  defaultRightBorder,
		}
	}

	r := &TrackRenderer{config: config}
	if !config.NoAnnotations {
		annotator, err := NewAnnotator(config.Location, config.DatetimeFormat)
		if err != nil {
			return nil, err
		}
		r.annotator = annotator
	}

	return r, nil
}

// Render creates an image of the track with annotations
func (r *TrackRenderer) Render(data *TrackData) (*image.RGBA, error) {
	b := r.config.BorderConfig
	img := image.NewRGBA(image.Rect(0, 0, r.config.Size+b.Left+b.Right, r.config.Size+b.Top+b.Bottom))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: backgroundColor}, image.Point{}, draw.Src)

	plotArea := image.Rect(b.Left, b.Top, b.Left+r.config.Size, b.Top+r.config.Size)
	proj := newProjection(data.Summary.Bounds, plotArea)
	colors := NewColorMapper(r.config.ColorTheme, data.Summary.Bounds.MinZ, data.Summary.Bounds.MaxZ)

	drawGrid(img, plotArea)

	for i := 1; i < len(data.Points); i++ {
		prev, cur := data.Points[i-1], data.Points[i]
		drawLine(img, proj.point(prev.X, prev.Y), proj.point(cur.X, cur.Y), colors.GetColor(cur.Z))
	}
	if n := len(data.Points); n > 0 {
		drawMarker(img, proj.point(data.Points[0].X, data.Points[0].Y), startColor)
		drawMarker(img, proj.point(data.Points[n-1].X, data.Points[n-1].Y), endColor)
	}

	if r.annotator != nil {
		if err := r.annotator.Annotate(img, plotArea, proj, colors, data); err != nil {
			return nil, err
		}
	}

	return img, nil
}

func drawGrid(img *image.RGBA, area image.Rectangle) {
	for x := area.Min.X; x <= area.Max.X; x += gridStep {
		for y := area.Min.Y; y < area.Max.Y; y++ {
			img.Set(x, y, gridColor)
		}
	}
	for y := area.Max.Y - 1; y >= area.Min.Y; y -= gridStep {
		for x := area.Min.X; x < area.Max.X; x++ {
			img.Set(x, y, gridColor)
		}
	}
}

// drawLine draws a segment with Bresenham's algorithm
func drawLine(img *image.RGBA, a, b image.Point, c color.Color) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	e := dx + dy
	for {
		img.Set(a.X, a.Y, c)
		if a == b {
			return
		}

		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.X += sx
		}
		if e2 <= dx {
			e += dx
			a.Y += sy
		}
	}
}

func drawMarker(img *image.RGBA, p image.Point, c color.Color) {
	for y := -markerRadius; y <= markerRadius; y++ {
		for x := -markerRadius; x <= markerRadius; x++ {
			if x*x+y*y <= markerRadius*markerRadius {
				img.Set(p.X+x, p.Y+y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
