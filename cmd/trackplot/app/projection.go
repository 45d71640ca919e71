package app

import (
	"image"
	"math"

	"github.com/roman-kulish/drone-state-publisher/internal/track"
)

// projection maps the XY plane of a track onto a square plot area, keeping
// the aspect ratio. Y grows up in the world and down in the image.
type projection struct {
	area    image.Rectangle
	originX float64
	originY float64
	scale   float64 // pixels per metre
}

const minExtent = 0.5 // metres

func newProjection(b track.Bounds, area image.Rectangle) projection {
	extent := math.Max(math.Max(b.Width(), b.Height()), minExtent) * 1.1 // 5% margin each side

	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2

	size := math.Min(float64(area.Dx()), float64(area.Dy()))

	return projection{
		area:    area,
		originX: cx - extent/2,
		originY: cy - extent/2,
		scale:   size / extent,
	}
}

func (p projection) point(x, y float64) image.Point {
	px := (x - p.originX) * p.scale
	py := (y - p.originY) * p.scale

	return image.Point{
		X: p.area.Min.X + int(math.Round(px)),
		Y: p.area.Max.Y - 1 - int(math.Round(py)),
	}
}

// metres returns the world distance covered by n pixels
func (p projection) metres(n int) float64 {
	return float64(n) / p.scale
}
