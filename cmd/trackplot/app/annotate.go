package app

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	dpi     float64 = 72
	hinting string  = "full"
	size    float64 = 14
	spacing float64 = 1.3

	legendWidth  = 200
	legendHeight = 10
)

var textColor = image.NewUniform(color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff})

type Annotator struct {
	context        *freetype.Context
	location       *time.Location
	datetimeFormat string
}

func NewAnnotator(location *time.Location, datetimeFormat string) (*Annotator, error) {
	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	context := freetype.NewContext()
	context.SetDPI(dpi)
	context.SetFont(parsedFont)
	context.SetFontSize(size)
	context.SetSrc(textColor)

	switch hinting {
	case "full":
		context.SetHinting(font.HintingFull)
	default:
		context.SetHinting(font.HintingNone)
	}

	return &Annotator{context: context, location: location, datetimeFormat: datetimeFormat}, nil
}

func (a *Annotator) Annotate(img *image.RGBA, area image.Rectangle, proj projection, colors *ColorMapper, data *TrackData) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	ops := []struct {
		msg string
		fn  func() error
	}{
		{"drawing X scale", func() error { return a.drawXScale(area, proj) }},
		{"drawing Y scale", func() error { return a.drawYScale(area, proj) }},
		{"drawing legend", func() error { return a.drawLegend(img, area, colors, data) }},
		{"drawing info", func() error { return a.drawInfo(img, area, data) }},
	}
	for _, op := range ops {
		if err := op.fn(); err != nil {
			return fmt.Errorf("%s: %w", op.msg, err)
		}
	}

	return nil
}

func (a *Annotator) drawXScale(area image.Rectangle, proj projection) error {
	for px := 0; px <= area.Dx(); px += gridStep {
		x := proj.originX + proj.metres(px)

		pt := freetype.Pt(area.Min.X+px+3, area.Min.Y-8)
		if _, err := a.context.DrawString(humanMetres(x), pt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Annotator) drawYScale(area image.Rectangle, proj projection) error {
	for py := 0; py < area.Dy(); py += gridStep {
		y := proj.originY + proj.metres(py)

		pt := freetype.Pt(3, area.Max.Y-1-py)
		if _, err := a.context.DrawString(humanMetres(y), pt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Annotator) drawLegend(img *image.RGBA, area image.Rectangle, colors *ColorMapper, data *TrackData) error {
	b := data.Summary.Bounds
	left, top := area.Min.X, area.Max.Y+15

	for x := 0; x < legendWidth; x++ {
		z := b.MinZ + (b.MaxZ-b.MinZ)*float64(x)/float64(legendWidth-1)
		c := colors.GetColor(z)
		for y := 0; y < legendHeight; y++ {
			img.Set(left+x, top+y, c)
		}
	}

	label := fmt.Sprintf("altitude %s to %s", humanMetres(b.MinZ), humanMetres(b.MaxZ))
	_, err := a.context.DrawString(label, freetype.Pt(left+legendWidth+10, top+legendHeight))
	return err
}

func (a *Annotator) drawInfo(img *image.RGBA, area image.Rectangle, data *TrackData) error {
	s := data.Summary

	lines := []string{
		fmt.Sprintf("Flight start: %s, end: %s (%s)",
			s.Start.In(a.location).Format(a.datetimeFormat),
			s.End.In(a.location).Format(a.datetimeFormat),
			s.Duration().Round(time.Second)),
		fmt.Sprintf("Path length: %s, %s points", humanMetres(s.PathLength), humanize.Comma(int64(s.Points))),
		fmt.Sprintf("Area: %s x %s", humanMetres(s.Bounds.Width()), humanMetres(s.Bounds.Height())),
	}
	if data.Session != nil {
		lines = append([]string{fmt.Sprintf("Session %d, source %s, run %s", data.Session.ID, data.Session.Source, data.Session.RunID)}, lines...)
	}

	pt := freetype.Pt(area.Min.X, area.Max.Y+50)
	for _, l := range lines {
		if _, err := a.context.DrawString(l, pt); err != nil {
			return err
		}
		pt.Y += a.context.PointToFixed(size * spacing)
	}

	if pt.Y.Round() > img.Bounds().Max.Y {
		return fmt.Errorf("info does not fit, %d rows of border required", pt.Y.Round()-area.Max.Y)
	}
	return nil
}

func humanMetres(m float64) string {
	return humanize.SIWithDigits(m, 2, "m")
}
