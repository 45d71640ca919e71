package app

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorTheme represents a predefined color scheme for altitude visualization.
type ColorTheme string

const (
	ClassicTheme   ColorTheme = "classic"   // Blue to red transition
	GrayscaleTheme ColorTheme = "grayscale" // Black to white transition
	JungleTheme    ColorTheme = "jungle"    // Dark green to yellow transition
	ThermalTheme   ColorTheme = "thermal"   // Black to red to yellow to white
	MarineTheme    ColorTheme = "marine"    // Deep blue to cyan to white

	DefaultColorMapSize = 256 // Default number of colors in the map
)

var validColorThemes = map[ColorTheme]struct{}{
	ClassicTheme:   {},
	GrayscaleTheme: {},
	JungleTheme:    {},
	ThermalTheme:   {},
	MarineTheme:    {},
}

// ColorMapper maps altitudes to colors of a theme using a pre-computed
// gradient.
type ColorMapper struct {
	colorMap    []color.Color
	themeName   ColorTheme
	size        int
	boundsMin   float64
	boundsRange float64
}

// NewColorMapper creates a color mapper for the altitude range [minZ, maxZ]
func NewColorMapper(theme ColorTheme, minZ, maxZ float64) *ColorMapper {
	cm := &ColorMapper{
		colorMap:    make([]color.Color, DefaultColorMapSize),
		themeName:   theme,
		size:        DefaultColorMapSize,
		boundsMin:   minZ,
		boundsRange: maxZ - minZ,
	}

	fn := getColorTheme(theme)
	for i := 0; i < cm.size; i++ {
		cm.colorMap[i] = fn(float64(i) / float64(cm.size-1))
	}
	return cm
}

// GetColor returns the color of an altitude. A flat track maps to the middle
// of the gradient.
func (cm *ColorMapper) GetColor(z float64) color.Color {
	if cm.boundsRange <= 0 || math.IsNaN(z) {
		return cm.colorMap[cm.size/2]
	}

	index := int((z - cm.boundsMin) / cm.boundsRange * float64(cm.size-1))

	if index < 0 {
		return cm.colorMap[0]
	}
	if index >= cm.size {
		return cm.colorMap[cm.size-1]
	}
	return cm.colorMap[index]
}

// ThemeName returns the current color theme name
func (cm *ColorMapper) ThemeName() ColorTheme {
	return cm.themeName
}

func getColorTheme(theme ColorTheme) func(float64) color.Color {
	switch theme {
	case GrayscaleTheme:
		return func(v float64) color.Color {
			return colorful.Hsv(0, 0, 0.15+math.Pow(v, 0.7)*0.85).Clamped()
		}

	case JungleTheme:
		return func(v float64) color.Color {
			return colorful.Hsv(120-(v*60), 1.0, 0.3+(math.Pow(v, 0.6)*0.7)).Clamped()
		}

	case ThermalTheme:
		black, _ := colorful.Hex("#200000")
		red, _ := colorful.Hex("#ff0000")
		yellow, _ := colorful.Hex("#ffff00")
		white, _ := colorful.Hex("#ffffff")

		return func(v float64) color.Color {
			switch {
			case v < 0.33:
				return black.BlendLab(red, v/0.33).Clamped()
			case v < 0.66:
				return red.BlendLab(yellow, (v-0.33)/0.33).Clamped()
			default:
				return yellow.BlendLab(white, math.Min(1, (v-0.66)/0.34)).Clamped()
			}
		}

	case MarineTheme:
		return func(v float64) color.Color {
			return colorful.Hsv(240-(v*60), 1.0-(v*0.8), 0.3+(math.Pow(v, 0.6)*0.7)).Clamped()
		}

	default:
		return func(v float64) color.Color {
			return colorful.Hsv(240-(v*240), 0.9+(v*0.1), 0.9).Clamped()
		}
	}
}
