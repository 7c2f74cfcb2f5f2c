package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Viridis is the perceptually uniform viridis colormap, described by eleven
// evenly spaced stops and blended in CIE L*a*b* between them.
var Viridis = mustColormap(
	"#440154", "#482475", "#414487", "#355f8d", "#2a788e", "#21918c",
	"#22a884", "#44bf70", "#7ad151", "#bddf26", "#fde725",
)

// Colormap maps a normalized scalar in [0, 1] to a colour.
type Colormap struct {
	stops []colorful.Color
}

// NewColormap builds a colormap from evenly spaced hex colour stops.
func NewColormap(hexStops ...string) (*Colormap, error) {
	if len(hexStops) == 0 {
		return nil, fmt.Errorf("colormap needs at least one stop")
	}
	stops := make([]colorful.Color, len(hexStops))
	for i, h := range hexStops {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid colormap stop %q: %w", h, err)
		}
		stops[i] = c
	}
	return &Colormap{stops: stops}, nil
}

func mustColormap(hexStops ...string) *Colormap {
	m, err := NewColormap(hexStops...)
	if err != nil {
		panic(err)
	}
	return m
}

// At returns the opaque colour at t. Values outside [0, 1] are clamped.
func (m *Colormap) At(t float64) color.Color {
	t = math.Max(0, math.Min(t, 1))
	if len(m.stops) == 1 {
		return toRGBA(m.stops[0])
	}

	pos := t * float64(len(m.stops)-1)
	i := int(math.Floor(pos))
	if i >= len(m.stops)-1 {
		i = len(m.stops) - 2
	}
	frac := pos - float64(i)
	if frac == 0 {
		return toRGBA(m.stops[i])
	}
	return toRGBA(m.stops[i].BlendLab(m.stops[i+1], frac).Clamped())
}

// Sample returns n colours taken at evenly spaced points of [lo, hi],
// both ends included.
func (m *Colormap) Sample(n int, lo, hi float64) []color.Color {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []color.Color{m.At(lo)}
	}
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = m.At(lo + (hi-lo)*float64(i)/float64(n-1))
	}
	return colors
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
