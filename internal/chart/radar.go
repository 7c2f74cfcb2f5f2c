package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/user/portfolio-viz/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	// RadarMax is the fixed outer edge of the radial axis. The axis always spans
	// [0, RadarMax] whatever the data holds.
	RadarMax = 10.0

	radarFillAlpha  = 0.25
	radarRingPoints = 96
)

var (
	radarSize       = 8 * vg.Inch
	radarLineColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	radarGridColor  = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	radarTicks      = []float64{2, 4, 6, 8, 10}
	radarTickAngle  = math.Pi / 8 // Radial tick labels sit between the first two spokes
	radarLabelGap   = vg.Points(6)
	radarLabelSize  = vg.Points(11)
	radarTickSize   = vg.Points(9)
	radarLineWidth  = vg.Points(2)
	radarGridWidth  = vg.Points(0.8)
	radarLabelColor = color.RGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xff}
)

// Spoke is one radial axis of a radar chart.
type Spoke struct {
	Label string
	Angle float64 // Radians, clockwise from 12 o'clock
	Value float64
}

// AngleDegrees returns the spoke angle in degrees, clockwise from 12 o'clock.
func (s Spoke) AngleDegrees() float64 {
	return s.Angle * 180 / math.Pi
}

// Position returns the spoke's data point in chart coordinates, with the
// origin at the centre and y pointing up. The value is clipped to [0, limit].
func (s Spoke) Position(limit float64) (x, y float64) {
	r := math.Max(0, math.Min(s.Value, limit))
	phi := screenAngle(s.Angle)
	return r * math.Cos(phi), r * math.Sin(phi)
}

// RadarSpokes lays the skills out on equally spaced spokes in input order,
// the first one pointing straight up and the rest proceeding clockwise.
func RadarSpokes(skills []models.SkillEntry) []Spoke {
	n := len(skills)
	spokes := make([]Spoke, n)
	for i, s := range skills {
		spokes[i] = Spoke{
			Label: s.Category,
			Angle: float64(i) / float64(n) * 2 * math.Pi,
			Value: s.Value,
		}
	}
	return spokes
}

// closeLoop returns the polygon vertices for spokes, with the first spoke
// repeated at the end so the outline returns to where it started.
func closeLoop(spokes []Spoke) []Spoke {
	if len(spokes) == 0 {
		return nil
	}
	loop := make([]Spoke, 0, len(spokes)+1)
	loop = append(loop, spokes...)
	return append(loop, spokes[0])
}

// screenAngle converts a clockwise-from-top angle to the counter clockwise
// from-x-axis convention used by the canvas.
func screenAngle(theta float64) float64 {
	return math.Pi/2 - theta
}

// radarPlot implements plot.Plotter. It draws in canvas space rather than
// through the plot axes so the chart stays circular whatever the canvas aspect.
type radarPlot struct {
	spokes []Spoke
	max    float64

	LineStyle draw.LineStyle
	FillColor color.Color
	GridStyle draw.LineStyle
	AreaColor color.Color
	Label     text.Style
	TickLabel text.Style
}

func newRadarPlot(spokes []Spoke, base text.Style) *radarPlot {
	label := base
	label.Font.Size = radarLabelSize
	label.Color = radarLabelColor

	tick := base
	tick.Font.Size = radarTickSize
	tick.Color = radarLabelColor
	tick.XAlign = text.XLeft
	tick.YAlign = text.YCenter

	return &radarPlot{
		spokes:    spokes,
		max:       RadarMax,
		LineStyle: draw.LineStyle{Color: radarLineColor, Width: radarLineWidth},
		FillColor: withAlpha(radarLineColor, radarFillAlpha),
		GridStyle: draw.LineStyle{Color: radarGridColor, Width: radarGridWidth},
		AreaColor: backgroundColor,
		Label:     label,
		TickLabel: tick,
	}
}

// Plot implements the plot.Plotter interface.
func (r *radarPlot) Plot(c draw.Canvas, _ *plot.Plot) {
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	radius := r.radius(c)
	if radius <= 0 {
		return
	}

	c.FillPolygon(r.AreaColor, ring(center, radius))

	for _, t := range radarTicks {
		rr := radius * vg.Length(t/r.max)
		c.StrokeLines(r.GridStyle, ring(center, rr))
		c.FillText(r.TickLabel, polarPoint(center, rr, radarTickAngle), fmt.Sprintf("%g", t))
	}

	for _, s := range r.spokes {
		rim := polarPoint(center, radius, s.Angle)
		c.StrokeLine2(r.GridStyle, center.X, center.Y, rim.X, rim.Y)

		lbl := r.Label
		lbl.XAlign, lbl.YAlign = labelAlignment(s.Angle)
		c.FillText(lbl, polarPoint(center, radius+radarLabelGap, s.Angle), s.Label)
	}

	loop := closeLoop(r.spokes)
	if len(loop) == 0 {
		return
	}
	pts := make([]vg.Point, len(loop))
	for i, s := range loop {
		x, y := s.Position(r.max)
		pts[i] = vg.Point{
			X: center.X + radius*vg.Length(x/r.max),
			Y: center.Y + radius*vg.Length(y/r.max),
		}
	}
	c.FillPolygon(r.FillColor, pts)
	c.StrokeLines(r.LineStyle, pts)
}

// radius returns the outer ring radius, leaving room for the spoke labels.
func (r *radarPlot) radius(c draw.Canvas) vg.Length {
	var margin vg.Length
	for _, s := range r.spokes {
		if w := r.Label.Width(s.Label); w > margin {
			margin = w
		}
	}
	if h := r.Label.Height("M"); h > margin {
		margin = h
	}
	half := (c.Max.X - c.Min.X) / 2
	if h := (c.Max.Y - c.Min.Y) / 2; h < half {
		half = h
	}
	return half - margin - radarLabelGap
}

// labelAlignment anchors a spoke label on the side facing the chart, so
// labels grow outwards from the ring.
func labelAlignment(theta float64) (text.XAlignment, text.YAlignment) {
	const eps = 1e-3
	phi := screenAngle(theta)
	cos, sin := math.Cos(phi), math.Sin(phi)

	xa := text.XCenter
	switch {
	case cos > eps:
		xa = text.XLeft
	case cos < -eps:
		xa = text.XRight
	}
	ya := text.YCenter
	switch {
	case sin > eps:
		ya = text.YBottom
	case sin < -eps:
		ya = text.YTop
	}
	return xa, ya
}

func polarPoint(center vg.Point, radius vg.Length, theta float64) vg.Point {
	phi := screenAngle(theta)
	return vg.Point{
		X: center.X + radius*vg.Length(math.Cos(phi)),
		Y: center.Y + radius*vg.Length(math.Sin(phi)),
	}
}

// ring returns a closed polyline approximating a circle.
func ring(center vg.Point, radius vg.Length) []vg.Point {
	pts := make([]vg.Point, radarRingPoints+1)
	for i := 0; i <= radarRingPoints; i++ {
		pts[i] = polarPoint(center, radius, float64(i)/radarRingPoints*2*math.Pi)
	}
	return pts
}

// RenderSkillsRadar renders skills as a filled radar chart and returns it as a
// base64 encoded PNG string.
func RenderSkillsRadar(skills []models.SkillEntry) (string, error) {
	p := plot.New()
	applyStyle(p, "Skills Proficiency")
	p.HideAxes()

	p.Add(newRadarPlot(RadarSpokes(skills), p.X.Tick.Label))

	img, err := generatePlotImageBase64(p, radarSize, radarSize)
	if err != nil {
		return "", fmt.Errorf("failed to render skills radar chart: %w", err)
	}
	return img, nil
}
