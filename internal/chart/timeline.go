package chart

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/user/portfolio-viz/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	timelineBarHeight = 0.5
	timelineBarAlpha  = 0.8
	// timelineColorSpan limits bar colours to the first 80% of the colormap.
	timelineColorSpan = 0.8
	// timelineMargin is the fraction of the date span added on both sides.
	timelineMargin = 0.05

	secondsPerDay = 24 * 60 * 60
)

var (
	// FallbackEndDate is the end used for projects that have none.
	FallbackEndDate = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	timelineWidth  = 12 * vg.Inch
	timelineHeight = 6 * vg.Inch
)

// TimelineBar is the geometry of one project bar.
type TimelineBar struct {
	Name  string
	Row   int
	Start time.Time
	End   time.Time
	Days  int // Bar width. Negative when the project ends before it starts.
	Color color.Color
}

// TimelineBars resolves each project's end date and assigns it a row and a
// colour, in input order. Row 0 is drawn at the bottom.
func TimelineBars(projects []models.ProjectEntry) []TimelineBar {
	colors := Viridis.Sample(len(projects), 0, timelineColorSpan)
	bars := make([]TimelineBar, len(projects))
	for i, p := range projects {
		end := p.ResolvedEnd(FallbackEndDate)
		bars[i] = TimelineBar{
			Name:  p.Name,
			Row:   i,
			Start: p.StartDate,
			End:   end,
			Days:  daysBetween(p.StartDate, end),
			Color: colors[i],
		}
	}
	return bars
}

// daysBetween returns the number of whole calendar days from start to end.
func daysBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix())
}

// timelinePlot implements plot.Plotter and plot.DataRanger. X is in Unix
// seconds so the axis can use plot.TimeTicks, Y is the bar row.
type timelinePlot struct {
	bars   []TimelineBar
	height float64
	alpha  float64
}

// Plot implements the plot.Plotter interface.
func (t *timelinePlot) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, b := range t.bars {
		x0 := unixSeconds(b.Start)
		x1 := x0 + float64(b.Days)*secondsPerDay
		y0 := float64(b.Row) - t.height/2
		y1 := float64(b.Row) + t.height/2

		pts := []vg.Point{
			{X: trX(x0), Y: trY(y0)},
			{X: trX(x1), Y: trY(y0)},
			{X: trX(x1), Y: trY(y1)},
			{X: trX(x0), Y: trY(y1)},
		}
		c.FillPolygon(withAlpha(b.Color, t.alpha), c.ClipPolygonXY(pts))
	}
}

// DataRange implements the plot.DataRanger interface.
func (t *timelinePlot) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for _, b := range t.bars {
		x0 := unixSeconds(b.Start)
		x1 := x0 + float64(b.Days)*secondsPerDay
		xmin = math.Min(xmin, math.Min(x0, x1))
		xmax = math.Max(xmax, math.Max(x0, x1))
	}
	pad := (xmax - xmin) * timelineMargin
	return xmin - pad, xmax + pad, -0.5, float64(len(t.bars)) - 0.5
}

// RenderProjectTimeline renders projects as horizontal date range bars and
// returns the chart as a base64 encoded PNG string.
func RenderProjectTimeline(projects []models.ProjectEntry) (string, error) {
	p := plot.New()
	applyStyle(p, "Project Timeline")
	p.X.Label.Text = "Timeline"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	bars := TimelineBars(projects)
	if len(bars) > 0 {
		names := make([]string, len(bars))
		for i, b := range bars {
			names[i] = b.Name
		}
		p.NominalY(names...)
		p.Add(&timelinePlot{bars: bars, height: timelineBarHeight, alpha: timelineBarAlpha})
	}

	img, err := generatePlotImageBase64(p, timelineWidth, timelineHeight)
	if err != nil {
		return "", fmt.Errorf("failed to render project timeline chart: %w", err)
	}
	return img, nil
}
