package chart

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/portfolio-viz/internal/models"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// decodePNG checks that s is base64 text holding a PNG and returns its size.
func decodePNG(t *testing.T, s string) image.Config {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, pngSignature), "missing PNG signature")

	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	return cfg
}

func TestRenderSkillsRadar(t *testing.T) {
	skills := []models.SkillEntry{
		{Category: "Python", Value: 7},
		{Category: "AI/ML", Value: 7},
		{Category: "Web Dev", Value: 7},
		{Category: "Data Viz", Value: 8},
		{Category: "GCP", Value: 7},
		{Category: "DevOps", Value: 6},
	}

	img, err := RenderSkillsRadar(skills)
	require.NoError(t, err)

	cfg := decodePNG(t, img)
	assert.LessOrEqual(t, cfg.Width, 800)
	assert.LessOrEqual(t, cfg.Height, 800)
	assert.Positive(t, cfg.Width)
	assert.Positive(t, cfg.Height)
}

func TestRenderSkillsRadar_Degenerate(t *testing.T) {
	for name, skills := range map[string][]models.SkillEntry{
		"empty":        nil,
		"single":       {{Category: "Go", Value: 5}},
		"out of range": {{Category: "A", Value: 42}, {Category: "B", Value: -3}},
	} {
		t.Run(name, func(t *testing.T) {
			img, err := RenderSkillsRadar(skills)
			require.NoError(t, err)
			decodePNG(t, img)
		})
	}
}

func TestRadarSpokes_TwoEntries(t *testing.T) {
	spokes := RadarSpokes([]models.SkillEntry{
		{Category: "Python", Value: 7},
		{Category: "AI/ML", Value: 7},
	})
	require.Len(t, spokes, 2)

	assert.Equal(t, "Python", spokes[0].Label)
	assert.InDelta(t, 0, spokes[0].AngleDegrees(), 1e-9)
	assert.InDelta(t, 180, spokes[1].AngleDegrees(), 1e-9)

	// First spoke points up, second straight down, both at radius 7.
	x, y := spokes[0].Position(RadarMax)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 7, y, 1e-9)
	x, y = spokes[1].Position(RadarMax)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, -7, y, 1e-9)
}

func TestRadarSpokes_EvenlySpacedClockwise(t *testing.T) {
	skills := make([]models.SkillEntry, 6)
	for i := range skills {
		skills[i] = models.SkillEntry{Category: string(rune('A' + i)), Value: 5}
	}
	spokes := RadarSpokes(skills)
	require.Len(t, spokes, len(skills))

	for i, s := range spokes {
		assert.InDelta(t, float64(i)*60, s.AngleDegrees(), 1e-9)
	}

	// 60 degrees clockwise from the top lands right of centre.
	x, y := spokes[1].Position(RadarMax)
	assert.Greater(t, x, 0.0)
	assert.Greater(t, y, 0.0)
}

func TestSpokePosition_ClipsToAxisRange(t *testing.T) {
	_, y := Spoke{Value: 25}.Position(RadarMax)
	assert.InDelta(t, RadarMax, y, 1e-9)

	x, y := Spoke{Value: -4}.Position(RadarMax)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
}

func TestCloseLoop(t *testing.T) {
	assert.Nil(t, closeLoop(nil))

	first := models.SkillEntry{Category: "Python", Value: 7}
	for _, skills := range [][]models.SkillEntry{
		{first, {Category: "Go", Value: 4}},
		{first, {Category: "Go", Value: 4}, first},
	} {
		spokes := RadarSpokes(skills)
		loop := closeLoop(spokes)
		require.Len(t, loop, len(spokes)+1)
		assert.Equal(t, loop[0], loop[len(loop)-1])
		assert.Equal(t, "Python", loop[len(loop)-1].Label)
		assert.InDelta(t, 0, loop[len(loop)-1].Angle, 1e-9)
	}
}

func TestRenderProjectTimeline(t *testing.T) {
	end := func(y int, m time.Month, d int) *time.Time {
		v := date(y, m, d)
		return &v
	}
	projects := []models.ProjectEntry{
		{Name: "Gemma3 on Cloud Run", StartDate: date(2023, 10, 1)},
		{Name: "AI Story Teller", StartDate: date(2023, 7, 15), EndDate: end(2023, 12, 30)},
		{Name: "Terminal Website", StartDate: date(2022, 11, 1), EndDate: end(2023, 1, 30)},
	}

	img, err := RenderProjectTimeline(projects)
	require.NoError(t, err)

	cfg := decodePNG(t, img)
	assert.LessOrEqual(t, cfg.Width, 1200)
	assert.LessOrEqual(t, cfg.Height, 600)
}

func TestRenderProjectTimeline_Empty(t *testing.T) {
	img, err := RenderProjectTimeline(nil)
	require.NoError(t, err)
	decodePNG(t, img)
}

func TestTimelineBars_ExplicitEnd(t *testing.T) {
	end := date(2023, 1, 11)
	bars := TimelineBars([]models.ProjectEntry{
		{Name: "X", StartDate: date(2023, 1, 1), EndDate: &end},
	})
	require.Len(t, bars, 1)

	assert.Equal(t, "X", bars[0].Name)
	assert.Equal(t, 0, bars[0].Row)
	assert.Equal(t, date(2023, 1, 1), bars[0].Start)
	assert.Equal(t, 10, bars[0].Days)
}

func TestTimelineBars_FallbackEnd(t *testing.T) {
	bars := TimelineBars([]models.ProjectEntry{
		{Name: "Ongoing", StartDate: date(2024, 1, 1)},
	})
	require.Len(t, bars, 1)

	assert.Equal(t, FallbackEndDate, bars[0].End)
	assert.Equal(t, 456, bars[0].Days)
}

func TestTimelineBars_RowsAndColors(t *testing.T) {
	projects := []models.ProjectEntry{
		{Name: "A", StartDate: date(2023, 1, 1)},
		{Name: "B", StartDate: date(2023, 2, 1)},
		{Name: "C", StartDate: FallbackEndDate},
	}
	bars := TimelineBars(projects)
	require.Len(t, bars, len(projects))

	for i, b := range bars {
		assert.Equal(t, i, b.Row)
		assert.Equal(t, projects[i].Name, b.Name)
		assert.GreaterOrEqual(t, b.Days, 0)
	}
	assert.Equal(t, 0, bars[2].Days, "start on the fallback date gives a zero width bar")
	assert.Equal(t, Viridis.At(0), bars[0].Color)
	assert.Equal(t, Viridis.At(timelineColorSpan), bars[2].Color)
	assert.NotEqual(t, bars[0].Color, bars[1].Color)
}

func TestCropToContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, backgroundColor)
		}
	}
	for y := 30; y < 40; y++ {
		for x := 20; x < 50; x++ {
			img.Set(x, y, color.Black)
		}
	}

	cropped := cropToContent(img, backgroundColor, 5)
	assert.Equal(t, image.Rect(15, 25, 55, 45), cropped.Bounds())

	// Padding never grows past the source bounds.
	cropped = cropToContent(img, backgroundColor, 50)
	assert.Equal(t, img.Bounds(), cropped.Bounds())
}

func TestCropToContent_Blank(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, backgroundColor)
		}
	}
	assert.Equal(t, img.Bounds(), cropToContent(img, backgroundColor, 2).Bounds())
}

func TestWithAlpha(t *testing.T) {
	c := withAlpha(color.RGBA{R: 10, G: 20, B: 30, A: 255}, 0.25)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 64}, c)
}
