package visualize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/portfolio-viz/internal/dataset"
	"github.com/user/portfolio-viz/internal/models"
)

func TestGenerate_Sample(t *testing.T) {
	out, err := Generate(context.Background(), dataset.Sample())
	require.NoError(t, err)
	assert.NotEmpty(t, out.SkillsChart)
	assert.NotEmpty(t, out.TimelineChart)
	assert.NotEqual(t, out.SkillsChart, out.TimelineChart)
}

func TestGenerate_PassesDataThrough(t *testing.T) {
	ds := &dataset.DataSet{
		Skills:   []models.SkillEntry{{Category: "Go", Value: 9}},
		Projects: []models.ProjectEntry{{Name: "A"}, {Name: "B"}},
	}
	r := Renderers{
		Skills: func(s []models.SkillEntry) (string, error) {
			assert.Equal(t, ds.Skills, s)
			return "skills", nil
		},
		Timeline: func(p []models.ProjectEntry) (string, error) {
			assert.Equal(t, ds.Projects, p)
			return "timeline", nil
		},
	}

	out, err := r.Generate(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, models.Visualizations{SkillsChart: "skills", TimelineChart: "timeline"}, out)
}

func TestGenerate_FailsFast(t *testing.T) {
	boom := errors.New("backend failure")
	r := Renderers{
		Skills:   func([]models.SkillEntry) (string, error) { return "", boom },
		Timeline: func([]models.ProjectEntry) (string, error) { return "timeline", nil },
	}

	out, err := r.Generate(context.Background(), dataset.Sample())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, models.Visualizations{}, out)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, dataset.Sample())
	assert.ErrorIs(t, err, context.Canceled)
}
