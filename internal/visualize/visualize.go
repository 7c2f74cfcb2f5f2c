// Package visualize renders the skills and timeline charts for one data set.
package visualize

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/portfolio-viz/internal/chart"
	"github.com/user/portfolio-viz/internal/dataset"
	logging "github.com/user/portfolio-viz/internal/log"
	"github.com/user/portfolio-viz/internal/models"
)

// Renderers are the chart functions Generate calls. Both are pure functions
// of their input.
type Renderers struct {
	Skills   func([]models.SkillEntry) (string, error)
	Timeline func([]models.ProjectEntry) (string, error)
}

// DefaultRenderers renders with the chart package.
var DefaultRenderers = Renderers{
	Skills:   chart.RenderSkillsRadar,
	Timeline: chart.RenderProjectTimeline,
}

// Generate renders both charts for ds with the default renderers.
func Generate(ctx context.Context, ds *dataset.DataSet) (models.Visualizations, error) {
	return DefaultRenderers.Generate(ctx, ds)
}

// Generate renders both charts for ds. The two renders share no state and run
// concurrently. The first failure cancels the run and is returned.
func (r Renderers) Generate(ctx context.Context, ds *dataset.DataSet) (models.Visualizations, error) {
	var out models.Visualizations
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		img, err := render(ctx, "skills radar", func() (string, error) { return r.Skills(ds.Skills) })
		out.SkillsChart = img
		return err
	})
	g.Go(func() error {
		img, err := render(ctx, "project timeline", func() (string, error) { return r.Timeline(ds.Projects) })
		out.TimelineChart = img
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Visualizations{}, err
	}
	return out, nil
}

func render(ctx context.Context, name string, fn func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s chart not rendered: %w", name, err)
	}

	start := time.Now()
	img, err := fn()
	if err != nil {
		logging.LogError("Chart rendering failed", zap.String("chart", name), zap.Error(err))
		return "", err
	}
	logging.LogDebug("Chart rendered",
		zap.String("chart", name),
		zap.Int("base64_bytes", len(img)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return img, nil
}
