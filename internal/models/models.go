package models

import "time"

// SkillEntry is one axis of the skills radar chart.
type SkillEntry struct {
	Category string  `json:"category" yaml:"category"`
	Value    float64 `json:"value" yaml:"value"` // Expected range is [0, 10]
}

// ProjectEntry is one bar of the project timeline.
type ProjectEntry struct {
	Name      string     `json:"name" yaml:"name"`
	StartDate time.Time  `json:"start_date" yaml:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"` // nil means still running
}

// ResolvedEnd returns the project's end date, or fallback when none was given.
func (p ProjectEntry) ResolvedEnd(fallback time.Time) time.Time {
	if p.EndDate == nil {
		return fallback
	}
	return *p.EndDate
}

// Visualizations holds the base64 encoded PNG charts produced in one run.
// The field tags match the payload the web frontend expects.
type Visualizations struct {
	SkillsChart   string `json:"skills_chart"`
	TimelineChart string `json:"timeline_chart"`
}

// Status is the object printed to stdout once generation has finished.
type Status struct {
	VisualizationsGenerated bool `json:"visualizations_generated"`
}
