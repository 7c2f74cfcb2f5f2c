package dataset

import (
	"time"

	"github.com/user/portfolio-viz/internal/models"
)

// SampleSkills returns the built-in skill proficiency data set.
func SampleSkills() []models.SkillEntry {
	return []models.SkillEntry{
		{Category: "Python", Value: 7},
		{Category: "AI/ML", Value: 7},
		{Category: "Web Dev", Value: 7},
		{Category: "Data Viz", Value: 8},
		{Category: "GCP", Value: 7},
		{Category: "DevOps", Value: 6},
	}
}

// SampleProjects returns the built-in project timeline data set.
// The first project has no end date and runs until the fallback date.
func SampleProjects() []models.ProjectEntry {
	return []models.ProjectEntry{
		{Name: "Gemma3 on Cloud Run", StartDate: day(2023, time.October, 1)},
		{Name: "AI Story Teller", StartDate: day(2023, time.July, 15), EndDate: dayPtr(2023, time.December, 30)},
		{Name: "AI Tutor", StartDate: day(2023, time.May, 1), EndDate: dayPtr(2023, time.September, 30)},
		{Name: "Plotcharts CSV Analyzer", StartDate: day(2023, time.February, 15), EndDate: dayPtr(2023, time.June, 30)},
		{Name: "Terminal Website", StartDate: day(2022, time.November, 1), EndDate: dayPtr(2023, time.January, 30)},
	}
}

// Sample returns both built-in data sets.
func Sample() *DataSet {
	return &DataSet{Skills: SampleSkills(), Projects: SampleProjects()}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}
