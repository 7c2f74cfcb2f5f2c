// Package dataset provides the skill and project data sets the charts are
// rendered from, either built in or read from a YAML or JSON file.
package dataset

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/user/portfolio-viz/internal/models"
)

// DateLayout is the layout of every date in a data file.
const DateLayout = "2006-01-02"

// DataSet is the input of one generation run.
type DataSet struct {
	Skills   []models.SkillEntry
	Projects []models.ProjectEntry
}

// document is the on-disk shape of a data file. JSON files decode through
// the same structure since JSON is valid YAML.
type document struct {
	Skills   []skillRecord   `yaml:"skills" validate:"dive"`
	Projects []projectRecord `yaml:"projects" validate:"dive"`
}

type skillRecord struct {
	Category string  `yaml:"category" validate:"required"`
	Value    float64 `yaml:"value"`
}

type projectRecord struct {
	Name      string `yaml:"name" validate:"required"`
	StartDate string `yaml:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `yaml:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

var validate = validator.New()

// Load reads and parses the data file at path.
func Load(path string) (*DataSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}
	ds, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid data file %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes a YAML or JSON data document.
func Parse(raw []byte) (*DataSet, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("data validation failed: %w", err)
	}

	ds := &DataSet{
		Skills:   make([]models.SkillEntry, len(doc.Skills)),
		Projects: make([]models.ProjectEntry, len(doc.Projects)),
	}
	for i, s := range doc.Skills {
		ds.Skills[i] = models.SkillEntry{Category: s.Category, Value: s.Value}
	}
	for i, p := range doc.Projects {
		entry, err := p.entry()
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Name, err)
		}
		ds.Projects[i] = entry
	}
	return ds, nil
}

func (p projectRecord) entry() (models.ProjectEntry, error) {
	start, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return models.ProjectEntry{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	entry := models.ProjectEntry{Name: p.Name, StartDate: start}
	if p.EndDate != "" {
		end, err := time.Parse(DateLayout, p.EndDate)
		if err != nil {
			return models.ProjectEntry{}, fmt.Errorf("failed to parse end_date: %w", err)
		}
		entry.EndDate = &end
	}
	return entry, nil
}

// MarshalYAML encodes ds in the data file format.
func (ds *DataSet) MarshalYAML() (interface{}, error) {
	doc := document{
		Skills:   make([]skillRecord, len(ds.Skills)),
		Projects: make([]projectRecord, len(ds.Projects)),
	}
	for i, s := range ds.Skills {
		doc.Skills[i] = skillRecord{Category: s.Category, Value: s.Value}
	}
	for i, p := range ds.Projects {
		rec := projectRecord{Name: p.Name, StartDate: p.StartDate.Format(DateLayout)}
		if p.EndDate != nil {
			rec.EndDate = p.EndDate.Format(DateLayout)
		}
		doc.Projects[i] = rec
	}
	return doc, nil
}
