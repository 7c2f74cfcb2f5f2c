package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/user/portfolio-viz/internal/models"
)

//go:embed templates/charts.html.tmpl
var templateFS embed.FS

const (
	htmlTemplateName = "charts.html.tmpl"
	reportTitle      = "Data Visualizations"
)

// ReportAdapter defines the interface for writing the generated charts out.
type ReportAdapter interface {
	PrepareData(charts *models.Visualizations) error
	Write(outputFilePath string) error
}

// NewAdapter returns the adapter for format, "json" or "html".
func NewAdapter(format string) (ReportAdapter, error) {
	switch format {
	case "json":
		return &JSONReportAdapter{}, nil
	case "html":
		return &HTMLReportAdapter{}, nil
	default:
		return nil, fmt.Errorf("invalid report format '%s'. Must be 'html' or 'json'", format)
	}
}

// --- JSON Report Adapter ---

// JSONReportAdapter writes the charts as a {"skills_chart", "timeline_chart"} object.
type JSONReportAdapter struct {
	reportData []byte
}

// PrepareData marshals the charts into JSON.
func (jra *JSONReportAdapter) PrepareData(charts *models.Visualizations) error {
	jsonData, err := json.MarshalIndent(charts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal charts to JSON: %w", err)
	}
	jra.reportData = jsonData
	return nil
}

// Write saves the JSON report data to the specified output file.
func (jra *JSONReportAdapter) Write(outputFilePath string) error {
	return writeFile(outputFilePath, jra.reportData)
}

// --- HTML Report Adapter ---

// HTMLReportAdapter writes a standalone page with both charts inlined as data URIs.
type HTMLReportAdapter struct {
	// Now is used for the generation timestamp. Defaults to time.Now.
	Now       func() time.Time
	reportBuf bytes.Buffer
}

// PrepareData renders the HTML page.
func (hra *HTMLReportAdapter) PrepareData(charts *models.Visualizations) error {
	now := time.Now
	if hra.Now != nil {
		now = hra.Now
	}

	funcMap := template.FuncMap{
		"FormatDateTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05 MST")
		},
	}

	tmpl, err := template.New(htmlTemplateName).Funcs(funcMap).ParseFS(templateFS, "templates/"+htmlTemplateName)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template %s: %w", htmlTemplateName, err)
	}

	templateData := struct {
		Title         string
		SkillsChart   template.URL
		TimelineChart template.URL
		Generated     time.Time
	}{
		Title:         reportTitle,
		SkillsChart:   pngDataURI(charts.SkillsChart),
		TimelineChart: pngDataURI(charts.TimelineChart),
		Generated:     now(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return fmt.Errorf("failed to execute HTML template: %w", err)
	}
	hra.reportBuf = buf
	return nil
}

// Write saves the HTML report data to the specified output file.
func (hra *HTMLReportAdapter) Write(outputFilePath string) error {
	return writeFile(outputFilePath, hra.reportBuf.Bytes())
}

// pngDataURI wraps base64 PNG data for use in an img src attribute.
func pngDataURI(b64 string) template.URL {
	return template.URL("data:image/png;base64," + b64)
}

func writeFile(outputFilePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outputFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for report file %s: %w", outputFilePath, err)
	}
	if err := os.WriteFile(outputFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", outputFilePath, err)
	}
	return nil
}
