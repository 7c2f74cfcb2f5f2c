package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray
// portfolio-viz.yaml or .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("data-file", "", "")
	fs.StringP("output-file-path", "o", "", "")
	fs.String("format", "", "")
	fs.String("log-level", "info", "")
	fs.Bool("log-json", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Data.File)
	assert.Empty(t, cfg.Output.File)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.False(t, cfg.EmitsCharts())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  file: data.yaml
output:
  file: out/charts.html
log:
  level: debug
  json: true
`), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "data.yaml", cfg.Data.File)
	assert.Equal(t, "out/charts.html", cfg.Output.File)
	assert.Equal(t, FormatHTML, cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.True(t, cfg.EmitsCharts())
}

func TestLoad_DefaultConfigFileInWorkingDir(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portfolio-viz.yaml"), []byte("log:\n  level: warn\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portfolio-viz.yaml"), []byte("log:\n  level: warn\n"), 0o600))
	t.Setenv("PORTFOLIO_VIZ_LOG_LEVEL", "error")
	t.Setenv("PORTFOLIO_VIZ_OUTPUT_FILE", "charts.json")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "charts.json", cfg.Output.File)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORTFOLIO_VIZ_LOG_LEVEL", "error")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "-o", "report.out", "--format", "HTML"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "report.out", cfg.Output.File)
	assert.Equal(t, FormatHTML, cfg.Output.Format)
}

func TestLoad_InvalidFormat(t *testing.T) {
	chdirTemp(t)
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--format", "pdf"}))

	_, err := Load("", fs)
	assert.ErrorContains(t, err, "invalid output format")
}
