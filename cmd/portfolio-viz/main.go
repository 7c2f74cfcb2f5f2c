package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/user/portfolio-viz/internal/config"
	"github.com/user/portfolio-viz/internal/dataset"
	logging "github.com/user/portfolio-viz/internal/log"
	"github.com/user/portfolio-viz/internal/models"
	"github.com/user/portfolio-viz/internal/report"
	"github.com/user/portfolio-viz/internal/visualize"
)

const successMessage = "Skills and timeline visualizations generated successfully!"

var (
	// Used for flags.
	configFile string

	rootCmd = &cobra.Command{
		Use:   "portfolio-viz",
		Short: "Portfolio Viz renders the skills radar and project timeline charts.",
		Long: `Renders a radar chart of skill proficiency and a horizontal bar project
timeline as base64 encoded PNG images, then prints a status object.

The images are discarded unless --output-file-path is given, in which case
they are written as a JSON object or an HTML page.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := logging.Init(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON}); err != nil {
				return err
			}
			defer logging.Sync()

			return generate(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	sampleCmd = &cobra.Command{
		Use:   "sample",
		Short: "Prints the built-in data sets as a YAML data file.",
		Long:  `Prints the built-in skill and project data sets in the format accepted by --data-file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSample(cmd.OutOrStdout())
		},
	}
)

// generate loads the data, renders both charts, optionally writes them out
// and prints the status report.
func generate(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	ds, err := loadDataSet(cfg)
	if err != nil {
		return err
	}
	logging.LogInfo("Generating visualizations",
		zap.Int("skills", len(ds.Skills)),
		zap.Int("projects", len(ds.Projects)),
	)

	charts, err := visualize.Generate(ctx, ds)
	if err != nil {
		return fmt.Errorf("failed to generate visualizations: %w", err)
	}

	if cfg.EmitsCharts() {
		if err := writeReport(&charts, cfg.Output.Format, cfg.Output.File); err != nil {
			return err
		}
	} else {
		logging.LogDebug("Encoded charts were not emitted, set --output-file-path to keep them")
	}

	return printStatus(stdout)
}

func loadDataSet(cfg *config.Config) (*dataset.DataSet, error) {
	if cfg.Data.File == "" {
		return dataset.Sample(), nil
	}
	ds, err := dataset.Load(cfg.Data.File)
	if err != nil {
		return nil, err
	}
	logging.LogDebug("Loaded data file", zap.String("path", cfg.Data.File))
	return ds, nil
}

func writeReport(charts *models.Visualizations, format, outputFilePath string) error {
	absOutputFilePath, err := filepath.Abs(outputFilePath)
	if err != nil {
		return fmt.Errorf("invalid output file path '%s': %w", outputFilePath, err)
	}

	adapter, err := report.NewAdapter(format)
	if err != nil {
		return err
	}
	if err := adapter.PrepareData(charts); err != nil {
		return fmt.Errorf("failed to prepare %s report data: %w", format, err)
	}
	if err := adapter.Write(absOutputFilePath); err != nil {
		return fmt.Errorf("failed to write %s report to %s: %w", format, absOutputFilePath, err)
	}

	logging.LogInfo("Charts written", zap.String("format", format), zap.String("path", absOutputFilePath))
	return nil
}

func printStatus(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(models.Status{VisualizationsGenerated: true}); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}
	_, err := fmt.Fprintln(w, successMessage)
	return err
}

func writeSample(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dataset.Sample()); err != nil {
		return fmt.Errorf("failed to encode sample data: %w", err)
	}
	return enc.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./portfolio-viz.yaml)")

	rootCmd.Flags().String("data-file", "", "YAML or JSON file with skills and projects (default built-in sample data)")
	rootCmd.Flags().StringP("output-file-path", "o", "", "Write the encoded charts to this file")
	rootCmd.Flags().String("format", "", "Report format, html or json (default from the output file extension)")
	rootCmd.Flags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.Flags().Bool("log-json", false, "Log as JSON")

	rootCmd.AddCommand(sampleCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
