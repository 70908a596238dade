package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NotCoffee418/gws_dashboard/pkg/chartrender"
	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderMode   string
	renderSensor string
	renderPlant1 []string
	renderPlant2 []string
	renderOut    string
	renderFormat string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the moisture, brightness and temperature charts of a view to files",
	Example: `  gwsctl render --mode by-sensor --sensor S1 --out ./charts
  gwsctl render --mode by-plant-type --plant1 Tomato --plant1 Basil --format svg`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderMode, "mode", string(types.ViewOverall), "overall, by-sensor or by-plant-type")
	renderCmd.Flags().StringVar(&renderSensor, "sensor", "", "Sensor ID for by-sensor (default: first sensor)")
	renderCmd.Flags().StringSliceVar(&renderPlant1, "plant1", nil, "Plant 1 types for by-plant-type")
	renderCmd.Flags().StringSliceVar(&renderPlant2, "plant2", nil, "Plant 2 types for by-plant-type")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "Output directory")
	renderCmd.Flags().StringVar(&renderFormat, "format", string(chartrender.FormatPNG), "png or svg")
}

func runRender(cmd *cobra.Command, args []string) error {
	mode, err := dashboard.ParseMode(renderMode)
	if err != nil {
		return err
	}
	format, err := chartrender.ParseFormat(renderFormat)
	if err != nil {
		return err
	}

	pipeline := newPipeline()
	prepared, parseErrors, err := pipeline.PreparedTable(types.Selection{
		Mode:        mode,
		SensorID:    renderSensor,
		PlantTypes1: renderPlant1,
		PlantTypes2: renderPlant2,
	})
	if err != nil {
		return err
	}
	charts, err := pipeline.Charts(prepared)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(renderOut, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, spec := range charts {
		path := filepath.Join(renderOut, chartrender.FileName(spec, format))
		if err := writeChart(path, func(f *os.File) error {
			return chartrender.Render(spec, format, f, cfg.ChartWidth, cfg.ChartHeight)
		}); err != nil {
			return err
		}
		logger.Debug("Rendered chart", zap.String("path", path), zap.Int("points", spec.PointCount()))
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	if len(parseErrors) > 0 {
		logger.Info("Rows without timestamp left out of the charts", zap.Int("rows", len(parseErrors)))
	}
	return nil
}

func writeChart(path string, render func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
