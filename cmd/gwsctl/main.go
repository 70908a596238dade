// Operator CLI for the soil sensor data: render charts, inspect the CSV,
// archive it into SQLite and follow a running dashboard API.
package main

import (
	"fmt"
	"os"

	"github.com/NotCoffee418/gws_dashboard/pkg/config"
	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/loader"
	"github.com/NotCoffee418/gws_dashboard/pkg/logging"
	"github.com/NotCoffee418/gws_dashboard/pkg/pathing"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataFile   string

	cfg    *config.DashboardConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "gwsctl",
	Short:         "GWS soil sensor dashboard tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		if dataFile != "" {
			cfg.DataFile = dataFile
		}

		logger, err = logging.NewLogger(cfg.LogLevel, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to dashboard.toml (default: config dir)")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "", "CSV file to read instead of data_file from the config")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.DashboardConfig, error) {
	if configPath != "" {
		return config.LoadDashboardConfigFrom(configPath)
	}
	if err := pathing.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	if err := config.LoadDashboardConfig(); err != nil {
		return nil, err
	}
	return config.ActiveDashboardConfig, nil
}

func newPipeline() *dashboard.Pipeline {
	return &dashboard.Pipeline{
		Cache:      loader.NewCache(logger),
		SourcePath: cfg.DataFile,
		Layouts:    cfg.DateTimeLayouts,
		Logger:     logger,
	}
}
