package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/NotCoffee418/gws_dashboard/pkg/viewclient"
	"github.com/spf13/cobra"
)

var (
	watchHost     string
	watchMode     string
	watchSensor   string
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow a running dashboard API and print a line per view update",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchHost, "host", "localhost:8501", "host:port of the dashboard API")
	watchCmd.Flags().StringVar(&watchMode, "mode", string(types.ViewOverall), "overall, by-sensor or by-plant-type")
	watchCmd.Flags().StringVar(&watchSensor, "sensor", "", "Sensor ID for by-sensor")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 30*time.Second, "How often to ask for a fresh view")
}

func runWatch(cmd *cobra.Command, args []string) error {
	mode, err := dashboard.ParseMode(watchMode)
	if err != nil {
		return err
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := viewclient.New(watchHost, logger)
	client.RefreshInterval = watchInterval

	out := cmd.OutOrStdout()
	return client.Watch(ctx, types.Selection{Mode: mode, SensorID: watchSensor}, func(view *dashboard.View) {
		fmt.Fprintln(out, summarizeView(view, time.Now()))
	})
}

// summarizeView renders one view as a single status line.
func summarizeView(view *dashboard.View, at time.Time) string {
	points := make([]string, 0, len(view.Charts))
	for _, chart := range view.Charts {
		points = append(points, fmt.Sprintf("%s=%d", chart.YField, chart.PointCount()))
	}
	line := fmt.Sprintf("%s  %s  rows=%d  %s",
		at.Format(time.TimeOnly), view.Title, view.Table.Len(), strings.Join(points, " "))
	if view.Selection.SensorID != "" {
		line += "  sensor=" + view.Selection.SensorID
	}
	return line
}
