package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/loader"
	"github.com/dustin/go-humanize"
	"github.com/guregu/null"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print what the loader makes of the CSV and summary statistics per measurement",
	Args:  cobra.NoArgs,
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	info, err := os.Stat(cfg.DataFile)
	if err != nil {
		return &loader.LoadError{Path: cfg.DataFile, Err: err}
	}
	t, report, err := loader.Load(cfg.DataFile, logger)
	if err != nil {
		return err
	}
	options := dashboard.OptionsFor(t)

	fmt.Fprintf(out, "File:      %s (%s, modified %s)\n", cfg.DataFile, humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
	fmt.Fprintf(out, "Rows:      %s\n", humanize.Comma(int64(report.Rows)))
	fmt.Fprintf(out, "Columns:   %s\n", strings.Join(t.Columns, ", "))
	if len(report.DroppedColumns) > 0 {
		fmt.Fprintf(out, "Dropped:   %s\n", strings.Join(report.DroppedColumns, ", "))
	}
	if len(report.MissingColumns) > 0 {
		fmt.Fprintf(out, "Missing:   %s\n", strings.Join(report.MissingColumns, ", "))
	}
	fmt.Fprintf(out, "Sensors:   %s\n", strings.Join(options.SensorIDs, ", "))
	fmt.Fprintf(out, "Plant 1:   %s\n", strings.Join(options.PlantTypes1, ", "))
	fmt.Fprintf(out, "Plant 2:   %s\n", strings.Join(options.PlantTypes2, ", "))
	fmt.Fprintf(out, "Not numeric: %s cells\n\n", humanize.Comma(int64(len(report.Warnings))))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax")
	for _, s := range t.Describe() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Column, humanize.Comma(int64(s.Count)),
			stat(s.Mean), stat(s.Std), stat(s.Min), stat(s.P25), stat(s.P50), stat(s.P75), stat(s.Max))
	}
	return tw.Flush()
}

func stat(v null.Float) string {
	if !v.Valid {
		return "-"
	}
	return humanize.FormatFloat("#,###.##", v.Float64)
}
