package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/aggregator"
	"github.com/NotCoffee418/gws_dashboard/pkg/loader"
	"github.com/NotCoffee418/gws_dashboard/pkg/normalizer"
	"github.com/NotCoffee418/gws_dashboard/pkg/readingdb"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var archiveList bool

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Import the CSV into the SQLite archive and compute hourly averages",
	Args:  cobra.NoArgs,
	RunE:  runArchive,
}

func init() {
	archiveCmd.Flags().BoolVarP(&archiveList, "list", "l", false, "List archived imports instead of importing")
}

func runArchive(cmd *cobra.Command, args []string) error {
	db, err := readingdb.OpenMigrated(cfg.ArchiveDbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if archiveList {
		return listBatches(cmd, db)
	}

	t, _, err := loader.Load(cfg.DataFile, logger)
	if err != nil {
		return err
	}
	normalized, _ := normalizer.Normalize(t, cfg.DateTimeLayouts, logger)

	batchID, err := readingdb.InsertBatch(db, cfg.DataFile, normalized)
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", cfg.DataFile, err)
	}
	if err := aggregator.AggregateHourly(db, batchID); err != nil {
		return fmt.Errorf("failed to aggregate batch %s: %w", batchID, err)
	}

	logger.Info("Archived readings",
		zap.String("batch_id", batchID.String()),
		zap.String("source", cfg.DataFile),
		zap.Int("rows", normalized.Len()))
	fmt.Fprintln(cmd.OutOrStdout(), batchID)
	return nil
}

func listBatches(cmd *cobra.Command, db *sql.DB) error {
	batches, err := readingdb.ListBatches(db)
	if err != nil {
		return err
	}
	for _, b := range batches {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s rows  %s  %s\n",
			b.ID, humanize.Comma(int64(b.RowCount)), humanize.Time(time.Unix(b.ImportedAt, 0)), b.Source)
	}
	return nil
}
