package readingdb

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/google/uuid"
	"github.com/guregu/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMigrated(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleTable() *table.Table {
	columns := []string{
		types.ColumnSensorID, types.ColumnPlantType1, types.ColumnPlantType2,
		types.ColumnDateRaw, types.ColumnTimeRaw, types.ColumnTemperature, "Battery", types.ColumnTimestamp,
	}
	return table.New(columns, []types.SensorReading{
		{
			SensorID: "S2", PlantType1: "Tomato", PlantType2: "Mint", DateRaw: "2024-01-01", TimeRaw: "09:00",
			Timestamp:         null.TimeFrom(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
			MoisturePercent:   null.FloatFrom(44),
			BrightnessPercent: null.FloatFrom(70.5),
			Extra:             map[string]string{"Battery": "low"},
		},
		{
			SensorID: "S1", PlantType1: "Tomato", PlantType2: "Basil", DateRaw: "someday", TimeRaw: "",
			Temperature: null.FloatFrom(22.5),
		},
	})
}

func TestInsertAndLoadBatch_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	src := sampleTable()

	batchID, err := InsertBatch(db, "soil.csv", src)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, batchID)

	loaded, err := LoadBatch(db, batchID)
	require.NoError(t, err)
	assert.Equal(t, src, loaded)
}

func TestInsertBatch_EmptyTable(t *testing.T) {
	db := openTestDB(t)

	batchID, err := InsertBatch(db, "empty.csv", sampleTable().WithRows(nil))
	require.NoError(t, err)

	loaded, err := LoadBatch(db, batchID)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
	assert.Len(t, loaded.Columns, 8)
}

func TestLoadBatch_Unknown(t *testing.T) {
	db := openTestDB(t)
	_, err := LoadBatch(db, uuid.New())
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestListAndLatestBatch(t *testing.T) {
	db := openTestDB(t)

	_, err := LatestBatch(db)
	assert.ErrorIs(t, err, ErrNoBatches)

	first, err := InsertBatch(db, "a.csv", sampleTable())
	require.NoError(t, err)
	second, err := InsertBatch(db, "b.csv", sampleTable())
	require.NoError(t, err)

	batches, err := ListBatches(db)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, second, batches[0].ID)
	assert.Equal(t, first, batches[1].ID)
	assert.Equal(t, 2, batches[0].RowCount)

	latest, err := LatestBatch(db)
	require.NoError(t, err)
	assert.Equal(t, "b.csv", latest.Source)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Migrate(db))
}
