package readingdb

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/google/uuid"
	"github.com/guregu/null"
)

var ErrNoBatches = errors.New("archive has no imports")

// InsertBatch stores every row of t under a new batch ID in one transaction.
func InsertBatch(db *sql.DB, source string, t *table.Table) (uuid.UUID, error) {
	batchID := uuid.New()
	columns, err := json.Marshal(t.Columns)
	if err != nil {
		return uuid.Nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO import_batches (id, source, imported_at, row_count, columns) "+
			"VALUES (?, ?, ?, ?, ?)",
		batchID.String(),
		source,
		time.Now().Unix(),
		t.Len(),
		string(columns),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert batch: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO sensor_readings " +
			"(batch_id, row_index, sensor_id, plant_type_1, plant_type_2, date_raw, time_raw, " +
			"timestamp, temperature, moisture_percent, brightness_percent, extra) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return uuid.Nil, err
	}
	defer stmt.Close()

	for i := range t.Rows {
		row, err := toRow(batchID, i, &t.Rows[i])
		if err != nil {
			return uuid.Nil, err
		}
		_, err = stmt.Exec(
			row.BatchID.String(),
			row.RowIndex,
			row.SensorID,
			row.PlantType1,
			row.PlantType2,
			row.DateRaw,
			row.TimeRaw,
			row.Timestamp,
			row.Temperature,
			row.MoisturePercent,
			row.BrightnessPercent,
			row.Extra,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return batchID, nil
}

// LoadBatch rebuilds the table of an import, rows in their original order.
func LoadBatch(db *sql.DB, batchID uuid.UUID) (*table.Table, error) {
	var columnsJSON string
	err := db.QueryRow("SELECT columns FROM import_batches WHERE id = ?", batchID.String()).Scan(&columnsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("batch %s: %w", batchID, sql.ErrNoRows)
		}
		return nil, err
	}
	var columns []string
	if err := json.Unmarshal([]byte(columnsJSON), &columns); err != nil {
		return nil, fmt.Errorf("batch %s columns: %w", batchID, err)
	}

	rows, err := db.Query(
		"SELECT row_index, sensor_id, plant_type_1, plant_type_2, date_raw, time_raw, "+
			"timestamp, temperature, moisture_percent, brightness_percent, extra "+
			"FROM sensor_readings WHERE batch_id = ? ORDER BY row_index",
		batchID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []types.SensorReading{}
	for rows.Next() {
		var r ReadingRow
		if err := rows.Scan(
			&r.RowIndex, &r.SensorID, &r.PlantType1, &r.PlantType2, &r.DateRaw, &r.TimeRaw,
			&r.Timestamp, &r.Temperature, &r.MoisturePercent, &r.BrightnessPercent, &r.Extra,
		); err != nil {
			return nil, err
		}
		reading, err := fromRow(&r)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table.New(columns, readings), nil
}

// ListBatches returns all imports, newest first.
func ListBatches(db *sql.DB) ([]ImportBatch, error) {
	rows, err := db.Query(
		"SELECT id, source, imported_at, row_count, columns FROM import_batches " +
			"ORDER BY imported_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := []ImportBatch{}
	for rows.Next() {
		var b ImportBatch
		if err := rows.Scan(&b.ID, &b.Source, &b.ImportedAt, &b.RowCount, &b.Columns); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func LatestBatch(db *sql.DB) (ImportBatch, error) {
	batches, err := ListBatches(db)
	if err != nil {
		return ImportBatch{}, err
	}
	if len(batches) == 0 {
		return ImportBatch{}, ErrNoBatches
	}
	return batches[0], nil
}

func toRow(batchID uuid.UUID, index int, r *types.SensorReading) (ReadingRow, error) {
	row := ReadingRow{
		BatchID:           batchID,
		RowIndex:          index,
		SensorID:          r.SensorID,
		PlantType1:        r.PlantType1,
		PlantType2:        r.PlantType2,
		DateRaw:           r.DateRaw,
		TimeRaw:           r.TimeRaw,
		Temperature:       r.Temperature,
		MoisturePercent:   r.MoisturePercent,
		BrightnessPercent: r.BrightnessPercent,
	}
	if r.Timestamp.Valid {
		row.Timestamp = null.IntFrom(r.Timestamp.Time.Unix())
	}
	if len(r.Extra) > 0 {
		extra, err := json.Marshal(r.Extra)
		if err != nil {
			return ReadingRow{}, err
		}
		row.Extra = null.StringFrom(string(extra))
	}
	return row, nil
}

func fromRow(row *ReadingRow) (types.SensorReading, error) {
	r := types.SensorReading{
		SensorID:          row.SensorID,
		PlantType1:        row.PlantType1,
		PlantType2:        row.PlantType2,
		DateRaw:           row.DateRaw,
		TimeRaw:           row.TimeRaw,
		Temperature:       row.Temperature,
		MoisturePercent:   row.MoisturePercent,
		BrightnessPercent: row.BrightnessPercent,
	}
	if row.Timestamp.Valid {
		r.Timestamp = null.TimeFrom(time.Unix(row.Timestamp.Int64, 0).UTC())
	}
	if row.Extra.Valid {
		if err := json.Unmarshal([]byte(row.Extra.String), &r.Extra); err != nil {
			return types.SensorReading{}, fmt.Errorf("row %d extra: %w", row.RowIndex, err)
		}
	}
	return r, nil
}
