package aggregator

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// roundToHourStart returns the Unix timestamp of the start of the hour for the given time
func roundToHourStart(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC).Unix()
}

// getHourEnd returns the Unix timestamp of the last second of the hour (next hour start - 1)
func getHourEnd(hourStart int64) int64 {
	return time.Unix(hourStart, 0).Add(time.Hour).Unix() - 1
}

// AggregateHourly computes per sensor hourly averages of an archived import.
// Rows without a timestamp are not aggregated. Safe to run repeatedly.
func AggregateHourly(db *sql.DB, batchID uuid.UUID) error {
	// Query to calculate averages grouped by sensor and hour
	query := `
		SELECT
			sensor_id,
			MIN(timestamp) as first_timestamp,
			AVG(temperature) as avg_temperature,
			AVG(moisture_percent) as avg_moisture_percent,
			AVG(brightness_percent) as avg_brightness_percent,
			COUNT(*) as count
		FROM sensor_readings
		WHERE batch_id = ? AND timestamp IS NOT NULL
		GROUP BY sensor_id, timestamp - (timestamp % 3600)
	`

	rows, err := db.Query(query, batchID.String())
	if err != nil {
		return err
	}

	// Collect before writing, the archive only has a single connection
	aggregates := []HourlyAverage{}
	for rows.Next() {
		var a HourlyAverage
		var firstTimestamp int64
		if err := rows.Scan(
			&a.SensorID,
			&firstTimestamp,
			&a.AvgTemperature,
			&a.AvgMoisturePercent,
			&a.AvgBrightnessPercent,
			&a.SampleCount,
		); err != nil {
			rows.Close()
			return err
		}
		a.BatchID = batchID
		a.HourStart = roundToHourStart(time.Unix(firstTimestamp, 0).UTC())
		aggregates = append(aggregates, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	// Only insert if we have data
	if len(aggregates) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Insert or replace the aggregate
	insertQuery := `
		INSERT OR REPLACE INTO hourly_sensor_averages
		(batch_id, sensor_id, hour_start, avg_temperature, avg_moisture_percent, avg_brightness_percent, sample_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, a := range aggregates {
		_, err := tx.Exec(insertQuery,
			a.BatchID.String(), a.SensorID, a.HourStart,
			a.AvgTemperature, a.AvgMoisturePercent, a.AvgBrightnessPercent, a.SampleCount)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// HourlyAverages reads back the aggregates of a batch for the hour range [from, to].
func HourlyAverages(db *sql.DB, batchID uuid.UUID, from, to time.Time) ([]HourlyAverage, error) {
	rows, err := db.Query(`
		SELECT sensor_id, hour_start, avg_temperature, avg_moisture_percent, avg_brightness_percent, sample_count
		FROM hourly_sensor_averages
		WHERE batch_id = ? AND hour_start >= ? AND hour_start <= ?
		ORDER BY hour_start, sensor_id
	`, batchID.String(), roundToHourStart(from.UTC()), getHourEnd(roundToHourStart(to.UTC())))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []HourlyAverage{}
	for rows.Next() {
		a := HourlyAverage{BatchID: batchID}
		if err := rows.Scan(
			&a.SensorID,
			&a.HourStart,
			&a.AvgTemperature,
			&a.AvgMoisturePercent,
			&a.AvgBrightnessPercent,
			&a.SampleCount,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
