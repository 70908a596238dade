package readingdb

import (
	"github.com/google/uuid"
	"github.com/guregu/null"
)

type ImportBatch struct {
	ID         uuid.UUID `db:"id"`
	Source     string    `db:"source"`
	ImportedAt int64     `db:"imported_at"`
	RowCount   int       `db:"row_count"`
	// JSON array of the table columns
	Columns string `db:"columns"`
}

type ReadingRow struct {
	BatchID           uuid.UUID  `db:"batch_id"`
	RowIndex          int        `db:"row_index"`
	SensorID          string     `db:"sensor_id"`
	PlantType1        string     `db:"plant_type_1"`
	PlantType2        string     `db:"plant_type_2"`
	DateRaw           string     `db:"date_raw"`
	TimeRaw           string     `db:"time_raw"`
	Timestamp         null.Int   `db:"timestamp"`
	Temperature       null.Float `db:"temperature"`
	MoisturePercent   null.Float `db:"moisture_percent"`
	BrightnessPercent null.Float `db:"brightness_percent"`
	// JSON object of the extra columns
	Extra null.String `db:"extra"`
}
