package aggregator

import (
	"github.com/google/uuid"
	"github.com/guregu/null"
)

// HourlyAverage is the mean of one sensor's readings within one hour of an import.
type HourlyAverage struct {
	BatchID              uuid.UUID  `db:"batch_id" json:"batch_id"`
	SensorID             string     `db:"sensor_id" json:"sensor_id"`
	HourStart            int64      `db:"hour_start" json:"hour_start"`
	AvgTemperature       null.Float `db:"avg_temperature" json:"avg_temperature"`
	AvgMoisturePercent   null.Float `db:"avg_moisture_percent" json:"avg_moisture_percent"`
	AvgBrightnessPercent null.Float `db:"avg_brightness_percent" json:"avg_brightness_percent"`
	SampleCount          uint32     `db:"sample_count" json:"sample_count"`
}
