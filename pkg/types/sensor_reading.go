package types

import "github.com/guregu/null"

// CSV headers as exported by the soil sensor gateway.
const (
	ColumnSensorID    = "Sensor ID"
	ColumnPlantType1  = "Plant 1 Type"
	ColumnPlantType2  = "Plant 2 Type"
	ColumnDateRaw     = "DateTime"
	ColumnTimeRaw     = "DateTime2"
	ColumnTemperature = "Temperature"
	ColumnMoisture    = "Moisture Point (%)"
	ColumnBrightness  = "Brightness (%)"

	// Derived by the normalizer, never present in the source file.
	ColumnTimestamp = "DateTimeColumn"
)

// NumericColumns are coerced to numbers on load.
var NumericColumns = []string{
	ColumnTemperature,
	ColumnMoisture,
	ColumnBrightness,
}

type SensorReading struct {
	SensorID   string `json:"sensor_id"`
	PlantType1 string `json:"plant_type_1"`
	PlantType2 string `json:"plant_type_2"`

	// Raw date and time halves, combined by the normalizer
	DateRaw string `json:"date_raw"`
	TimeRaw string `json:"time_raw"`

	// Invalid until normalized, or when DateRaw/TimeRaw could not be parsed
	Timestamp null.Time `json:"timestamp"`

	// Measurements, invalid when the source cell was empty or not a number
	Temperature       null.Float `json:"temperature"`
	MoisturePercent   null.Float `json:"moisture_percent"`
	BrightnessPercent null.Float `json:"brightness_percent"`

	// Any other named column of the source file. Shared between derived tables, do not write.
	Extra map[string]string `json:"extra,omitempty"`
}

// Measurement returns the numeric value stored for one of NumericColumns.
func (r *SensorReading) Measurement(column string) (null.Float, bool) {
	switch column {
	case ColumnTemperature:
		return r.Temperature, true
	case ColumnMoisture:
		return r.MoisturePercent, true
	case ColumnBrightness:
		return r.BrightnessPercent, true
	}
	return null.Float{}, false
}

// Categorical returns the string stored for a categorical or raw text column.
func (r *SensorReading) Categorical(column string) (string, bool) {
	switch column {
	case ColumnSensorID:
		return r.SensorID, true
	case ColumnPlantType1:
		return r.PlantType1, true
	case ColumnPlantType2:
		return r.PlantType2, true
	case ColumnDateRaw:
		return r.DateRaw, true
	case ColumnTimeRaw:
		return r.TimeRaw, true
	}
	if v, ok := r.Extra[column]; ok {
		return v, true
	}
	return "", false
}
