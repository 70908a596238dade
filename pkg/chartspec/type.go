package chartspec

import (
	"errors"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/guregu/null"
)

var ErrUnknownColumn = errors.New("unknown value column")

// ChartSpec describes a line chart independent of how it gets drawn.
type ChartSpec struct {
	Title       string   `json:"title"`
	XField      string   `json:"x_field"`
	YField      string   `json:"y_field"`
	SeriesField string   `json:"series_field"`
	Series      []Series `json:"series"`
}

// Series is the line of one sensor.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Point with an invalid Y is a gap in the line.
type Point struct {
	X time.Time  `json:"x"`
	Y null.Float `json:"y"`
}

// Measurement is one of the charts every view shows.
type Measurement struct {
	// URL friendly name
	Key    string `json:"key"`
	Column string `json:"column"`
	Title  string `json:"title"`
	Unit   string `json:"unit"`
}

var Measurements = []Measurement{
	{Key: "moisture", Column: types.ColumnMoisture, Title: "Moisture Time Series", Unit: "%"},
	{Key: "brightness", Column: types.ColumnBrightness, Title: "Brightness Time Series", Unit: "%"},
	{Key: "temperature", Column: types.ColumnTemperature, Title: "Temperature Time Series", Unit: "°C"},
}
