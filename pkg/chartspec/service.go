package chartspec

import (
	"fmt"

	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
)

// Project builds one series per sensor ID, in order of first appearance in t.
// Rows without a timestamp have no x position and are left out of their series.
// An empty or nil table gives a spec without series.
func Project(t *table.Table, valueColumn, title string) (ChartSpec, error) {
	var probe types.SensorReading
	if _, ok := probe.Measurement(valueColumn); !ok {
		return ChartSpec{}, fmt.Errorf("%w: %q", ErrUnknownColumn, valueColumn)
	}

	spec := ChartSpec{
		Title:       title,
		XField:      types.ColumnTimestamp,
		YField:      valueColumn,
		SeriesField: types.ColumnSensorID,
		Series:      []Series{},
	}
	if t.Len() == 0 {
		return spec, nil
	}

	index := make(map[string]int)
	for i := range t.Rows {
		row := &t.Rows[i]
		idx, ok := index[row.SensorID]
		if !ok {
			idx = len(spec.Series)
			index[row.SensorID] = idx
			spec.Series = append(spec.Series, Series{Name: row.SensorID, Points: []Point{}})
		}
		if !row.Timestamp.Valid {
			continue
		}
		value, _ := row.Measurement(valueColumn)
		spec.Series[idx].Points = append(spec.Series[idx].Points, Point{X: row.Timestamp.Time, Y: value})
	}
	return spec, nil
}

// ProjectAll builds the chart of every entry in Measurements, in that order.
func ProjectAll(t *table.Table) ([]ChartSpec, error) {
	specs := make([]ChartSpec, 0, len(Measurements))
	for _, m := range Measurements {
		spec, err := Project(t, m.Column, m.Title)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func MeasurementByKey(key string) (Measurement, bool) {
	for _, m := range Measurements {
		if m.Key == key {
			return m, true
		}
	}
	return Measurement{}, false
}

// PointCount is the number of plotted points over all series.
func (s ChartSpec) PointCount() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}
