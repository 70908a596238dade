package normalizer

import (
	"testing"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/guregu/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseColumns = []string{types.ColumnSensorID, types.ColumnDateRaw, types.ColumnTimeRaw, types.ColumnTemperature}

func reading(id, date, clock string) types.SensorReading {
	return types.SensorReading{SensorID: id, DateRaw: date, TimeRaw: clock}
}

func TestNormalize_SortsByTimestamp(t *testing.T) {
	src := table.New(baseColumns, []types.SensorReading{
		{SensorID: "S1", DateRaw: "2024-01-01", TimeRaw: "10:00", Temperature: null.FloatFrom(22.5)},
		{SensorID: "S2", DateRaw: "2024-01-01", TimeRaw: "09:00"},
	})

	out, errs := Normalize(src, nil, nil)
	require.Empty(t, errs)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "S2", out.Rows[0].SensorID)
	assert.Equal(t, "S1", out.Rows[1].SensorID)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), out.Rows[0].Timestamp.Time)
	assert.False(t, out.Rows[0].Temperature.Valid)
	assert.Equal(t, 22.5, out.Rows[1].Temperature.Float64)
	assert.Equal(t, types.ColumnTimestamp, out.Columns[len(out.Columns)-1])
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	src := table.New(baseColumns, []types.SensorReading{
		reading("late", "2024-03-01", "12:00"),
		reading("early", "2024-02-01", "12:00"),
	})

	_, _ = Normalize(src, nil, nil)

	assert.Equal(t, "late", src.Rows[0].SensorID)
	assert.False(t, src.Rows[0].Timestamp.Valid)
	assert.Equal(t, baseColumns, src.Columns)
}

func TestNormalize_UnparsableRowsSortLastAndStable(t *testing.T) {
	src := table.New(baseColumns, []types.SensorReading{
		reading("bad-1", "yesterday", "noon"),
		reading("b", "2024-01-02", "08:00"),
		reading("bad-2", "", ""),
		reading("a", "2024-01-01", "08:00"),
		reading("tie-1", "2024-01-02", "08:00"),
		reading("bad-3", "2024-13-45", "99:99"),
	})

	out, errs := Normalize(src, nil, nil)

	ids := make([]string, 0, out.Len())
	for _, r := range out.Rows {
		ids = append(ids, r.SensorID)
	}
	assert.Equal(t, []string{"a", "b", "tie-1", "bad-1", "bad-2", "bad-3"}, ids)

	require.Len(t, errs, 3)
	assert.Equal(t, &ParseError{Row: 0, Value: "yesterday noon"}, errs[0])
	assert.Equal(t, 2, errs[1].Row)
	assert.Equal(t, "", errs[1].Value)
	assert.Contains(t, errs[2].Error(), "2024-13-45 99:99")

	for i := 1; i < out.Len(); i++ {
		prev, cur := out.Rows[i-1].Timestamp, out.Rows[i].Timestamp
		if prev.Valid && cur.Valid {
			assert.False(t, cur.Time.Before(prev.Time), "rows %d and %d out of order", i-1, i)
		}
		if !prev.Valid {
			assert.False(t, cur.Valid, "valid timestamp after a missing one at %d", i)
		}
	}
}

func TestNormalize_Layouts(t *testing.T) {
	testCases := []struct {
		date, clock string
		want        time.Time
	}{
		{"2024-01-05", "13:45:10", time.Date(2024, 1, 5, 13, 45, 10, 0, time.UTC)},
		{"2024/01/05", "13:45", time.Date(2024, 1, 5, 13, 45, 0, 0, time.UTC)},
		{"1/5/2024", "1:45 PM", time.Date(2024, 1, 5, 13, 45, 0, 0, time.UTC)},
		{"01/05/2024", "07:05:00", time.Date(2024, 1, 5, 7, 5, 0, 0, time.UTC)},
		{"05.01.2024", "13:45", time.Date(2024, 1, 5, 13, 45, 0, 0, time.UTC)},
		{"2024-01-05", "", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.date+" "+tc.clock, func(t *testing.T) {
			src := table.New(baseColumns, []types.SensorReading{reading("S", tc.date, tc.clock)})
			out, errs := Normalize(src, nil, nil)
			require.Empty(t, errs)
			assert.True(t, tc.want.Equal(out.Rows[0].Timestamp.Time), "got %s", out.Rows[0].Timestamp.Time)
		})
	}
}

func TestNormalize_CustomLayouts(t *testing.T) {
	src := table.New(baseColumns, []types.SensorReading{
		reading("dmy", "05/01/2024", "10:00"),
	})

	out, errs := Normalize(src, []string{"02/01/2006 15:04"}, nil)
	require.Empty(t, errs)
	assert.Equal(t, time.January, out.Rows[0].Timestamp.Time.Month())
	assert.Equal(t, 5, out.Rows[0].Timestamp.Time.Day())
}

func TestNormalize_EmptyTableAndExistingColumn(t *testing.T) {
	src := table.New(append(baseColumns, types.ColumnTimestamp), []types.SensorReading{})

	out, errs := Normalize(src, nil, nil)
	assert.Empty(t, errs)
	assert.Equal(t, 0, out.Len())
	assert.Len(t, out.Columns, len(baseColumns)+1, "timestamp column is not added twice")
}
