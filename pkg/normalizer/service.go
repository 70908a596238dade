package normalizer

import (
	"slices"
	"strings"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/logging"
	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/guregu/null"
	"go.uber.org/zap"
)

// Normalize combines the raw date and time columns into a timestamp and sorts by it.
// Rows that do not parse keep a missing timestamp and are moved behind all others,
// one ParseError per such row. The input table is left untouched.
func Normalize(t *table.Table, layouts []string, logger *zap.Logger) (*table.Table, []*ParseError) {
	logger = logging.OrNop(logger)
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}

	out := t.Clone()
	if !out.HasColumn(types.ColumnTimestamp) {
		out.Columns = append(out.Columns, types.ColumnTimestamp)
	}

	var parseErrors []*ParseError
	for i := range out.Rows {
		row := &out.Rows[i]
		combined := strings.TrimSpace(row.DateRaw + " " + row.TimeRaw)
		ts, ok := parseDateTime(combined, layouts)
		if !ok {
			row.Timestamp = null.Time{}
			parseErrors = append(parseErrors, &ParseError{Row: i, Value: combined})
			logger.Warn("Unparsable date-time, timestamp left missing",
				zap.Int("row", i),
				zap.String("value", combined))
			continue
		}
		row.Timestamp = null.TimeFrom(ts)
	}

	slices.SortStableFunc(out.Rows, compareTimestamps)

	if len(parseErrors) > 0 {
		logger.Info("Normalized timestamps with failures",
			zap.Int("rows", out.Len()),
			zap.Int("parse_errors", len(parseErrors)))
	}
	return out, parseErrors
}

func parseDateTime(value string, layouts []string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Missing timestamps sort after every valid one.
func compareTimestamps(a, b types.SensorReading) int {
	switch {
	case a.Timestamp.Valid && b.Timestamp.Valid:
		return a.Timestamp.Time.Compare(b.Timestamp.Time)
	case a.Timestamp.Valid:
		return -1
	case b.Timestamp.Valid:
		return 1
	}
	return 0
}
