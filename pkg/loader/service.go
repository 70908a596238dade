package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/NotCoffee418/gws_dashboard/pkg/gwsutils"
	"github.com/NotCoffee418/gws_dashboard/pkg/logging"
	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"go.uber.org/zap"
)

// Headers of spurious index columns, e.g. "Unnamed: 0" from a re-exported dataframe.
var placeholderPattern = regexp.MustCompile(`^Unnamed`)

var requiredColumns = []string{
	types.ColumnSensorID,
	types.ColumnPlantType1,
	types.ColumnPlantType2,
	types.ColumnDateRaw,
	types.ColumnTimeRaw,
	types.ColumnTemperature,
	types.ColumnMoisture,
	types.ColumnBrightness,
}

// Load reads a CSV (or .tsv) file into a table.
// Placeholder columns are dropped and measurement columns coerced to numbers;
// cells that do not parse become missing and are listed in the report.
func Load(path string, logger *zap.Logger) (*table.Table, *Report, error) {
	logger = logging.OrNop(logger)

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comma = sniffDelimiter(path)

	report := &Report{
		Path:           path,
		DroppedColumns: []string{},
		MissingColumns: []string{},
		Warnings:       []CoercionWarning{},
	}

	// Read header
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table.New(nil, []types.SensorReading{}), report, nil
		}
		return nil, nil, &LoadError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}

	// Resolve column names, empty for dropped columns
	names := make([]string, len(header))
	columns := make([]string, 0, len(header))
	seen := make(map[string]int)
	for i, h := range header {
		name := h
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if name == "" || placeholderPattern.MatchString(name) {
			report.DroppedColumns = append(report.DroppedColumns, h)
			continue
		}
		name = uniqueName(seen, name)
		names[i] = name
		columns = append(columns, name)
	}
	for _, col := range requiredColumns {
		if _, ok := seen[col]; !ok {
			report.MissingColumns = append(report.MissingColumns, col)
		}
	}
	if len(report.MissingColumns) > 0 {
		logger.Warn("Source is missing expected columns",
			zap.String("path", path),
			zap.Strings("columns", report.MissingColumns))
	}

	rows := []types.SensorReading{}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, &LoadError{Path: path, Err: fmt.Errorf("read row %d: %w", len(rows)+1, err)}
		}
		line, _ := r.FieldPos(0)

		reading := types.SensorReading{}
		for i, name := range names {
			if name == "" {
				continue
			}
			var cell string
			if i < len(rec) {
				cell = rec[i]
			}
			if warn := assign(&reading, name, cell); warn != nil {
				warn.Row = len(rows)
				warn.Line = line
				report.Warnings = append(report.Warnings, *warn)
				logger.Warn("Coerced non-numeric cell to missing",
					zap.String("path", path),
					zap.Int("line", line),
					zap.String("column", name),
					zap.String("value", cell))
			}
		}
		rows = append(rows, reading)
	}

	report.Rows = len(rows)
	logger.Info("Loaded sensor data",
		zap.String("path", path),
		zap.Int("rows", report.Rows),
		zap.Int("dropped_columns", len(report.DroppedColumns)),
		zap.Int("coercion_warnings", len(report.Warnings)))

	return table.New(columns, rows), report, nil
}

// uniqueName registers name in seen. A name already taken gets the first free
// numeric suffix, so generated names never collide with real headers.
func uniqueName(seen map[string]int, name string) string {
	if _, dup := seen[name]; dup {
		base := name
		for n := seen[base] + 1; ; n++ {
			candidate := fmt.Sprintf("%s.%d", base, n)
			if _, taken := seen[candidate]; !taken {
				seen[base] = n
				name = candidate
				break
			}
		}
	}
	seen[name] = 0
	return name
}

// assign stores one cell on the reading, returning a warning when a numeric cell was garbage.
func assign(reading *types.SensorReading, column, cell string) *CoercionWarning {
	switch column {
	case types.ColumnSensorID:
		reading.SensorID = cell
	case types.ColumnPlantType1:
		reading.PlantType1 = cell
	case types.ColumnPlantType2:
		reading.PlantType2 = cell
	case types.ColumnDateRaw:
		reading.DateRaw = cell
	case types.ColumnTimeRaw:
		reading.TimeRaw = cell
	case types.ColumnTemperature, types.ColumnMoisture, types.ColumnBrightness:
		value, err := gwsutils.ParseMeasurement(cell)
		switch column {
		case types.ColumnTemperature:
			reading.Temperature = value
		case types.ColumnMoisture:
			reading.MoisturePercent = value
		case types.ColumnBrightness:
			reading.BrightnessPercent = value
		}
		if err != nil {
			return &CoercionWarning{Column: column, Value: cell}
		}
	default:
		if reading.Extra == nil {
			reading.Extra = make(map[string]string)
		}
		reading.Extra[column] = cell
	}
	return nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func NewCache(logger *zap.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*table.Table),
		logger:  logging.OrNop(logger),
	}
}

// Get returns the table for path, loading it on first use.
// Failed loads are not cached.
func (c *Cache) Get(path string) (*table.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.entries[path]; ok {
		return t, nil
	}

	t, _, err := Load(path, c.logger)
	if err != nil {
		return nil, err
	}
	c.entries[path] = t
	return t, nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
