package table

import (
	"slices"

	"github.com/NotCoffee418/gws_dashboard/pkg/gwsutils"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
)

const TimestampFormat = "2006-01-02 15:04:05"

func New(columns []string, rows []types.SensorReading) *Table {
	return &Table{
		Columns: slices.Clone(columns),
		Rows:    rows,
	}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone copies the row slice so the result can be reordered freely.
// Extra maps stay shared.
func (t *Table) Clone() *Table {
	return New(t.Columns, slices.Clone(t.Rows))
}

// WithRows returns a table with the same columns and the given rows.
func (t *Table) WithRows(rows []types.SensorReading) *Table {
	if rows == nil {
		rows = []types.SensorReading{}
	}
	return New(t.Columns, rows)
}

func (t *Table) HasColumn(column string) bool {
	return slices.Contains(t.Columns, column)
}

// Unique returns the distinct values of a text column in order of first appearance.
func (t *Table) Unique(column string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for i := range t.Rows {
		v, ok := t.Rows[i].Categorical(column)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// Cell returns the display text of a cell, empty for missing values.
func (t *Table) Cell(row int, column string) string {
	r := &t.Rows[row]
	if column == types.ColumnTimestamp {
		if !r.Timestamp.Valid {
			return ""
		}
		return r.Timestamp.Time.Format(TimestampFormat)
	}
	if v, ok := r.Measurement(column); ok {
		return gwsutils.FormatMeasurement(v)
	}
	v, _ := r.Categorical(column)
	return v
}

// Records renders the table as text rows, header first.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, slices.Clone(t.Columns))
	for i := range t.Rows {
		rec := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			rec[j] = t.Cell(i, col)
		}
		records = append(records, rec)
	}
	return records
}
