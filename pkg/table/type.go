package table

import (
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/guregu/null"
)

// Table is an in-memory set of readings sharing the same columns.
// Stages never modify a Table they receive, they build a new one.
type Table struct {
	// Column names in source order, placeholder columns excluded
	Columns []string              `json:"columns"`
	Rows    []types.SensorReading `json:"rows"`
}

// ColumnSummary is one column of Describe.
// Statistics are invalid when the column has too few values to compute them.
type ColumnSummary struct {
	Column string     `json:"column"`
	Count  int        `json:"count"`
	Mean   null.Float `json:"mean"`
	Std    null.Float `json:"std"`
	Min    null.Float `json:"min"`
	P25    null.Float `json:"p25"`
	P50    null.Float `json:"p50"`
	P75    null.Float `json:"p75"`
	Max    null.Float `json:"max"`
}
