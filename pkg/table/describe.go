package table

import (
	"math"
	"slices"

	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/guregu/null"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Describe summarises every numeric column of the table, missing values excluded.
func (t *Table) Describe() []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(types.NumericColumns))
	for _, column := range types.NumericColumns {
		if !t.HasColumn(column) {
			continue
		}
		summaries = append(summaries, summarize(column, t.values(column)))
	}
	return summaries
}

func (t *Table) values(column string) []float64 {
	values := make([]float64, 0, len(t.Rows))
	for i := range t.Rows {
		if v, ok := t.Rows[i].Measurement(column); ok && v.Valid {
			values = append(values, v.Float64)
		}
	}
	return values
}

func summarize(column string, values []float64) ColumnSummary {
	s := ColumnSummary{Column: column, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	mean, std := stat.MeanStdDev(values, nil)
	s.Mean = null.FloatFrom(mean)
	// Sample deviation needs two values
	if len(values) > 1 {
		s.Std = null.FloatFrom(std)
	}
	s.Min = null.FloatFrom(floats.Min(values))
	s.Max = null.FloatFrom(floats.Max(values))

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	s.P25 = null.FloatFrom(quantile(sorted, 0.25))
	s.P50 = null.FloatFrom(quantile(sorted, 0.50))
	s.P75 = null.FloatFrom(quantile(sorted, 0.75))
	return s
}

// quantile interpolates linearly between the closest ranks of sorted values,
// position (n-1)*p, the same way spreadsheet PERCENTILE does.
func quantile(sorted []float64, p float64) float64 {
	pos := float64(len(sorted)-1) * p
	lower := math.Floor(pos)
	upper := math.Ceil(pos)
	lo := sorted[int(lower)]
	hi := sorted[int(upper)]
	return lo + (hi-lo)*(pos-lower)
}
