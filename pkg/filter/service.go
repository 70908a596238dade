// Package filter narrows a table down to the rows a dashboard view asks for.
// Filters never fail: no match, or an empty selection, is an empty table.
package filter

import (
	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
)

// BySensor keeps rows whose sensor ID equals sensorID exactly.
func BySensor(t *table.Table, sensorID string) *table.Table {
	return where(t, func(r *types.SensorReading) bool {
		return r.SensorID == sensorID
	})
}

// ByPlantTypes keeps rows whose first plant type is in types1 and second plant type is in types2.
// An empty set on either side matches nothing.
func ByPlantTypes(t *table.Table, types1, types2 []string) *table.Table {
	set1 := toSet(types1)
	set2 := toSet(types2)
	return where(t, func(r *types.SensorReading) bool {
		_, ok1 := set1[r.PlantType1]
		_, ok2 := set2[r.PlantType2]
		return ok1 && ok2
	})
}

func where(t *table.Table, keep func(r *types.SensorReading) bool) *table.Table {
	rows := []types.SensorReading{}
	for i := range t.Rows {
		if keep(&t.Rows[i]) {
			rows = append(rows, t.Rows[i])
		}
	}
	return t.WithRows(rows)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
