package types

type ViewMode string

const (
	ViewOverall     ViewMode = "overall"
	ViewBySensor    ViewMode = "by-sensor"
	ViewByPlantType ViewMode = "by-plant-type"
)

var ViewModes = []ViewMode{ViewOverall, ViewBySensor, ViewByPlantType}

// Selection is what the UI shell sends on every widget change.
type Selection struct {
	Mode        ViewMode `json:"mode"`
	SensorID    string   `json:"sensor_id,omitempty"`
	PlantTypes1 []string `json:"plant_types_1,omitempty"`
	PlantTypes2 []string `json:"plant_types_2,omitempty"`
}
