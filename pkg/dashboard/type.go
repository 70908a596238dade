package dashboard

import (
	"errors"

	"github.com/NotCoffee418/gws_dashboard/pkg/chartspec"
	"github.com/NotCoffee418/gws_dashboard/pkg/loader"
	"github.com/NotCoffee418/gws_dashboard/pkg/normalizer"
	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"go.uber.org/zap"
)

var ErrUnknownMode = errors.New("unknown view mode")

// Pipeline prepares tables and charts for the UI shell.
// Every call is an independent run over the cached source table.
type Pipeline struct {
	Cache      *loader.Cache
	SourcePath string
	// Empty uses normalizer.DefaultLayouts
	Layouts []string
	Logger  *zap.Logger
}

// Options are the widget choices of the whole source table.
type Options struct {
	SensorIDs   []string `json:"sensor_ids"`
	PlantTypes1 []string `json:"plant_types_1"`
	PlantTypes2 []string `json:"plant_types_2"`
}

// View is everything one page render needs.
type View struct {
	Mode        types.ViewMode           `json:"mode"`
	Title       string                   `json:"title"`
	Subtitle    string                   `json:"subtitle"`
	Selection   types.Selection          `json:"selection"`
	Options     Options                  `json:"options"`
	Table       *table.Table             `json:"table"`
	Charts      []chartspec.ChartSpec    `json:"charts"`
	ParseErrors []*normalizer.ParseError `json:"parse_errors"`
}

// ErrorResponse is sent to the UI shell instead of a View when a run fails.
type ErrorResponse struct {
	Error string `json:"error"`
}
