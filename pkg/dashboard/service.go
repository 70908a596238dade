package dashboard

import (
	"fmt"

	"github.com/NotCoffee418/gws_dashboard/pkg/chartspec"
	"github.com/NotCoffee418/gws_dashboard/pkg/filter"
	"github.com/NotCoffee418/gws_dashboard/pkg/logging"
	"github.com/NotCoffee418/gws_dashboard/pkg/normalizer"
	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"go.uber.org/zap"
)

var pageText = map[types.ViewMode][2]string{
	types.ViewOverall:     {"Overview", "An Overview of Time Series"},
	types.ViewBySensor:    {"Select by Sensor ID", "Select a Sensor ID to look into the details"},
	types.ViewByPlantType: {"Multi Select Plant Type", "Multi Select the Plant Types"},
}

func ParseMode(s string) (types.ViewMode, error) {
	if s == "" {
		return types.ViewOverall, nil
	}
	mode := types.ViewMode(s)
	if _, ok := pageText[mode]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return mode, nil
}

// Source returns the loaded, unfiltered table.
func (p *Pipeline) Source() (*table.Table, error) {
	return p.Cache.Get(p.SourcePath)
}

// PreparedTable loads, normalizes and filters the source for sel.
// Load failures are returned as *loader.LoadError.
func (p *Pipeline) PreparedTable(sel types.Selection) (*table.Table, []*normalizer.ParseError, error) {
	if _, err := ParseMode(string(sel.Mode)); err != nil {
		return nil, nil, err
	}
	src, err := p.Source()
	if err != nil {
		return nil, nil, err
	}

	normalized, parseErrors := normalizer.Normalize(src, p.Layouts, p.Logger)

	sel = resolveSelection(src, sel)
	switch sel.Mode {
	case types.ViewBySensor:
		return filter.BySensor(normalized, sel.SensorID), parseErrors, nil
	case types.ViewByPlantType:
		return filter.ByPlantTypes(normalized, sel.PlantTypes1, sel.PlantTypes2), parseErrors, nil
	}
	return normalized, parseErrors, nil
}

// Charts projects the three measurement charts of t.
func (p *Pipeline) Charts(t *table.Table) ([]chartspec.ChartSpec, error) {
	return chartspec.ProjectAll(t)
}

// Build runs the whole pipeline for one selection.
func (p *Pipeline) Build(sel types.Selection) (*View, error) {
	logger := logging.OrNop(p.Logger)

	mode, err := ParseMode(string(sel.Mode))
	if err != nil {
		return nil, err
	}
	sel.Mode = mode

	src, err := p.Source()
	if err != nil {
		logger.Error("Failed to load source", zap.String("path", p.SourcePath), zap.Error(err))
		return nil, err
	}
	sel = resolveSelection(src, sel)

	prepared, parseErrors, err := p.PreparedTable(sel)
	if err != nil {
		return nil, err
	}
	charts, err := p.Charts(prepared)
	if err != nil {
		return nil, err
	}

	if parseErrors == nil {
		parseErrors = []*normalizer.ParseError{}
	}
	text := pageText[mode]
	logger.Debug("Built view",
		zap.String("mode", string(mode)),
		zap.Int("rows", prepared.Len()),
		zap.Int("parse_errors", len(parseErrors)))

	return &View{
		Mode:        mode,
		Title:       text[0],
		Subtitle:    text[1],
		Selection:   sel,
		Options:     OptionsFor(src),
		Table:       prepared,
		Charts:      charts,
		ParseErrors: parseErrors,
	}, nil
}

func OptionsFor(t *table.Table) Options {
	return Options{
		SensorIDs:   t.Unique(types.ColumnSensorID),
		PlantTypes1: t.Unique(types.ColumnPlantType1),
		PlantTypes2: t.Unique(types.ColumnPlantType2),
	}
}

// resolveSelection fills the defaults the widgets would show:
// the by-sensor view starts on the first sensor of the table.
func resolveSelection(src *table.Table, sel types.Selection) types.Selection {
	if sel.Mode == "" {
		sel.Mode = types.ViewOverall
	}
	if sel.Mode == types.ViewBySensor && sel.SensorID == "" {
		if ids := src.Unique(types.ColumnSensorID); len(ids) > 0 {
			sel.SensorID = ids[0]
		}
	}
	return sel
}
