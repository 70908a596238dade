package chartrender

import (
	"io"
	"math"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/chartspec"
	"github.com/gosimple/slug"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Render draws spec as a time series line chart.
// Specs without a single plottable point become an empty "no data" chart.
func Render(spec chartspec.ChartSpec, format Format, w io.Writer, width, height int) error {
	series := []chart.Series{}
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)

	for i, s := range spec.Series {
		xs := make([]time.Time, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			// Gaps are bridged, go-chart has no notion of a missing value
			if !p.Y.Valid {
				continue
			}
			xs = append(xs, p.X)
			ys = append(ys, p.Y.Float64)

			x := chart.TimeToFloat64(p.X)
			xMin, xMax = math.Min(xMin, x), math.Max(xMax, x)
			yMin, yMax = math.Min(yMin, p.Y.Float64), math.Max(yMax, p.Y.Float64)
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(chart.GetDefaultColor(i)),
		})
	}

	graph := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 12}},
		XAxis: chart.XAxis{
			Name:           spec.XField,
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis: chart.YAxis{Name: spec.YField},
	}

	if len(series) == 0 {
		graph.Title = spec.Title + " (no data)"
		graph.XAxis = chart.XAxis{Name: spec.XField, Range: &chart.ContinuousRange{Min: 0, Max: 1}}
		graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: 1}
		graph.Series = []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
		}}
		return graph.Render(renderer(format), w)
	}

	// go-chart refuses zero-width ranges, widen them around the single value
	if xMin == xMax {
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: xMin - float64(time.Minute),
			Max: xMax + float64(time.Minute),
		}
	}
	if yMin == yMax {
		graph.YAxis.Range = &chart.ContinuousRange{Min: yMin - 1, Max: yMax + 1}
	}

	graph.Series = series
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(renderer(format), w)
}

// FileName is the slugged chart title with the format extension.
func FileName(spec chartspec.ChartSpec, format Format) string {
	name := slug.Make(spec.Title)
	if name == "" {
		name = "chart"
	}
	return name + "." + string(format)
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    2,
	}
}

func renderer(format Format) chart.RendererProvider {
	if format == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}
