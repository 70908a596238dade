package dashboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NotCoffee418/gws_dashboard/pkg/loader"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const soilCSV = `Unnamed: 0,Sensor ID,Plant 1 Type,Plant 2 Type,DateTime,DateTime2,Temperature,Moisture Point (%),Brightness (%)
0,S1,Tomato,Basil,2024-01-01,10:00,22.5,41,80
1,S2,Tomato,Mint,2024-01-01,09:00,bad,44,70
2,S3,Pepper,Basil,2024-01-01,11:00,19,39,60
3,S1,Tomato,Basil,2024-01-01,12:00,23,40,82
4,S2,Pepper,Basil,someday,later,20,43,71
`

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	path := filepath.Join(t.TempDir(), "soilSensorData.csv")
	require.NoError(t, os.WriteFile(path, []byte(soilCSV), 0644))
	return &Pipeline{Cache: loader.NewCache(nil), SourcePath: path}
}

func sensorIDs(v *View) []string {
	ids := []string{}
	for _, r := range v.Table.Rows {
		ids = append(ids, r.SensorID)
	}
	return ids
}

func TestBuild_Overall(t *testing.T) {
	p := newPipeline(t)

	view, err := p.Build(types.Selection{Mode: types.ViewOverall})
	require.NoError(t, err)

	assert.Equal(t, "Overview", view.Title)
	assert.Equal(t, []string{"S2", "S1", "S3", "S1", "S2"}, sensorIDs(view))
	assert.False(t, view.Table.Rows[0].Temperature.Valid, "S2 temperature was garbage")
	assert.Equal(t, 22.5, view.Table.Rows[1].Temperature.Float64)
	assert.False(t, view.Table.Rows[4].Timestamp.Valid, "unparsable row sorts last")
	require.Len(t, view.ParseErrors, 1)

	require.Len(t, view.Charts, 3)
	assert.Equal(t, "Moisture Time Series", view.Charts[0].Title)
	names := []string{}
	for _, s := range view.Charts[0].Series {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"S2", "S1", "S3"}, names)

	assert.Equal(t, Options{
		SensorIDs:   []string{"S1", "S2", "S3"},
		PlantTypes1: []string{"Tomato", "Pepper"},
		PlantTypes2: []string{"Basil", "Mint"},
	}, view.Options)
}

func TestBuild_BySensor(t *testing.T) {
	p := newPipeline(t)

	view, err := p.Build(types.Selection{Mode: types.ViewBySensor, SensorID: "S1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S1"}, sensorIDs(view))
	assert.Len(t, view.Charts[2].Series, 1)

	defaulted, err := p.Build(types.Selection{Mode: types.ViewBySensor})
	require.NoError(t, err)
	assert.Equal(t, "S1", defaulted.Selection.SensorID, "first sensor of the file is the default")

	unknown, err := p.Build(types.Selection{Mode: types.ViewBySensor, SensorID: "S9"})
	require.NoError(t, err)
	assert.Equal(t, 0, unknown.Table.Len())
	for _, chart := range unknown.Charts {
		assert.Empty(t, chart.Series)
	}
}

func TestBuild_ByPlantType(t *testing.T) {
	p := newPipeline(t)

	view, err := p.Build(types.Selection{
		Mode:        types.ViewByPlantType,
		PlantTypes1: []string{"Tomato"},
		PlantTypes2: []string{"Basil"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, view.Table.Len())
	for _, r := range view.Table.Rows {
		assert.Equal(t, "Tomato", r.PlantType1)
		assert.Equal(t, "Basil", r.PlantType2)
	}

	empty, err := p.Build(types.Selection{Mode: types.ViewByPlantType, PlantTypes1: []string{"Tomato"}})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Table.Len())
	assert.Len(t, empty.Charts, 3)
}

func TestBuild_SourceIsNotMutated(t *testing.T) {
	p := newPipeline(t)
	src, err := p.Source()
	require.NoError(t, err)
	before := src.Clone()

	_, err = p.Build(types.Selection{Mode: types.ViewBySensor, SensorID: "S2"})
	require.NoError(t, err)
	_, err = p.Build(types.Selection{Mode: types.ViewOverall})
	require.NoError(t, err)

	assert.Equal(t, before, src)
}

func TestBuild_Errors(t *testing.T) {
	p := newPipeline(t)
	_, err := p.Build(types.Selection{Mode: "sideways"})
	assert.ErrorIs(t, err, ErrUnknownMode)

	missing := &Pipeline{Cache: loader.NewCache(nil), SourcePath: filepath.Join(t.TempDir(), "gone.csv")}
	_, err = missing.Build(types.Selection{})
	var loadErr *loader.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, types.ViewOverall, mode)

	for _, m := range types.ViewModes {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err = ParseMode("Overall")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
