package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {"input": {"temp": 30, "pressure": 1008, "altitude": 50, "humidity": 85}, "output": {"forecast": "Averses orageuses"}},
  {"input": {"temp": 5, "pressure": 1025, "altitude": 1000, "humidity": 30}, "output": {"forecast": "Ciel dégagé"}},
  {"input": {"temp": 20, "pressure": 1015, "altitude": 300, "humidity": 60}, "output": {"forecast": "Light DRIZZLE"}}
]`

func TestReadJSON(t *testing.T) {
	points, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, WeatherInput{Temp: 5, Pressure: 1025, Altitude: 1000, Humidity: 30}, points[1].Input)
	assert.Equal(t, "Averses orageuses", points[0].Output.Forecast)

	_, err = ReadJSON(strings.NewReader(`{"not": "a list"}`))
	assert.Error(t, err)
}

func TestSimplify(t *testing.T) {
	points, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	labeled := Simplify(points)
	assert.True(t, labeled[0].Precipitation)
	assert.False(t, labeled[1].Precipitation)
	assert.True(t, labeled[2].Precipitation)

	p, d := CountClasses(labeled)
	assert.Equal(t, 2, p)
	assert.Equal(t, 1, d)
}

func TestIsPrecipitation(t *testing.T) {
	assert.True(t, IsPrecipitation("Pluie faible"))
	assert.True(t, IsPrecipitation("temps LOURD"))
	assert.True(t, IsPrecipitation("Neige en montagne"))
	assert.False(t, IsPrecipitation("Ensoleillé"))
	assert.False(t, IsPrecipitation(""))
}

func TestReadCSV(t *testing.T) {
	in := "temp,pressure,altitude,humidity,forecast\n" +
		"30,1008,50,85,pluie\n" +
		"5, 1025, 1000, 30,soleil\n"
	points, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 1025.0, points[1].Input.Pressure)
	assert.Equal(t, "soleil", points[1].Output.Forecast)

	_, err = ReadCSV(strings.NewReader("1,2,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 values, got 3")

	_, err = ReadCSV(strings.NewReader("1,2,3,4,x\n1,2,oops,4,x\n"))
	assert.Error(t, err)
}

func TestLoadPicksFormat(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "train.json")
	csvPath := filepath.Join(dir, "train.CSV")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0644))
	require.NoError(t, os.WriteFile(csvPath, []byte("1,2,3,4,orage\n"), 0644))

	points, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Len(t, points, 3)

	points, err = Load(csvPath)
	require.NoError(t, err)
	assert.Len(t, points, 1)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalize(t *testing.T) {
	points := []Labeled{
		{Input: WeatherInput{Temp: 0, Pressure: 1000, Altitude: 0, Humidity: 50}, Precipitation: true},
		{Input: WeatherInput{Temp: 10, Pressure: 1030, Altitude: 1500, Humidity: 50}},
		{Input: WeatherInput{Temp: 5, Pressure: 1015, Altitude: 300, Humidity: 50}},
	}

	normalized, params := Normalize(points)
	assert.Equal(t, NormParams{0, 10, 1000, 1030, 0, 1500, 50, 50}, params)
	assert.Equal(t, WeatherInput{Temp: 0.5, Pressure: 0.5, Altitude: 0.2, Humidity: 0}, normalized[2].Input)
	assert.True(t, normalized[0].Precipitation)

	for _, p := range normalized {
		for _, f := range p.Input.Features() {
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 1.0)
		}
	}

	in := NormalizeWithParams(WeatherInput{Temp: 20, Pressure: 1000, Altitude: 750, Humidity: 99}, params)
	assert.Equal(t, WeatherInput{Temp: 2, Pressure: 0, Altitude: 0.5, Humidity: 0}, in)

	assert.Equal(t, NormParams{}, FitParams(nil))
}

func TestPrepareAndLines(t *testing.T) {
	points := []Labeled{
		{Input: WeatherInput{Temp: 0.8, Pressure: 0.3, Altitude: 0.2, Humidity: 0.9}, Precipitation: true},
		{Input: WeatherInput{Temp: 0.2, Pressure: 0.8, Altitude: 0.7, Humidity: 0.1}},
	}

	inputs := PrepareInputs(points)
	require.Len(t, inputs, 2)
	assert.Len(t, inputs[0], NumFeatures)
	assert.Equal(t, []float64{0.8, 0.3, 0.2, 0.9}, inputs[0])

	outputs := PrepareOutputs(points)
	assert.Equal(t, [][]float64{{1}, {0}}, outputs)

	lines := ToLines(points)
	require.Len(t, lines, 2)
	assert.Equal(t, inputs[1], lines[1].Inputs)
	assert.Equal(t, outputs[1], lines[1].Targets)
	assert.Equal(t, 1, lines.CountPositive())
}
