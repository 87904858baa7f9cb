// Package dataset loads weather observations and turns them into normalized
// feature vectors with binary precipitation labels.
package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// NumFeatures is the width of a feature vector: temp, pressure, altitude, humidity.
const NumFeatures = 4

type WeatherInput struct {
	Temp     float64 `json:"temp"`
	Pressure float64 `json:"pressure"`
	Altitude float64 `json:"altitude"`
	Humidity float64 `json:"humidity"`
}

// Features returns the input in network order.
func (w WeatherInput) Features() []float64 {
	return []float64{w.Temp, w.Pressure, w.Altitude, w.Humidity}
}

type WeatherOutput struct {
	Forecast string `json:"forecast"`
}

// DataPoint is one raw observation with its free-text forecast.
type DataPoint struct {
	Input  WeatherInput  `json:"input"`
	Output WeatherOutput `json:"output"`
}

// Labeled is an observation reduced to precipitation (true) or clear (false).
type Labeled struct {
	Input         WeatherInput `json:"input"`
	Precipitation bool         `json:"output"`
}

var precipitationKeywords = []string{
	"pluie",
	"averse",
	"orage",
	"tonnerre",
	"précipitation",
	"neige",
	"rafales",
	"humide",
	"bruine",
	"humidité",
	"lourd",
	"rain",
	"shower",
	"storm",
	"thunder",
	"snow",
	"drizzle",
}

// IsPrecipitation reports whether a forecast mentions any precipitation keyword.
func IsPrecipitation(forecast string) bool {
	f := strings.ToLower(forecast)
	for _, k := range precipitationKeywords {
		if strings.Contains(f, k) {
			return true
		}
	}
	return false
}

// Simplify maps every forecast to a binary label.
func Simplify(points []DataPoint) []Labeled {
	out := make([]Labeled, len(points))
	for i, p := range points {
		out[i] = Labeled{Input: p.Input, Precipitation: IsPrecipitation(p.Output.Forecast)}
	}
	return out
}

// CountClasses returns the number of precipitation and clear samples.
func CountClasses(points []Labeled) (precipitation, dry int) {
	for _, p := range points {
		if p.Precipitation {
			precipitation++
		}
	}
	return precipitation, len(points) - precipitation
}

// ReadJSON decodes a JSON array of observations.
func ReadJSON(r io.Reader) ([]DataPoint, error) {
	var points []DataPoint
	if err := json.NewDecoder(bufio.NewReader(r)).Decode(&points); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	return points, nil
}

// ReadCSV reads "temp,pressure,altitude,humidity,forecast" records. A first
// row whose temp column is not a number is treated as a header.
func ReadCSV(r io.Reader) ([]DataPoint, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	var points []DataPoint
	lineNum := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		lineNum++
		if len(record) != NumFeatures+1 {
			return nil, errInvalidLine{lineNum: lineNum, fields: len(record), expected: NumFeatures + 1}
		}
		values := make([]float64, NumFeatures)
		var parseErr error
		for i := range values {
			values[i], parseErr = strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if parseErr != nil {
				break
			}
		}
		if parseErr != nil {
			if lineNum == 1 {
				continue
			}
			return nil, fmt.Errorf("at line %d, parsing feature: %w", lineNum, parseErr)
		}
		points = append(points, DataPoint{
			Input: WeatherInput{
				Temp:     values[0],
				Pressure: values[1],
				Altitude: values[2],
				Humidity: values[3],
			},
			Output: WeatherOutput{Forecast: record[NumFeatures]},
		})
	}
	return points, nil
}

// Load reads a dataset file, choosing CSV for .csv files and JSON otherwise.
func Load(path string) ([]DataPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return ReadCSV(f)
	}
	return ReadJSON(f)
}

type errInvalidLine struct {
	lineNum  int
	fields   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.fields)
}
