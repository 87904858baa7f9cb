package dataset

import (
	"gonum.org/v1/gonum/floats"
)

// NormParams holds (min, max) pairs for temp, pressure, altitude and humidity,
// in that order.
type NormParams [2 * NumFeatures]float64

// Min returns the lower bound of feature i.
func (p NormParams) Min(i int) float64 { return p[2*i] }

// Max returns the upper bound of feature i.
func (p NormParams) Max(i int) float64 { return p[2*i+1] }

// FitParams computes per-feature bounds over points. An empty input yields
// all-zero bounds.
func FitParams(points []Labeled) NormParams {
	var params NormParams
	if len(points) == 0 {
		return params
	}
	column := make([]float64, len(points))
	for f := 0; f < NumFeatures; f++ {
		for i, p := range points {
			column[i] = p.Input.Features()[f]
		}
		params[2*f] = floats.Min(column)
		params[2*f+1] = floats.Max(column)
	}
	return params
}

// Normalize rescales every feature into [0, 1] with bounds fitted on points
// and returns those bounds for reuse at inference time.
func Normalize(points []Labeled) ([]Labeled, NormParams) {
	params := FitParams(points)
	return NormalizeAll(points, params), params
}

// NormalizeAll rescales points with previously fitted bounds.
func NormalizeAll(points []Labeled, params NormParams) []Labeled {
	out := make([]Labeled, len(points))
	for i, p := range points {
		out[i] = Labeled{Input: NormalizeWithParams(p.Input, params), Precipitation: p.Precipitation}
	}
	return out
}

// NormalizeWithParams applies (x-min)/(max-min) per feature. A feature whose
// bounds coincide maps to 0 instead of NaN.
func NormalizeWithParams(in WeatherInput, params NormParams) WeatherInput {
	raw := in.Features()
	scaled := make([]float64, NumFeatures)
	for i, x := range raw {
		span := params.Max(i) - params.Min(i)
		if span == 0 {
			continue
		}
		scaled[i] = (x - params.Min(i)) / span
	}
	return WeatherInput{
		Temp:     scaled[0],
		Pressure: scaled[1],
		Altitude: scaled[2],
		Humidity: scaled[3],
	}
}
