package dataset

// Line is one training sample as the network sees it.
type Line struct {
	Inputs  []float64
	Targets []float64
}
type Lines []Line

// PrepareInputs returns the feature vector of every point.
func PrepareInputs(points []Labeled) [][]float64 {
	inputs := make([][]float64, len(points))
	for i, p := range points {
		inputs[i] = p.Input.Features()
	}
	return inputs
}

// PrepareOutputs returns a single-element target per point: 1 for
// precipitation, 0 for clear.
func PrepareOutputs(points []Labeled) [][]float64 {
	outputs := make([][]float64, len(points))
	for i, p := range points {
		outputs[i] = []float64{label(p.Precipitation)}
	}
	return outputs
}

// ToLines pairs inputs and targets.
func ToLines(points []Labeled) Lines {
	lines := make(Lines, len(points))
	for i, p := range points {
		lines[i] = Line{
			Inputs:  p.Input.Features(),
			Targets: []float64{label(p.Precipitation)},
		}
	}
	return lines
}

// CountPositive returns how many lines carry a 1 target.
func (lines Lines) CountPositive() int {
	count := 0
	for _, l := range lines {
		if len(l.Targets) > 0 && l.Targets[0] == 1 {
			count++
		}
	}
	return count
}

func label(precipitation bool) float64 {
	if precipitation {
		return 1
	}
	return 0
}
