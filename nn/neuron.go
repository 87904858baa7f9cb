package nn

import (
	"gonum.org/v1/gonum/floats"
)

// Neuron is a single unit: a weight per input, a bias and an activation.
// ID only has to be unique inside the owning layer.
type Neuron struct {
	ID         uint32     `json:"id"`
	Name       string     `json:"name"`
	Activation Activation `json:"activation_function"`
	Bias       float64    `json:"bias"`
	Weights    []float64  `json:"weights"`
}

// NewNeuron copies weights so the caller keeps ownership of its slice.
func NewNeuron(id uint32, name string, activation Activation, bias float64, weights []float64) Neuron {
	return Neuron{
		ID:         id,
		Name:       name,
		Activation: activation,
		Bias:       bias,
		Weights:    append([]float64(nil), weights...),
	}
}

// FanIn is the number of inputs the neuron consumes.
func (n *Neuron) FanIn() int {
	return len(n.Weights)
}

// WeightedSum returns inputs·weights + bias.
func (n *Neuron) WeightedSum(inputs []float64) (float64, error) {
	if err := checkLen("neuron weighted sum", len(n.Weights), len(inputs)); err != nil {
		return 0, err
	}
	return floats.Dot(inputs, n.Weights) + n.Bias, nil
}

// Activate computes the neuron output for inputs.
func (n *Neuron) Activate(inputs []float64) (float64, error) {
	sum, err := n.WeightedSum(inputs)
	if err != nil {
		return 0, err
	}
	return n.Activation.Apply(sum), nil
}

// Derivative is the activation slope at an already activated output.
func (n *Neuron) Derivative(out float64) float64 {
	return n.Activation.Derivative(out)
}

// UpdateWeights moves weights and bias along gradient. The gradient already
// points toward lower error, hence the addition.
func (n *Neuron) UpdateWeights(inputs []float64, gradient, learningRate float64) error {
	if err := checkLen("neuron update", len(n.Weights), len(inputs)); err != nil {
		return err
	}
	step := learningRate * gradient
	floats.AddScaled(n.Weights, step, inputs)
	n.Bias += step
	return nil
}

// SetWeights replaces the weight vector. A neuron that already has weights
// keeps its fan-in.
func (n *Neuron) SetWeights(weights []float64) error {
	if len(n.Weights) > 0 {
		if err := checkLen("neuron set weights", len(n.Weights), len(weights)); err != nil {
			return err
		}
	}
	n.Weights = append(n.Weights[:0], weights...)
	return nil
}

func (n *Neuron) SetBias(bias float64) {
	n.Bias = bias
}

func (n *Neuron) SetActivation(a Activation) {
	n.Activation = a
}

func (n *Neuron) Rename(name string) {
	n.Name = name
}

// Clone returns a deep copy.
func (n Neuron) Clone() Neuron {
	n.Weights = append([]float64(nil), n.Weights...)
	return n
}
