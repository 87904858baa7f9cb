package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Layer is an ordered set of neurons sharing the same fan-in. Neuron order is
// the order of outputs and of the gradients handed to Backward.
type Layer struct {
	ID      uint32   `json:"id"`
	Name    string   `json:"name"`
	Neurons []Neuron `json:"neurons"`
}

// NewLayer builds a layer and checks all neurons agree on their fan-in.
func NewLayer(id uint32, name string, neurons []Neuron) (Layer, error) {
	l := Layer{ID: id, Name: name}
	for _, n := range neurons {
		if err := l.AddNeuron(n); err != nil {
			return Layer{}, err
		}
	}
	return l, nil
}

// FanIn is the input width of the layer, or 0 when it has no neurons.
func (l *Layer) FanIn() int {
	if len(l.Neurons) == 0 {
		return 0
	}
	return l.Neurons[0].FanIn()
}

// Validate checks every neuron shares the first neuron's fan-in.
func (l *Layer) Validate() error {
	if len(l.Neurons) == 0 {
		return fmt.Errorf("layer %d: %w: no neurons", l.ID, ErrInvalidArchitecture)
	}
	fanIn := l.FanIn()
	for i := range l.Neurons {
		n := &l.Neurons[i]
		if err := checkLen(fmt.Sprintf("layer %d neuron %d", l.ID, n.ID), fanIn, n.FanIn()); err != nil {
			return err
		}
		if !n.Activation.valid() {
			return fmt.Errorf("layer %d neuron %d: %w: unknown activation %d", l.ID, n.ID, ErrInvalidArchitecture, int(n.Activation))
		}
	}
	return nil
}

// ForwardWithCache returns the activated outputs together with the weighted
// sums that produced them, both in neuron order.
func (l *Layer) ForwardWithCache(inputs []float64) ([]float64, []float64, error) {
	outputs := make([]float64, len(l.Neurons))
	preActivations := make([]float64, len(l.Neurons))
	for i := range l.Neurons {
		n := &l.Neurons[i]
		sum, err := n.WeightedSum(inputs)
		if err != nil {
			return nil, nil, fmt.Errorf("layer %d: %w", l.ID, err)
		}
		preActivations[i] = sum
		outputs[i] = n.Activation.Apply(sum)
	}
	return outputs, preActivations, nil
}

// Activate returns the outputs of every neuron for inputs.
func (l *Layer) Activate(inputs []float64) ([]float64, error) {
	outputs := make([]float64, len(l.Neurons))
	for i := range l.Neurons {
		out, err := l.Neurons[i].Activate(inputs)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", l.ID, err)
		}
		outputs[i] = out
	}
	return outputs, nil
}

// Backward updates each neuron with its own gradient and returns the signal
// for the previous layer, prev[j] = Σ g_i * w_ij.
//
// Each neuron is updated before its weights are read for prev, so the
// propagated signal uses the post-update weights.
func (l *Layer) Backward(inputs, gradients []float64, learningRate float64) ([]float64, error) {
	if err := checkLen(fmt.Sprintf("layer %d backward gradients", l.ID), len(l.Neurons), len(gradients)); err != nil {
		return nil, err
	}
	prev := make([]float64, len(inputs))
	for i := range l.Neurons {
		n := &l.Neurons[i]
		g := gradients[i]
		if err := n.UpdateWeights(inputs, g, learningRate); err != nil {
			return nil, fmt.Errorf("layer %d: %w", l.ID, err)
		}
		for j, w := range n.Weights {
			prev[j] += g * w
		}
	}
	return prev, nil
}

// AddNeuron appends n, which must match the fan-in of the neurons already present.
func (l *Layer) AddNeuron(n Neuron) error {
	if len(l.Neurons) > 0 {
		if err := checkLen(fmt.Sprintf("layer %d add neuron %d", l.ID, n.ID), l.FanIn(), n.FanIn()); err != nil {
			return err
		}
	}
	l.Neurons = append(l.Neurons, n.Clone())
	return nil
}

// RemoveNeuron drops every neuron with the given id and reports whether any was removed.
func (l *Layer) RemoveNeuron(id uint32) bool {
	kept := l.Neurons[:0]
	for _, n := range l.Neurons {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	removed := len(kept) != len(l.Neurons)
	l.Neurons = kept
	return removed
}

// Neuron returns the first neuron with id. The pointer aliases the layer's storage.
func (l *Layer) Neuron(id uint32) (*Neuron, error) {
	for i := range l.Neurons {
		if l.Neurons[i].ID == id {
			return &l.Neurons[i], nil
		}
	}
	return nil, fmt.Errorf("layer %d: %w: id %d", l.ID, ErrNeuronNotFound, id)
}

func (l *Layer) NeuronCount() int {
	return len(l.Neurons)
}

func (l *Layer) NeuronIDs() []uint32 {
	ids := make([]uint32, len(l.Neurons))
	for i, n := range l.Neurons {
		ids[i] = n.ID
	}
	return ids
}

func (l *Layer) NeuronNames() []string {
	names := make([]string, len(l.Neurons))
	for i, n := range l.Neurons {
		names[i] = n.Name
	}
	return names
}

func (l *Layer) Activations() []Activation {
	acts := make([]Activation, len(l.Neurons))
	for i, n := range l.Neurons {
		acts[i] = n.Activation
	}
	return acts
}

func (l *Layer) Biases() []float64 {
	biases := make([]float64, len(l.Neurons))
	for i, n := range l.Neurons {
		biases[i] = n.Bias
	}
	return biases
}

// Weights returns a copy of every neuron's weight vector.
func (l *Layer) Weights() [][]float64 {
	weights := make([][]float64, len(l.Neurons))
	for i, n := range l.Neurons {
		weights[i] = append([]float64(nil), n.Weights...)
	}
	return weights
}

// WeightMatrix lays the weights out as a neurons × fan-in matrix. The layer
// must be valid.
func (l *Layer) WeightMatrix() *mat.Dense {
	rows, cols := len(l.Neurons), l.FanIn()
	if rows == 0 || cols == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(rows, cols, nil)
	for i, n := range l.Neurons {
		m.SetRow(i, n.Weights)
	}
	return m
}

func (l *Layer) SetNeuronWeights(id uint32, weights []float64) error {
	n, err := l.Neuron(id)
	if err != nil {
		return err
	}
	return n.SetWeights(weights)
}

func (l *Layer) SetNeuronBias(id uint32, bias float64) error {
	n, err := l.Neuron(id)
	if err != nil {
		return err
	}
	n.SetBias(bias)
	return nil
}

func (l *Layer) SetNeuronActivation(id uint32, a Activation) error {
	n, err := l.Neuron(id)
	if err != nil {
		return err
	}
	n.SetActivation(a)
	return nil
}

func (l *Layer) SetNeuronName(id uint32, name string) error {
	n, err := l.Neuron(id)
	if err != nil {
		return err
	}
	n.Rename(name)
	return nil
}

func (l *Layer) SetNeuronID(oldID, newID uint32) error {
	n, err := l.Neuron(oldID)
	if err != nil {
		return err
	}
	n.ID = newID
	return nil
}

func (l *Layer) Rename(name string) {
	l.Name = name
}

// Clone returns a deep copy.
func (l Layer) Clone() Layer {
	if l.Neurons == nil {
		return l
	}
	neurons := make([]Neuron, len(l.Neurons))
	for i, n := range l.Neurons {
		neurons[i] = n.Clone()
	}
	l.Neurons = neurons
	return l
}
