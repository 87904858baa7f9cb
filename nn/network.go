package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Network is a linear stack of fully connected layers. Each layer's neuron
// count is the fan-in of the next one and the first layer reads InputSize values.
type Network struct {
	InputSize int     `json:"input_size"`
	Layers    []Layer `json:"layers"`
}

// NewNetwork builds a network and validates the layer chain.
func NewNetwork(inputSize int, layers []Layer) (*Network, error) {
	net := &Network{InputSize: inputSize}
	for _, l := range layers {
		net.Layers = append(net.Layers, l.Clone())
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

// Validate checks that the network has at least one layer, that no layer is
// empty and that fan-ins chain from InputSize through every layer.
func (net *Network) Validate() error {
	if net.InputSize <= 0 {
		return fmt.Errorf("%w: input size must be > 0 (got %d)", ErrInvalidArchitecture, net.InputSize)
	}
	if len(net.Layers) == 0 {
		return fmt.Errorf("%w: network has no layers", ErrInvalidArchitecture)
	}
	want := net.InputSize
	for i := range net.Layers {
		l := &net.Layers[i]
		if err := l.Validate(); err != nil {
			return err
		}
		if err := checkLen(fmt.Sprintf("layer %d fan-in", l.ID), want, l.FanIn()); err != nil {
			return err
		}
		want = l.NeuronCount()
	}
	return nil
}

// OutputSize is the neuron count of the last layer.
func (net *Network) OutputSize() int {
	if len(net.Layers) == 0 {
		return 0
	}
	return net.Layers[len(net.Layers)-1].NeuronCount()
}

// ForwardWithCache returns the input followed by every layer's output, so
// outputs[k] is what layer k reads and len(outputs) == len(Layers)+1.
func (net *Network) ForwardWithCache(inputs []float64) ([][]float64, error) {
	outputs := make([][]float64, 0, len(net.Layers)+1)
	current := append([]float64(nil), inputs...)
	outputs = append(outputs, current)
	for i := range net.Layers {
		out, _, err := net.Layers[i].ForwardWithCache(current)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
		current = out
	}
	return outputs, nil
}

// Activate runs inference and returns the output of each layer in order.
func (net *Network) Activate(inputs []float64) ([][]float64, error) {
	outputs := make([][]float64, 0, len(net.Layers))
	current := inputs
	for i := range net.Layers {
		out, err := net.Layers[i].Activate(current)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
		current = out
	}
	return outputs, nil
}

// Predict returns the first output of the last layer.
func (net *Network) Predict(inputs []float64) (float64, error) {
	outputs, err := net.Activate(inputs)
	if err != nil {
		return 0, err
	}
	if len(outputs) == 0 || len(outputs[len(outputs)-1]) == 0 {
		return 0, fmt.Errorf("%w: network has no outputs", ErrInvalidArchitecture)
	}
	return outputs[len(outputs)-1][0], nil
}

// Backward runs one training step on a single sample and returns its loss.
//
// The output gradient is (t-o) times the derivative of each output neuron's own
// activation. Earlier layers receive the signal returned by Layer.Backward
// as is, without their activation derivative.
func (net *Network) Backward(inputs, targets []float64, learningRate float64) (float64, error) {
	if len(net.Layers) == 0 {
		return 0, fmt.Errorf("%w: network has no layers", ErrInvalidArchitecture)
	}
	layerOutputs, err := net.ForwardWithCache(inputs)
	if err != nil {
		return 0, err
	}
	outputs := layerOutputs[len(layerOutputs)-1]
	if err := checkLen("network backward targets", len(outputs), len(targets)); err != nil {
		return 0, err
	}

	var loss SquaredError
	outputLayer := &net.Layers[len(net.Layers)-1]
	gradients := make([]float64, len(outputs))
	for i, o := range outputs {
		gradients[i] = loss.Delta(targets[i], o) * outputLayer.Neurons[i].Derivative(o)
	}

	for i := len(net.Layers) - 1; i >= 0; i-- {
		gradients, err = net.Layers[i].Backward(layerOutputs[i], gradients, learningRate)
		if err != nil {
			return 0, err
		}
	}

	return loss.Loss(targets, outputs), nil
}

// AddLayer appends l. Its fan-in must equal the current output size, or
// InputSize when the network is empty.
func (net *Network) AddLayer(l Layer) error {
	want := net.InputSize
	if len(net.Layers) > 0 {
		want = net.OutputSize()
	}
	if err := l.Validate(); err != nil {
		return err
	}
	if err := checkLen(fmt.Sprintf("add layer %d", l.ID), want, l.FanIn()); err != nil {
		return err
	}
	net.Layers = append(net.Layers, l.Clone())
	return nil
}

// RemoveLayer drops the layers with id. Removing an inner layer breaks the
// fan-in chain; call Validate before using the network again.
func (net *Network) RemoveLayer(id uint32) bool {
	kept := net.Layers[:0]
	for _, l := range net.Layers {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	removed := len(kept) != len(net.Layers)
	net.Layers = kept
	return removed
}

// Layer returns the first layer with id. The pointer aliases the network's storage.
func (net *Network) Layer(id uint32) (*Layer, error) {
	for i := range net.Layers {
		if net.Layers[i].ID == id {
			return &net.Layers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrLayerNotFound, id)
}

func (net *Network) LayerCount() int {
	return len(net.Layers)
}

func (net *Network) LayerIDs() []uint32 {
	ids := make([]uint32, len(net.Layers))
	for i, l := range net.Layers {
		ids[i] = l.ID
	}
	return ids
}

func (net *Network) LayerNames() []string {
	names := make([]string, len(net.Layers))
	for i, l := range net.Layers {
		names[i] = l.Name
	}
	return names
}

// LayerSizes returns the neuron count of every layer.
func (net *Network) LayerSizes() []int {
	sizes := make([]int, len(net.Layers))
	for i, l := range net.Layers {
		sizes[i] = len(l.Neurons)
	}
	return sizes
}

func (net *Network) RenameLayer(id uint32, name string) error {
	l, err := net.Layer(id)
	if err != nil {
		return err
	}
	l.Rename(name)
	return nil
}

func (net *Network) SetNeuronWeights(layerID, neuronID uint32, weights []float64) error {
	l, err := net.Layer(layerID)
	if err != nil {
		return err
	}
	return l.SetNeuronWeights(neuronID, weights)
}

func (net *Network) SetNeuronBias(layerID, neuronID uint32, bias float64) error {
	l, err := net.Layer(layerID)
	if err != nil {
		return err
	}
	return l.SetNeuronBias(neuronID, bias)
}

// CheckFinite reports the first weight or bias that is NaN or infinite, which
// is how a diverged training run shows up.
func (net *Network) CheckFinite() error {
	for _, l := range net.Layers {
		for _, n := range l.Neurons {
			if !finite(n.Bias) {
				return fmt.Errorf("layer %d (%s) neuron %d (%s): %w: bias %v", l.ID, l.Name, n.ID, n.Name, ErrNonFinite, n.Bias)
			}
			for j, w := range n.Weights {
				if !finite(w) {
					return fmt.Errorf("layer %d (%s) neuron %d (%s): %w: weight %d is %v", l.ID, l.Name, n.ID, n.Name, ErrNonFinite, j, w)
				}
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParameterCount is the number of weights plus biases.
func (net *Network) ParameterCount() int {
	total := 0
	for _, l := range net.Layers {
		for _, n := range l.Neurons {
			total += len(n.Weights) + 1
		}
	}
	return total
}

// WeightMatrices returns one neurons × fan-in matrix per layer.
func (net *Network) WeightMatrices() []*mat.Dense {
	ms := make([]*mat.Dense, len(net.Layers))
	for i := range net.Layers {
		ms[i] = net.Layers[i].WeightMatrix()
	}
	return ms
}

// Clone returns a deep copy.
func (net *Network) Clone() *Network {
	out := &Network{InputSize: net.InputSize}
	if net.Layers != nil {
		out.Layers = make([]Layer, len(net.Layers))
		for i, l := range net.Layers {
			out.Layers[i] = l.Clone()
		}
	}
	return out
}
