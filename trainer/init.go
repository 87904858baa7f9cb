package trainer

import (
	"fmt"
	"math"

	"forecast_nn/nn"

	"gonum.org/v1/gonum/stat/distuv"
)

const biasRange = 0.1

// CreateWeatherNetwork builds inputSize -> hiddenSizes (relu) -> 1 (sigmoid)
// with Glorot uniform weights and small uniform biases.
func (t *BinaryTrainer) CreateWeatherNetwork(inputSize int, hiddenSizes []int) (*nn.Network, error) {
	if inputSize <= 0 {
		return nil, fmt.Errorf("%w: input size must be > 0 (got %d)", nn.ErrInvalidArchitecture, inputSize)
	}
	if len(hiddenSizes) == 0 {
		return nil, fmt.Errorf("%w: at least one hidden layer is required", nn.ErrInvalidArchitecture)
	}
	for i, size := range hiddenSizes {
		if size <= 0 {
			return nil, fmt.Errorf("%w: hidden layer %d has size %d", nn.ErrInvalidArchitecture, i, size)
		}
	}

	layers := make([]nn.Layer, 0, len(hiddenSizes)+1)
	prev := inputSize
	for k, size := range hiddenSizes {
		name := fmt.Sprintf("Hidden%d", k+1)
		layer, err := t.denseLayer(uint32(k), name, prev, size, nn.ReLU, func(i int) string {
			return fmt.Sprintf("%s_%d", name, i)
		})
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
		prev = size
	}
	out, err := t.denseLayer(uint32(len(hiddenSizes)), "Output", prev, 1, nn.Sigmoid, func(int) string {
		return "Output"
	})
	if err != nil {
		return nil, err
	}
	layers = append(layers, out)

	return nn.NewNetwork(inputSize, layers)
}

func (t *BinaryTrainer) denseLayer(id uint32, name string, fanIn, size int, act nn.Activation, neuronName func(int) string) (nn.Layer, error) {
	scale := glorotScale(fanIn, size)
	weightDist := distuv.Uniform{Min: -scale, Max: scale, Src: t.src}
	biasDist := distuv.Uniform{Min: -biasRange, Max: biasRange, Src: t.src}

	neurons := make([]nn.Neuron, size)
	for i := range neurons {
		weights := make([]float64, fanIn)
		for j := range weights {
			weights[j] = weightDist.Rand()
		}
		neurons[i] = nn.NewNeuron(uint32(i), neuronName(i), act, biasDist.Rand(), weights)
	}
	return nn.NewLayer(id, name, neurons)
}

// glorotScale is the Glorot uniform bound sqrt(6/(fanIn+fanOut)).
func glorotScale(fanIn, fanOut int) float64 {
	return math.Sqrt(6 / float64(fanIn+fanOut))
}
