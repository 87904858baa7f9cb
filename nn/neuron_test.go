package nn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeuronLinearScenario(t *testing.T) {
	n := NewNeuron(0, "n", Linear, 0, []float64{0.5, -0.5})

	sum, err := n.WeightedSum([]float64{2, 4})
	require.NoError(t, err)
	assert.Equal(t, -1.0, sum)

	out, err := n.Activate([]float64{2, 4})
	require.NoError(t, err)
	assert.Equal(t, -1.0, out)
}

func TestNeuronSigmoidScenario(t *testing.T) {
	n := NewNeuron(0, "n", Sigmoid, 0, []float64{0.5, -0.5})

	out, err := n.Activate([]float64{2, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.2689, out, 1e-4)
	assert.InDelta(t, 1/(1+math.E), out, 1e-15)
}

func TestNeuronActivateIsDeterministic(t *testing.T) {
	n := NewNeuron(3, "n", ReLU, 0.2, []float64{0.1, 0.7, -0.3})
	in := []float64{0.4, 0.9, 0.25}

	first, err := n.Activate(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		out, err := n.Activate(in)
		require.NoError(t, err)
		assert.Equal(t, first, out)
	}
}

func TestNeuronShapeMismatch(t *testing.T) {
	n := NewNeuron(0, "n", Linear, 0, []float64{1, 2})

	_, err := n.Activate([]float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	var se *ShapeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Want)
	assert.Equal(t, 3, se.Got)

	err = n.UpdateWeights([]float64{1}, 0.5, 0.1)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Equal(t, []float64{1, 2}, n.Weights, "failed update must not touch weights")
	assert.Equal(t, 0.0, n.Bias)
}

func TestNeuronUpdateWeights(t *testing.T) {
	n := NewNeuron(0, "n", Sigmoid, 0.1, []float64{0.5, -0.5})

	require.NoError(t, n.UpdateWeights([]float64{2, 4}, 0.25, 0.1))

	assert.InDelta(t, 0.5+0.1*0.25*2, n.Weights[0], 1e-15)
	assert.InDelta(t, -0.5+0.1*0.25*4, n.Weights[1], 1e-15)
	assert.InDelta(t, 0.1+0.1*0.25, n.Bias, 1e-15)
}

func TestNeuronSetters(t *testing.T) {
	src := []float64{1, 2}
	n := NewNeuron(1, "a", Linear, 0, src)
	src[0] = 42
	assert.Equal(t, 1.0, n.Weights[0], "constructor copies weights")

	require.NoError(t, n.SetWeights([]float64{3, 4}))
	assert.Equal(t, []float64{3, 4}, n.Weights)
	assert.ErrorIs(t, n.SetWeights([]float64{1}), ErrShapeMismatch)

	n.SetBias(-0.3)
	n.SetActivation(ReLU)
	n.Rename("b")
	assert.Equal(t, -0.3, n.Bias)
	assert.Equal(t, ReLU, n.Activation)
	assert.Equal(t, "b", n.Name)

	var empty Neuron
	require.NoError(t, empty.SetWeights([]float64{1, 2, 3}))
	assert.Equal(t, 3, empty.FanIn())
}

func TestNeuronClone(t *testing.T) {
	n := NewNeuron(1, "a", Sigmoid, 0.5, []float64{1, 2})
	c := n.Clone()
	c.Weights[0] = 9
	assert.Equal(t, 1.0, n.Weights[0])
	assert.Equal(t, n.Name, c.Name)
}
