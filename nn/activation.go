package nn

import (
	"fmt"
	"math"
)

// Activation selects the function a neuron applies to its weighted sum.
// The zero value is Linear.
type Activation int

const (
	Linear Activation = iota
	Sigmoid
	ReLU
)

var activationLookup = map[string]Activation{
	"linear":  Linear,
	"sigmoid": Sigmoid,
	"relu":    ReLU,
}

// ParseActivation returns the activation registered under name.
func ParseActivation(name string) (Activation, error) {
	a, ok := activationLookup[name]
	if !ok {
		return Linear, fmt.Errorf("invalid activation: %q", name)
	}
	return a, nil
}

// Apply evaluates the activation at v.
func (a Activation) Apply(v float64) float64 {
	switch a {
	case Sigmoid:
		return 1.0 / (1.0 + math.Exp(-v))
	case ReLU:
		return math.Max(0, v)
	default:
		return v
	}
}

// Derivative returns the slope of the activation given its already activated
// output, not the pre-activation value. This works for every kind defined here
// because sigmoid and relu derivatives can be written purely in terms of their
// outputs; a kind like tanh would need its own output-form derivative
// (1 - out*out) and one without such a form would need the pre-activation.
func (a Activation) Derivative(out float64) float64 {
	switch a {
	case Sigmoid:
		return out * (1 - out)
	case ReLU:
		if out > 0 {
			return 1
		}
		return 0
	default:
		return 1
	}
}

func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	case ReLU:
		return "relu"
	case Linear:
		return "linear"
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}

func (a Activation) valid() bool {
	return a == Linear || a == Sigmoid || a == ReLU
}

// MarshalText encodes the activation by name so saved models stay readable.
func (a Activation) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("invalid activation: %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText rejects names that are not registered instead of falling back
// to linear.
func (a *Activation) UnmarshalText(text []byte) error {
	parsed, err := ParseActivation(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
