package nn

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch reports vectors whose lengths disagree with a fan-in
	// or a neuron count.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidArchitecture reports a network that cannot be built or run.
	ErrInvalidArchitecture = errors.New("invalid architecture")
	ErrNeuronNotFound      = errors.New("neuron not found")
	ErrLayerNotFound       = errors.New("layer not found")
	// ErrNonFinite reports a weight or bias that is NaN or infinite.
	ErrNonFinite = errors.New("non-finite parameter")
)

// ShapeError carries the operation and the lengths that disagreed.
type ShapeError struct {
	Op   string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s: expected length %d, got %d", e.Op, ErrShapeMismatch, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func checkLen(op string, want, got int) error {
	if want != got {
		return &ShapeError{Op: op, Want: want, Got: got}
	}
	return nil
}
