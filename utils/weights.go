package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"forecast_nn/dataset"
	"forecast_nn/nn"
)

// ModelVersion is written into every saved model.
const ModelVersion = "1.0"

// SavedModel is the on-disk document: the full network graph plus the
// normalization bounds the inputs were scaled with.
type SavedModel struct {
	Version             string             `json:"version"`
	Network             *nn.Network        `json:"network"`
	NormalizationParams dataset.NormParams `json:"normalization_params"`
}

// WriteModel encodes a deep copy of net and params as indented JSON.
func WriteModel(w io.Writer, net *nn.Network, params dataset.NormParams) error {
	if net == nil {
		return fmt.Errorf("failed to marshal model: network is nil")
	}
	if err := net.CheckFinite(); err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	saved := SavedModel{
		Version:             ModelVersion,
		Network:             net.Clone(),
		NormalizationParams: params,
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

// ReadModel decodes a model document and validates the network it carries.
// Documents without an input size take it from the first layer's fan-in.
func ReadModel(r io.Reader) (*nn.Network, dataset.NormParams, error) {
	var saved SavedModel
	if err := json.NewDecoder(r).Decode(&saved); err != nil {
		return nil, dataset.NormParams{}, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	if saved.Network == nil {
		return nil, dataset.NormParams{}, fmt.Errorf("failed to unmarshal model: missing network")
	}
	if saved.Network.InputSize == 0 && len(saved.Network.Layers) > 0 {
		saved.Network.InputSize = saved.Network.Layers[0].FanIn()
	}
	if err := saved.Network.Validate(); err != nil {
		return nil, dataset.NormParams{}, fmt.Errorf("invalid saved network: %w", err)
	}
	return saved.Network, saved.NormalizationParams, nil
}

// SaveModel writes the model to filepath, replacing any previous file.
func SaveModel(filepath string, net *nn.Network, params dataset.NormParams) error {
	f, err := os.OpenFile(filepath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	if err := WriteModel(f, net, params); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadModel reads a model saved by SaveModel.
func LoadModel(filepath string) (*nn.Network, dataset.NormParams, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, dataset.NormParams{}, fmt.Errorf("failed to read model file: %w", err)
	}
	defer f.Close()
	return ReadModel(f)
}
