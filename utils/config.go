package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds training configuration
type Config struct {
	Name         string  `yaml:"name"`
	TrainPath    string  `yaml:"train_path"`
	TestPath     string  `yaml:"test_path"`
	ModelPath    string  `yaml:"model_path"`
	AnalysisPath string  `yaml:"analysis_path"`
	InputSize    int     `yaml:"input_size"`
	Hidden       []int   `yaml:"hidden"`
	LearningRate float64 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	Patience     int     `yaml:"patience"`
	Seed         uint64  `yaml:"seed"`
	LogEvery     int     `yaml:"log_every"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Name:         "weather",
		TrainPath:    "weather-train-dataset.json",
		TestPath:     "weather-test-dataset.json",
		ModelPath:    "weather_model.json",
		InputSize:    4,
		Hidden:       []int{8, 4},
		LearningRate: 0.05,
		Epochs:       1000,
		BatchSize:    20,
		Patience:     20,
		Seed:         42,
		LogEvery:     10,
	}
}

// Overrides captures CLI supplied values. Zero values leave the config
// untouched, except Seed, which applies whenever it is non-nil so 0 stays
// selectable.
type Overrides struct {
	TrainPath    string
	TestPath     string
	ModelPath    string
	AnalysisPath string
	Hidden       []int
	LearningRate float64
	Epochs       int
	BatchSize    int
	Patience     int
	Seed         *uint64
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates it.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes YAML on top of DefaultConfig. Unknown keys are rejected.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.TrainPath != "" {
		c.TrainPath = o.TrainPath
	}
	if o.TestPath != "" {
		c.TestPath = o.TestPath
	}
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.AnalysisPath != "" {
		c.AnalysisPath = o.AnalysisPath
	}
	if len(o.Hidden) > 0 {
		c.Hidden = append([]int(nil), o.Hidden...)
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.Patience > 0 {
		c.Patience = o.Patience
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
}

// ParseArchitecture parses "8,4" or "8 4" into hidden layer sizes.
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.FieldsFunc(archStr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("layer size %q: %w", s, err)
		}
		arch[i] = n
	}
	return arch, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return errors.New("config is nil")
	}
	if config.InputSize <= 0 {
		return fmt.Errorf("input size must be positive (got %d)", config.InputSize)
	}
	if len(config.Hidden) == 0 {
		return fmt.Errorf("architecture must have at least 1 hidden layer")
	}
	for i, n := range config.Hidden {
		if n <= 0 {
			return fmt.Errorf("hidden layer %d size must be positive (got %d)", i, n)
		}
	}
	if config.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive (got %g)", config.LearningRate)
	}
	if config.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive (got %d)", config.Epochs)
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive (got %d)", config.BatchSize)
	}
	if config.Patience < 0 {
		return fmt.Errorf("patience must not be negative (got %d)", config.Patience)
	}
	if config.LogEvery <= 0 {
		config.LogEvery = 10
	}
	return nil
}
