package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArchitecture(t *testing.T) {
	arch, err := ParseArchitecture("8,4")
	require.NoError(t, err)
	assert.Equal(t, []int{8, 4}, arch)

	arch, err = ParseArchitecture(" 16 8, 2 ")
	require.NoError(t, err)
	assert.Equal(t, []int{16, 8, 2}, arch)

	_, err = ParseArchitecture("8,x")
	assert.Error(t, err)
}

func TestParseConfigOverDefaults(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader("learning_rate: 0.1\nhidden: [6]\nseed: 7\n"))
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.LearningRate)
	assert.Equal(t, []int{6}, cfg.Hidden)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 1000, cfg.Epochs, "unset keys keep defaults")
	assert.Equal(t, 20, cfg.BatchSize)

	empty, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *empty)

	_, err = ParseConfig(strings.NewReader("learning_rte: 0.1\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte("epochs: 50\nbatch_size: 5\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Epochs)
	assert.Equal(t, 5, cfg.BatchSize)

	require.NoError(t, os.WriteFile(path, []byte("epochs: 0\n"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyOverrides(t *testing.T) {
	seed := uint64(99)
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{
		TrainPath:    "a.json",
		Hidden:       []int{3},
		LearningRate: 0.2,
		Epochs:       7,
		Seed:         &seed,
	})

	assert.Equal(t, "a.json", cfg.TrainPath)
	assert.Equal(t, "weather-test-dataset.json", cfg.TestPath)
	assert.Equal(t, []int{3}, cfg.Hidden)
	assert.Equal(t, 0.2, cfg.LearningRate)
	assert.Equal(t, 7, cfg.Epochs)
	assert.Equal(t, 20, cfg.BatchSize)
	assert.Equal(t, uint64(99), cfg.Seed)
}

func TestApplyOverridesSeedZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{})
	assert.Equal(t, uint64(42), cfg.Seed, "unset seed keeps the default")

	zero := uint64(0)
	cfg.ApplyOverrides(Overrides{Seed: &zero})
	assert.Equal(t, uint64(0), cfg.Seed)
}

func TestValidateConfig(t *testing.T) {
	assert.Error(t, ValidateConfig(nil))

	ok := DefaultConfig()
	ok.LogEvery = 0
	require.NoError(t, ValidateConfig(&ok))
	assert.Equal(t, 10, ok.LogEvery)

	mutations := map[string]func(*Config){
		"no hidden":     func(c *Config) { c.Hidden = nil },
		"zero layer":    func(c *Config) { c.Hidden = []int{8, 0} },
		"zero input":    func(c *Config) { c.InputSize = 0 },
		"zero lr":       func(c *Config) { c.LearningRate = 0 },
		"zero epochs":   func(c *Config) { c.Epochs = 0 },
		"zero batch":    func(c *Config) { c.BatchSize = 0 },
		"negative wait": func(c *Config) { c.Patience = -1 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.Error(t, ValidateConfig(&cfg))
		})
	}
}
