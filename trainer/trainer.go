// Package trainer builds randomly initialized weather networks and fits them
// with per-sample gradient descent and patience based early stopping.
package trainer

import (
	"errors"
	"fmt"
	"time"

	"forecast_nn/dataset"
	"forecast_nn/nn"
	"forecast_nn/utils"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// DefaultPatience is used when Config.Patience is zero.
const DefaultPatience = 20

var ErrInvalidConfig = errors.New("invalid trainer config")

// Config holds the training hyperparameters.
type Config struct {
	LearningRate float64
	Epochs       int
	BatchSize    int
	Patience     int
}

func (c Config) patience() int {
	if c.Patience <= 0 {
		return DefaultPatience
	}
	return c.Patience
}

func (c Config) validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf("%w: epochs must be positive (got %d)", ErrInvalidConfig, c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive (got %d)", ErrInvalidConfig, c.BatchSize)
	}
	return nil
}

// EpochStats summarizes one completed epoch.
type EpochStats struct {
	Epoch         int
	Loss          float64
	MeanLoss      float64
	TrainAccuracy float64
	ValidAccuracy float64
}

// Report is the outcome of Train.
type Report struct {
	BestValidationAccuracy float64
	EpochsRun              int
	Stopped                bool
	History                []EpochStats
}

// BinaryTrainer trains networks with a single sigmoid output.
type BinaryTrainer struct {
	cfg Config
	src rand.Source
	rnd *rand.Rand

	// LogEvery controls how often progress lines are printed. Epoch 1 and the
	// last epoch are always printed.
	LogEvery int
	// Timing, when set, accumulates backward and evaluation time.
	Timing *utils.TimingStats
}

// New returns a trainer drawing all randomness from src.
func New(cfg Config, src rand.Source) *BinaryTrainer {
	return &BinaryTrainer{
		cfg:      cfg,
		src:      src,
		rnd:      rand.New(src),
		LogEvery: 10,
	}
}

// Config returns the hyperparameters the trainer was built with.
func (t *BinaryTrainer) Config() Config { return t.cfg }

// Reseed resets the random source.
func (t *BinaryTrainer) Reseed(seed uint64) { t.src.Seed(seed) }

// Train runs the epoch loop on net in place and returns the best validation
// accuracy seen over all completed epochs.
func (t *BinaryTrainer) Train(net *nn.Network, train, valid dataset.Lines) (Report, error) {
	var report Report
	if net == nil {
		return report, fmt.Errorf("%w: network is nil", nn.ErrInvalidArchitecture)
	}
	if err := t.cfg.validate(); err != nil {
		return report, err
	}

	utils.Logf("Learning rate: %g", t.cfg.LearningRate)
	utils.Logf("Training samples: %d, validation samples: %d", len(train), len(valid))
	pos := train.CountPositive()
	utils.Logf("Class distribution: %d precipitation, %d clear", pos, len(train)-pos)

	patience := t.cfg.patience()
	stopper := earlyStopper{patience: patience}
	losses := make([]float64, len(train))

	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		start := time.Now()
		var total float64
		k := 0
		for _, batch := range createBatches(t.shuffledIndices(len(train)), t.cfg.BatchSize) {
			for _, idx := range batch {
				loss, err := net.Backward(train[idx].Inputs, train[idx].Targets, t.cfg.LearningRate)
				if err != nil {
					return report, fmt.Errorf("epoch %d sample %d: %w", epoch, idx, err)
				}
				losses[k] = loss
				total += loss
				k++
			}
		}
		if t.Timing != nil {
			t.Timing.BackwardPassTime += time.Since(start)
		}

		start = time.Now()
		trainAcc, err := EvaluateBinary(net, train)
		if err != nil {
			return report, fmt.Errorf("epoch %d training accuracy: %w", epoch, err)
		}
		validAcc, err := EvaluateBinary(net, valid)
		if err != nil {
			return report, fmt.Errorf("epoch %d validation accuracy: %w", epoch, err)
		}
		if t.Timing != nil {
			t.Timing.EvaluationTime += time.Since(start)
			t.Timing.Epochs++
			t.Timing.Samples += len(train)
		}

		stats := EpochStats{
			Epoch:         epoch,
			Loss:          total,
			TrainAccuracy: trainAcc,
			ValidAccuracy: validAcc,
		}
		if len(losses) > 0 {
			stats.MeanLoss = stat.Mean(losses, nil)
		}
		report.History = append(report.History, stats)
		report.EpochsRun = epoch

		if epoch == 1 || epoch%t.logEvery() == 0 || epoch == t.cfg.Epochs {
			utils.Logf("Epoch %d/%d: loss %.4f, train acc %.2f%%, valid acc %.2f%%",
				epoch, t.cfg.Epochs, total, trainAcc*100, validAcc*100)
		}

		if stopper.observe(validAcc) {
			report.Stopped = true
			utils.Logf("Early stopping at epoch %d: no improvement for %d epochs (best valid acc %.2f%%)",
				epoch, patience, stopper.best*100)
			break
		}
	}

	report.BestValidationAccuracy = stopper.best
	return report, nil
}

func (t *BinaryTrainer) logEvery() int {
	if t.LogEvery <= 0 {
		return 10
	}
	return t.LogEvery
}

// earlyStopper tracks the best validation accuracy. Only strict improvement
// resets the counter.
type earlyStopper struct {
	patience int
	best     float64
	counter  int
}

// observe records acc and reports whether training should stop.
func (s *earlyStopper) observe(acc float64) bool {
	if acc > s.best {
		s.best = acc
		s.counter = 0
		return false
	}
	s.counter++
	return s.counter >= s.patience
}

// EvaluateBinary returns the fraction of lines whose thresholded prediction
// matches the target. An empty set scores 0.
func EvaluateBinary(net *nn.Network, lines dataset.Lines) (float64, error) {
	if len(lines) == 0 {
		return 0, nil
	}
	correct := 0
	for i, line := range lines {
		if len(line.Targets) == 0 {
			return 0, fmt.Errorf("line %d: %w", i, &nn.ShapeError{Op: "evaluate", Want: 1, Got: 0})
		}
		pred, err := net.Predict(line.Inputs)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", i, err)
		}
		if classify(pred) == line.Targets[0] {
			correct++
		}
	}
	return float64(correct) / float64(len(lines)), nil
}

func classify(pred float64) float64 {
	if pred >= 0.5 {
		return 1
	}
	return 0
}
