// forecast-train: trains the precipitation classifier on the weather datasets
//
// Usage:
//
//	forecast-train --train=weather-train-dataset.json --test=weather-test-dataset.json --hidden=8,4
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"forecast_nn/dataset"
	"forecast_nn/trainer"
	"forecast_nn/utils"

	"golang.org/x/exp/rand"
)

var (
	configFile   = flag.String("config", "", "YAML config file")
	trainFile    = flag.String("train", "", "Training dataset (JSON or CSV)")
	testFile     = flag.String("test", "", "Validation dataset (JSON or CSV)")
	modelFile    = flag.String("model", "", "Output model file (JSON)")
	analysisFile = flag.String("analysis", "", "Append a run record to this CSV")
	learningRate = flag.Float64("lr", 0, "Learning rate")
	epochs       = flag.Int("epochs", 0, "Maximum number of epochs")
	batchSize    = flag.Int("batch", 0, "Mini-batch size")
	hidden       = flag.String("hidden", "", "Hidden layer sizes, e.g. 8,4")
	patience     = flag.Int("patience", 0, "Early stopping patience")
	seed         = flag.Uint64("seed", 0, "Random seed (config value when unset)")
	verbose      = flag.Bool("verbose", true, "Verbose output")
)

// sample is the observation classified after training.
var sample = dataset.WeatherInput{Temp: 22, Pressure: 1016, Altitude: 300, Humidity: 70}

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                  Weather Forecast Trainer                    ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Train set:     %s\n", cfg.TrainPath)
	fmt.Printf("  Test set:      %s\n", cfg.TestPath)
	fmt.Printf("  Architecture:  %d -> %v -> 1\n", cfg.InputSize, cfg.Hidden)
	fmt.Printf("  Epochs:        %d\n", cfg.Epochs)
	fmt.Printf("  Learning Rate: %.4f\n", cfg.LearningRate)
	fmt.Printf("  Batch size:    %d\n", cfg.BatchSize)
	fmt.Printf("  Patience:      %d\n", cfg.Patience)
	fmt.Printf("  Seed:          %d\n", cfg.Seed)
	fmt.Println()

	stats := &utils.TimingStats{}
	totalStart := time.Now()

	start := time.Now()
	trainPoints, err := dataset.Load(cfg.TrainPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading training data: %v\n", err)
		os.Exit(1)
	}
	testPoints, err := dataset.Load(cfg.TestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading test data: %v\n", err)
		os.Exit(1)
	}
	trainSet, params := dataset.Normalize(dataset.Simplify(trainPoints))
	testSet := dataset.NormalizeAll(dataset.Simplify(testPoints), params)
	stats.DataLoadingTime = time.Since(start)
	fmt.Printf("Loaded %d training and %d test samples\n", len(trainSet), len(testSet))

	start = time.Now()
	t := trainer.New(trainer.Config{
		LearningRate: cfg.LearningRate,
		Epochs:       cfg.Epochs,
		BatchSize:    cfg.BatchSize,
		Patience:     cfg.Patience,
	}, rand.NewSource(cfg.Seed))
	t.LogEvery = cfg.LogEvery
	t.Timing = stats
	net, err := t.CreateWeatherNetwork(cfg.InputSize, cfg.Hidden)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building network: %v\n", err)
		os.Exit(1)
	}
	stats.ModelInitTime = time.Since(start)
	fmt.Printf("Network: %d layers, %d parameters\n", net.LayerCount(), net.ParameterCount())

	fmt.Println("\nStarting training...")
	trainStart := time.Now()
	report, err := t.Train(net, dataset.ToLines(trainSet), dataset.ToLines(testSet))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error training: %v\n", err)
		os.Exit(1)
	}
	trainDuration := time.Since(trainStart)
	fmt.Printf("\nTraining complete after %d epochs in %.2fs\n", report.EpochsRun, trainDuration.Seconds())
	fmt.Printf("Best validation accuracy: %.2f%%\n", report.BestValidationAccuracy*100)
	if err := net.CheckFinite(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: training diverged, try a lower learning rate: %v\n", err)
		os.Exit(1)
	}

	start = time.Now()
	fmt.Printf("\nSaving model to %s...\n", cfg.ModelPath)
	if err := utils.SaveModel(cfg.ModelPath, net, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
		os.Exit(1)
	}
	if cfg.AnalysisPath != "" {
		rec := utils.RunRecord{
			Name:      cfg.Name,
			Inputs:    cfg.InputSize,
			Hidden:    cfg.Hidden,
			Epochs:    cfg.Epochs,
			EpochsRun: report.EpochsRun,
			LR:        cfg.LearningRate,
			BatchSize: cfg.BatchSize,
			End:       time.Now(),
			Duration:  trainDuration,
			Accuracy:  report.BestValidationAccuracy,
		}
		if err := utils.AppendRunRecord(cfg.AnalysisPath, rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing analysis: %v\n", err)
			os.Exit(1)
		}
	}
	stats.PersistenceTime = time.Since(start)
	fmt.Println("Done!")

	pred, err := net.Predict(dataset.NormalizeWithParams(sample, params).Features())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error predicting: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nPrediction for temp=%.0f pressure=%.0f altitude=%.0f humidity=%.0f\n",
		sample.Temp, sample.Pressure, sample.Altitude, sample.Humidity)
	fmt.Printf("  Raw output: %.4f\n", pred)
	fmt.Printf("  Forecast:   %s\n", verdict(pred))

	stats.TotalTime = time.Since(totalStart)
	utils.PrintTimingStats(stats)
}

func loadConfig() (*utils.Config, error) {
	cfg := utils.DefaultConfig()
	c := &cfg
	if *configFile != "" {
		var err error
		if c, err = utils.LoadConfig(*configFile); err != nil {
			return nil, err
		}
	}

	o := utils.Overrides{
		TrainPath:    *trainFile,
		TestPath:     *testFile,
		ModelPath:    *modelFile,
		AnalysisPath: *analysisFile,
		LearningRate: *learningRate,
		Epochs:       *epochs,
		BatchSize:    *batchSize,
		Patience:     *patience,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			o.Seed = seed
		}
	})
	if *hidden != "" {
		arch, err := utils.ParseArchitecture(*hidden)
		if err != nil {
			return nil, err
		}
		o.Hidden = arch
	}
	c.ApplyOverrides(o)
	if err := utils.ValidateConfig(c); err != nil {
		return nil, err
	}
	return c, nil
}

func verdict(pred float64) string {
	if pred >= 0.5 {
		return "precipitation"
	}
	return "no precipitation"
}
