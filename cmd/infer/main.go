// forecast-infer: classifies one observation with a saved model
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"forecast_nn/dataset"
	"forecast_nn/utils"

	"gonum.org/v1/gonum/mat"
)

var (
	modelFile = flag.String("model", "weather_model.json", "Model JSON file")
	temp      = flag.Float64("temp", 22, "Temperature")
	pressure  = flag.Float64("pressure", 1016, "Pressure")
	altitude  = flag.Float64("altitude", 300, "Altitude")
	humidity  = flag.Float64("humidity", 70, "Humidity")
	dump      = flag.Bool("dump", false, "Print the weight matrices")
	verbose   = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                 Weather Forecast Inference                   ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")

	net, params, err := utils.LoadModel(*modelFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d layers %v from %s\n", net.LayerCount(), net.LayerSizes(), *modelFile)

	if *dump {
		for i, w := range net.WeightMatrices() {
			l := net.Layers[i]
			fmt.Printf("\n%s (%d x %d), biases %v\n", l.Name, l.NeuronCount(), l.FanIn(), l.Biases())
			fmt.Printf("%v\n", mat.Formatted(w, mat.Prefix(""), mat.Squeeze()))
		}
	}

	in := dataset.WeatherInput{Temp: *temp, Pressure: *pressure, Altitude: *altitude, Humidity: *humidity}
	norm := dataset.NormalizeWithParams(in, params)
	utils.Logf("Normalized input: %.4f", norm.Features())

	start := time.Now()
	pred, err := net.Predict(norm.Features())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	utils.Logf("Time: %v", time.Since(start))

	fmt.Printf("\nPrediction for temp=%g pressure=%g altitude=%g humidity=%g\n", in.Temp, in.Pressure, in.Altitude, in.Humidity)
	fmt.Printf("  Raw output: %.4f\n", pred)
	if pred >= 0.5 {
		fmt.Println("  Forecast:   precipitation")
	} else {
		fmt.Println("  Forecast:   no precipitation")
	}
}
