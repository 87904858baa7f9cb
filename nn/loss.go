package nn

// SquaredError is the half sum of squared errors, Σ 0.5*(t-o)^2.
type SquaredError struct{}

// Loss evaluates the error over paired targets and outputs; extra entries on
// either side are ignored.
func (SquaredError) Loss(targets, outputs []float64) float64 {
	n := len(targets)
	if len(outputs) < n {
		n = len(outputs)
	}
	loss := 0.0
	for i := 0; i < n; i++ {
		d := targets[i] - outputs[i]
		loss += 0.5 * d * d
	}
	return loss
}

// Delta is the negative derivative of the loss with respect to the output,
// so adding it moves the output toward the target.
func (SquaredError) Delta(target, output float64) float64 {
	return target - output
}
