package trainer

// shuffledIndices returns a Fisher-Yates permutation of 0..n-1.
func (t *BinaryTrainer) shuffledIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := t.rnd.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices
}

// createBatches splits indices into contiguous chunks of batchSize. The last
// chunk may be shorter.
func createBatches(indices []int, batchSize int) [][]int {
	numBatches := (len(indices) + batchSize - 1) / batchSize
	batches := make([][]int, numBatches)

	for i := 0; i < numBatches; i++ {
		startIdx := i * batchSize
		endIdx := startIdx + batchSize

		if endIdx > len(indices) {
			endIdx = len(indices)
		}

		batches[i] = indices[startIdx:endIdx]
	}

	return batches
}
