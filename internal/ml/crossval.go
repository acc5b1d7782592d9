package ml

// KFoldAccuracy estimates classifier accuracy with k-fold cross-validation
// over contiguous folds. With fewer than two usable folds it falls back to
// scoring a single model on its own training data.
func KFoldAccuracy(samples [][]float64, labels []int, classCount int, k int, config ForestConfig) float64 {
	if len(samples) == 0 {
		return 0
	}
	if k > len(samples) {
		k = len(samples)
	}
	if k < 2 {
		forest := TrainForest(samples, labels, classCount, config)
		return forest.Accuracy(samples, labels)
	}

	foldSize := len(samples) / k
	remainder := len(samples) % k

	var accuracySum float64
	start := 0
	for fold := 0; fold < k; fold++ {
		size := foldSize
		if fold < remainder {
			size++
		}
		end := start + size

		trainSamples := make([][]float64, 0, len(samples)-size)
		trainLabels := make([]int, 0, len(samples)-size)
		for index := range samples {
			if index >= start && index < end {
				continue
			}
			trainSamples = append(trainSamples, samples[index])
			trainLabels = append(trainLabels, labels[index])
		}

		forest := TrainForest(trainSamples, trainLabels, classCount, config)
		accuracySum += forest.Accuracy(samples[start:end], labels[start:end])

		start = end
	}

	return accuracySum / float64(k)
}
