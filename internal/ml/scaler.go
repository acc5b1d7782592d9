package ml

import "math"

// Scaler standardizes feature columns to zero mean and unit variance.
// Columns flagged in Passthrough (e.g. binary indicators) are left as-is.
type Scaler struct {
	Means       []float64
	Stds        []float64
	Passthrough []bool
}

func FitScaler(samples [][]float64, passthrough []bool) *Scaler {
	if len(samples) == 0 {
		return &Scaler{Passthrough: passthrough}
	}

	featureCount := len(samples[0])
	means := make([]float64, featureCount)
	stds := make([]float64, featureCount)

	for column := 0; column < featureCount; column++ {
		var sum float64
		for _, sample := range samples {
			sum += sample[column]
		}
		mean := sum / float64(len(samples))

		var squared float64
		for _, sample := range samples {
			delta := sample[column] - mean
			squared += delta * delta
		}
		std := math.Sqrt(squared / float64(len(samples)))
		if std == 0 {
			std = 1
		}

		means[column] = mean
		stds[column] = std
	}

	return &Scaler{Means: means, Stds: stds, Passthrough: passthrough}
}

func (scaler *Scaler) Transform(features []float64) []float64 {
	if len(scaler.Means) == 0 {
		return append([]float64(nil), features...)
	}

	scaled := make([]float64, len(features))
	for column, value := range features {
		if column < len(scaler.Passthrough) && scaler.Passthrough[column] {
			scaled[column] = value
			continue
		}
		scaled[column] = (value - scaler.Means[column]) / scaler.Stds[column]
	}
	return scaled
}

func (scaler *Scaler) TransformAll(samples [][]float64) [][]float64 {
	scaled := make([][]float64, len(samples))
	for index, sample := range samples {
		scaled[index] = scaler.Transform(sample)
	}
	return scaled
}
