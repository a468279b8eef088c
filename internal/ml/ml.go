// Package ml holds the inference-only model families the scorers are built from. Every
// model is decoded from a JSON export of a trained estimator, validated once, and never
// mutated afterwards, so values are safe to share across goroutines.
package ml

import "math"

// Scaler maps a raw feature vector into the space a classifier was trained on.
type Scaler interface {
	NumFeatures() int
	Transform(x []float64) ([]float64, error)
}

// Classifier scores one feature vector with the probability of the positive class.
type Classifier interface {
	NumFeatures() int
	PredictPositiveProbability(x []float64) (float64, error)
}

// Fallback records a categorical value that was not part of the training vocabulary
// and was encoded with the encoder's fallback row instead.
type Fallback struct {
	Feature string
	Value   string
}

// Encoder turns categorical values into a dense indicator block.
type Encoder interface {
	NumInputs() int
	NumOutputs() int
	Encode(values []string) ([]float64, []Fallback, error)
}

// Expit is the logistic function, split by sign to stay finite for large |z|.
func Expit(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func checkWidth(component string, x []float64, want int) error {
	if len(x) != want {
		return &DimensionError{Component: component, Got: len(x), Want: want}
	}
	return nil
}
