package ml

import (
	"fmt"
	"sort"
)

const (
	CALIBRATION_SIGMOID  = "sigmoid"
	CALIBRATION_ISOTONIC = "isotonic"
)

// SigmoidCalibration is Platt scaling: p = 1 / (1 + exp(A*f + B)).
type SigmoidCalibration struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

func (s SigmoidCalibration) Calibrate(f float64) float64 {
	return Expit(-(s.A*f + s.B))
}

// IsotonicCalibration interpolates linearly between fitted thresholds and clips
// outside them.
type IsotonicCalibration struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

func (c IsotonicCalibration) validate() error {
	if len(c.X) == 0 || len(c.X) != len(c.Y) {
		return fmt.Errorf("isotonic thresholds: %d x values, %d y values", len(c.X), len(c.Y))
	}
	if !sort.Float64sAreSorted(c.X) {
		return fmt.Errorf("isotonic thresholds are not sorted")
	}
	return nil
}

func (c IsotonicCalibration) Calibrate(f float64) float64 {
	n := len(c.X)
	if f <= c.X[0] {
		return c.Y[0]
	}
	if f >= c.X[n-1] {
		return c.Y[n-1]
	}
	hi := sort.SearchFloat64s(c.X, f)
	if c.X[hi] == f {
		return c.Y[hi]
	}
	lo := hi - 1
	span := c.X[hi] - c.X[lo]
	if span == 0 {
		return c.Y[hi]
	}
	w := (f - c.X[lo]) / span
	return c.Y[lo] + w*(c.Y[hi]-c.Y[lo])
}

// CalibratedMember is one fold of a calibrated ensemble: a forest plus the mapping
// fitted on its held-out predictions.
type CalibratedMember struct {
	Forest   RandomForest         `json:"forest"`
	Sigmoid  *SigmoidCalibration  `json:"sigmoid,omitempty"`
	Isotonic *IsotonicCalibration `json:"isotonic,omitempty"`
}

// CalibratedClassifier averages the calibrated positive probabilities of its members.
type CalibratedClassifier struct {
	Name      string             `json:"-"`
	NFeatures int                `json:"n_features_in"`
	Method    string             `json:"method"`
	Members   []CalibratedMember `json:"calibrated_classifiers"`
}

func (c *CalibratedClassifier) Validate() error {
	if c.NFeatures <= 0 {
		return invalidf("%s: n_features_in must be positive", c.Name)
	}
	if c.Method != CALIBRATION_SIGMOID && c.Method != CALIBRATION_ISOTONIC {
		return invalidf("%s: unsupported calibration method %q", c.Name, c.Method)
	}
	if len(c.Members) == 0 {
		return invalidf("%s: no calibrated classifiers", c.Name)
	}
	for i := range c.Members {
		m := &c.Members[i]
		m.Forest.Name = c.Name
		if m.Forest.NFeatures == 0 {
			m.Forest.NFeatures = c.NFeatures
		}
		if m.Forest.NFeatures != c.NFeatures {
			return invalidf("%s: member %d expects %d features, ensemble expects %d", c.Name, i, m.Forest.NFeatures, c.NFeatures)
		}
		if err := m.Forest.Validate(); err != nil {
			return err
		}
		switch c.Method {
		case CALIBRATION_SIGMOID:
			if m.Sigmoid == nil {
				return invalidf("%s: member %d has no sigmoid parameters", c.Name, i)
			}
		case CALIBRATION_ISOTONIC:
			if m.Isotonic == nil {
				return invalidf("%s: member %d has no isotonic thresholds", c.Name, i)
			}
			if err := m.Isotonic.validate(); err != nil {
				return invalidf("%s: member %d: %v", c.Name, i, err)
			}
		}
	}
	return nil
}

func (c *CalibratedClassifier) NumFeatures() int {
	return c.NFeatures
}

func (c *CalibratedClassifier) PredictPositiveProbability(x []float64) (float64, error) {
	if err := checkWidth(c.Name, x, c.NFeatures); err != nil {
		return 0, err
	}
	var sum float64
	for i := range c.Members {
		m := &c.Members[i]
		raw, err := m.Forest.PredictPositiveProbability(x)
		if err != nil {
			return 0, err
		}
		var p float64
		if c.Method == CALIBRATION_SIGMOID {
			p = m.Sigmoid.Calibrate(raw)
		} else {
			p = m.Isotonic.Calibrate(raw)
		}
		sum += clamp01(p)
	}
	return sum / float64(len(c.Members)), nil
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
