package ml

// LogisticRegression is a fitted binary logistic model.
type LogisticRegression struct {
	Name      string  `json:"-"`
	NFeatures int     `json:"n_features_in"`
	Coef      Vector  `json:"coef"`
	Intercept Scalar  `json:"intercept"`
	Classes   []Label `json:"classes,omitempty"`
}

func (l *LogisticRegression) Validate() error {
	if l.NFeatures <= 0 {
		return invalidf("%s: n_features_in must be positive", l.Name)
	}
	if len(l.Coef) != l.NFeatures {
		return invalidf("%s: coef has %d values, expected %d", l.Name, len(l.Coef), l.NFeatures)
	}
	if l.Classes != nil && len(l.Classes) != 2 {
		return invalidf("%s: expected a binary classifier, got %d classes", l.Name, len(l.Classes))
	}
	return nil
}

func (l *LogisticRegression) NumFeatures() int {
	return l.NFeatures
}

// DecisionFunction is the signed distance x·coef + intercept.
func (l *LogisticRegression) DecisionFunction(x []float64) (float64, error) {
	if err := checkWidth(l.Name, x, l.NFeatures); err != nil {
		return 0, err
	}
	z := float64(l.Intercept)
	for i, v := range x {
		z += v * l.Coef[i]
	}
	return z, nil
}

func (l *LogisticRegression) PredictPositiveProbability(x []float64) (float64, error) {
	z, err := l.DecisionFunction(x)
	if err != nil {
		return 0, err
	}
	return Expit(z), nil
}
