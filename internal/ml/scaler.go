package ml

// StandardScaler centres and scales each column: (x - mean) / scale. A nil Mean or
// Scale means the scaler was fit without centring or without scaling.
type StandardScaler struct {
	Name      string `json:"-"`
	NFeatures int    `json:"n_features_in"`
	Mean      Vector `json:"mean"`
	Scale     Vector `json:"scale"`
}

func (s *StandardScaler) Validate() error {
	if s.NFeatures <= 0 {
		return invalidf("%s: n_features_in must be positive", s.Name)
	}
	if s.Mean != nil && len(s.Mean) != s.NFeatures {
		return invalidf("%s: mean has %d values, expected %d", s.Name, len(s.Mean), s.NFeatures)
	}
	if s.Scale != nil && len(s.Scale) != s.NFeatures {
		return invalidf("%s: scale has %d values, expected %d", s.Name, len(s.Scale), s.NFeatures)
	}
	return nil
}

func (s *StandardScaler) NumFeatures() int {
	return s.NFeatures
}

func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if err := checkWidth(s.Name, x, s.NFeatures); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		if s.Mean != nil {
			v -= s.Mean[i]
		}
		if s.Scale != nil && s.Scale[i] != 0 {
			v /= s.Scale[i]
		}
		out[i] = v
	}
	return out, nil
}
