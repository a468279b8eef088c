package features

const META_FEATURE_COUNT = 3

// MetaFeatureNames is the order base-scorer probabilities are fed to the meta combiner.
var MetaFeatureNames = []string{"text_prob", "rf_prob", "psych_prob"}

// MetaVector stacks the three base probabilities in MetaFeatureNames order.
func MetaVector(textProb, rfProb, psychProb float64) []float64 {
	return []float64{textProb, rfProb, psychProb}
}
