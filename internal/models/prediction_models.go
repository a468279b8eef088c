package models

type ScoreBreakdown struct {
	TextScore       float64 `json:"text_score"`
	NumericScore    float64 `json:"numeric_score"`
	PsychologyScore float64 `json:"psychology_score"`
}

type PredictionResult struct {
	TrendingProbability float64        `json:"trending_probability"`
	ConfidenceBucket    string         `json:"confidence_bucket"`
	ModelBreakdown      ScoreBreakdown `json:"model_breakdown"`
}

// ErrorResponse is returned instead of a PredictionResult when any stage fails.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorKind string `json:"error_kind"`
	Stage     string `json:"stage,omitempty"`
}

type ModelInfo struct {
	TextFeatures  int `json:"text_features"`
	RFFeatures    int `json:"rf_features"`
	PsychFeatures int `json:"psych_features"`
	MetaFeatures  int `json:"meta_features"`
}

type StatusMessage struct {
	Message string `json:"message"`
}
