package scoring

const (
	BUCKET_LOW       = "Low chance"
	BUCKET_MEDIUM    = "Medium chance"
	BUCKET_HIGH      = "High chance"
	BUCKET_VERY_HIGH = "Very high chance"
)

// Bucket maps a trending probability to its label. Lower bounds are inclusive.
func Bucket(p float64) string {
	switch {
	case p < 0.20:
		return BUCKET_LOW
	case p < 0.45:
		return BUCKET_MEDIUM
	case p < 0.70:
		return BUCKET_HIGH
	default:
		return BUCKET_VERY_HIGH
	}
}
