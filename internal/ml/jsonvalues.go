package ml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Vector decodes either a flat number array or a single-row matrix, the two shapes
// estimator exports use for coefficients.
type Vector []float64

func (v *Vector) UnmarshalJSON(data []byte) error {
	var flat []float64
	if err := json.Unmarshal(data, &flat); err == nil {
		*v = flat
		return nil
	}
	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("decode vector: %w", err)
	}
	if len(rows) != 1 {
		return fmt.Errorf("decode vector: expected a single row, got %d", len(rows))
	}
	*v = rows[0]
	return nil
}

// Scalar decodes a number or a one-element array.
type Scalar float64

func (s *Scalar) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Scalar(f)
		return nil
	}
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("decode scalar: %w", err)
	}
	if len(arr) != 1 {
		return fmt.Errorf("decode scalar: expected one value, got %d", len(arr))
	}
	*s = Scalar(arr[0])
	return nil
}

// Label decodes a category given as a JSON string or number. Numbers keep their
// literal text, so 25 and "25" are the same category.
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode label: %w", err)
	}
	text := n.String()
	if strings.Contains(text, ".") {
		text = strings.TrimRight(strings.TrimRight(text, "0"), ".")
	}
	*l = Label(text)
	return nil
}
