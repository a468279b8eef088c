package ml

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidArtifact   = errors.New("invalid model artifact")
)

// DimensionError reports a feature vector whose length disagrees with the width a
// model was trained on.
type DimensionError struct {
	Component string
	Got       int
	Want      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s feature mismatch. Got %d, expected %d", e.Component, e.Got, e.Want)
}

func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArtifact, fmt.Sprintf(format, args...))
}
