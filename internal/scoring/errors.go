package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/spacesedan/trendcast/internal/ml"
	"github.com/spacesedan/trendcast/internal/models"
)

type ErrorKind string

const (
	KIND_DIMENSION_MISMATCH ErrorKind = "dimension_mismatch"
	KIND_INVALID_REQUEST    ErrorKind = "invalid_request"
	KIND_UNCLASSIFIED       ErrorKind = "unclassified_fault"
)

const (
	STAGE_INPUT      = "input"
	STAGE_TEXT       = "text"
	STAGE_TABULAR    = "tabular"
	STAGE_PSYCHOLOGY = "psychology"
	STAGE_META       = "meta"
)

var ErrNonFinite = errors.New("non-finite value")

// PipelineError is the only error Predict returns.
type PipelineError struct {
	Kind  ErrorKind
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Response renders the error as the payload clients receive.
func (e *PipelineError) Response() models.ErrorResponse {
	resp := models.ErrorResponse{
		Error:     e.Err.Error(),
		ErrorKind: string(e.Kind),
	}
	if e.Kind != KIND_INVALID_REQUEST {
		resp.Stage = e.Stage
	}
	return resp
}

func classify(stage string, err error) *PipelineError {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe
	}
	kind := KIND_UNCLASSIFIED
	if errors.Is(err, ml.ErrDimensionMismatch) {
		kind = KIND_DIMENSION_MISMATCH
	}
	return &PipelineError{Kind: kind, Stage: stage, Err: err}
}

func invalidRequest(format string, args ...any) *PipelineError {
	return &PipelineError{Kind: KIND_INVALID_REQUEST, Stage: STAGE_INPUT, Err: fmt.Errorf(format, args...)}
}

func checkFinite(what string, x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s[%d] = %v", ErrNonFinite, what, i, v)
		}
	}
	return nil
}

func checkProbability(what string, p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("%w: %s = %v", ErrNonFinite, what, p)
	}
	if p < 0 || p > 1 {
		return fmt.Errorf("%s = %v outside [0,1]", what, p)
	}
	return nil
}
