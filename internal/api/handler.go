package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spacesedan/trendcast/internal/models"
	"github.com/spacesedan/trendcast/internal/scoring"
)

const (
	STATUS_MESSAGE = "YouTube Trending Predictor API is running"
	MAX_BODY_BYTES = 1 << 20
)

type Predictor interface {
	Predict(ctx context.Context, in models.VideoInput) (models.PredictionResult, error)
	ModelInfo() models.ModelInfo
}

type Handler struct {
	predictor Predictor
}

func NewHandler(predictor Predictor) *Handler {
	return &Handler{predictor: predictor}
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.StatusMessage{Message: STATUS_MESSAGE})
}

func (h *Handler) modelInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.predictor.ModelInfo())
}

// predict answers pipeline faults with status 200 and an error payload; only a request
// that cannot be read as a VideoInput gets 422.
func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	var req models.VideoInputRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES)).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, string(scoring.KIND_INVALID_REQUEST),
			fmt.Sprintf("malformed request body: %v", err))
		return
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		writeError(w, http.StatusUnprocessableEntity, string(scoring.KIND_INVALID_REQUEST),
			"missing required fields: "+strings.Join(missing, ", "))
		return
	}

	result, err := h.predictor.Predict(r.Context(), req.Input())
	if err != nil {
		var pe *scoring.PipelineError
		if !errors.As(err, &pe) {
			pe = &scoring.PipelineError{Kind: scoring.KIND_UNCLASSIFIED, Err: err}
		}
		status := http.StatusOK
		if pe.Kind == scoring.KIND_INVALID_REQUEST {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, pe.Response())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
