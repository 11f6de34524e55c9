package api

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	app "github.com/okian/lungrisk/internal/app"
	"github.com/okian/lungrisk/internal/domain/model"
)

// BatchRequest is the body of POST /assessments/batch.
type BatchRequest struct {
	Items []model.UserInputs `json:"items"`
}

// AssessmentsHandler handles assessment requests.
type AssessmentsHandler struct {
	deps         Dependencies
	maxBodyBytes int64
}

// NewAssessmentsHandler creates a new assessments handler.
func NewAssessmentsHandler(deps Dependencies, maxBodyBytes int64) *AssessmentsHandler {
	return &AssessmentsHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandlePostAssessment handles POST /assessments requests.
func (h *AssessmentsHandler) HandlePostAssessment(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_assessment"
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var in model.UserInputs
	if !decodeBody(w, r, h.maxBodyBytes, &in, op) {
		return
	}

	report, err := h.deps.Assess(r.Context(), in)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Code:    "invalid_input",
				Message: WrapKind(op, ErrInvalidInput, err).Error(),
				Fields:  verr.Fields,
			})
			return
		}
		if errors.Is(err, model.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_input", WrapKind(op, ErrInvalidInput, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HandlePostBatch handles POST /assessments/batch requests. The body limit
// scales with the configured batch cap.
func (h *AssessmentsHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req BatchRequest
	limit := batchBodyLimit(h.maxBodyBytes, h.deps.MaxBatch())
	if !decodeBody(w, r, limit, &req, op) {
		return
	}

	res, err := h.deps.AssessBatch(r.Context(), req.Items)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, app.ErrBatchTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", WrapKind(op, ErrPayloadTooLarge, err))
	case errors.Is(err, app.ErrEmptyBatch):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}

// batchBodyLimit scales the per-questionnaire limit by the batch cap,
// saturating at math.MaxInt64.
func batchBodyLimit(perItem int64, items int) int64 {
	n := int64(max(items, 1))
	if perItem > 0 && n > math.MaxInt64/perItem {
		return math.MaxInt64
	}
	return perItem * n
}

// requireMethod answers 405 with an Allow header unless r uses method.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(r.Method+" "+r.URL.Path, ErrMethod))
	return false
}

// decodeBody reads exactly one JSON value of at most limit bytes into v and
// writes the error response itself when that fails.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil {
		err = requireEOF(dec)
	}
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", WrapKind(op, ErrPayloadTooLarge, err))
	case errors.Is(err, errTrailingData):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	}
	return false
}

// requireEOF reports errTrailingData unless only whitespace follows the
// value dec has just decoded.
func requireEOF(dec *json.Decoder) error {
	err := dec.Decode(&struct{}{})
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &tooLarge):
		return err
	default:
		return errTrailingData
	}
}
