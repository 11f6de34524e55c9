// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	app "github.com/okian/lungrisk/internal/app"
	"github.com/okian/lungrisk/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Assess validates inputs and builds a report.
	Assess(ctx context.Context, in model.UserInputs) (Report, error)
	// AssessBatch scores many questionnaires; invalid items are reported
	// in place.
	AssessBatch(ctx context.Context, inputs []model.UserInputs) (app.BatchResult, error)
	// MaxBatch is the largest accepted batch.
	MaxBatch() int
	// Reference describes the accepted input domain.
	Reference(ctx context.Context) model.Reference
}

// Report mirrors the response shape of POST /assessments.
type Report = app.Report

// defaultMaxBodyBytes bounds request bodies when no limit is configured.
const defaultMaxBodyBytes = 16 << 10

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	assessmentsHandler *AssessmentsHandler
	referenceHandler   *ReferenceHandler
}

// NewServer creates a new API server with all handlers. A non-positive
// maxBodyBytes falls back to 16 KiB.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxBodyBytes int64) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		assessmentsHandler: NewAssessmentsHandler(deps, maxBodyBytes),
		referenceHandler:   NewReferenceHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", RequestID(MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")))
	mux.HandleFunc("/stats", RequestID(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/assessments", RequestID(MetricsMiddleware(s.assessmentsHandler.HandlePostAssessment, "assessments")))
	mux.HandleFunc("/assessments/batch", RequestID(MetricsMiddleware(s.assessmentsHandler.HandlePostBatch, "assessments_batch")))
	mux.HandleFunc("/reference", RequestID(MetricsMiddleware(s.referenceHandler.HandleGetReference, "reference")))
}

type errorResponse struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
