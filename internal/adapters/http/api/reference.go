package api

import (
	"net/http"
)

// ReferenceHandler serves the accepted input domain.
type ReferenceHandler struct {
	deps Dependencies
}

// NewReferenceHandler creates a new reference handler.
func NewReferenceHandler(deps Dependencies) *ReferenceHandler {
	return &ReferenceHandler{deps: deps}
}

// HandleGetReference handles GET /reference requests.
func (h *ReferenceHandler) HandleGetReference(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Reference(r.Context()))
}
