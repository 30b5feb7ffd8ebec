package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/karim/wadhifa/internal/server/middleware"
	"github.com/karim/wadhifa/internal/wizard"
)

// validDraftFlow guards the flow path segment against arbitrary key material.
func validDraftFlow(flow string) bool {
	switch wizard.FlowKind(flow) {
	case wizard.FlowApplication, wizard.FlowReview:
		return true
	}
	return false
}

// handleGetDraft returns the stored draft payload, or 204 when none exists.
// Draft reads are best effort: a broken backend reads as "no draft".
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	flow := r.PathValue("flow")
	entityID := r.PathValue("entity_id")
	if !validDraftFlow(flow) {
		s.errorResponse(w, http.StatusBadRequest, "Unknown draft flow: "+flow)
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	raw := s.drafts.Load(r.Context(), s.draftKey(flow, entityID, userID.String()))
	if raw == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// handlePutDraft stores a draft payload verbatim
func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	flow := r.PathValue("flow")
	entityID := r.PathValue("entity_id")
	if !validDraftFlow(flow) {
		s.errorResponse(w, http.StatusBadRequest, "Unknown draft flow: "+flow)
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Draft body must be a JSON object")
		return
	}

	s.drafts.Save(r.Context(), s.draftKey(flow, entityID, userID.String()), payload)
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteDraft discards a stored draft
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	flow := r.PathValue("flow")
	entityID := r.PathValue("entity_id")
	if !validDraftFlow(flow) {
		s.errorResponse(w, http.StatusBadRequest, "Unknown draft flow: "+flow)
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.drafts.Clear(r.Context(), s.draftKey(flow, entityID, userID.String()))
	w.WriteHeader(http.StatusNoContent)
}
