package server

import (
	"encoding/json"
	"net/http"

	"github.com/karim/wadhifa/internal/draft"
	"github.com/karim/wadhifa/internal/server/middleware"
	"github.com/karim/wadhifa/internal/types"
	"github.com/karim/wadhifa/internal/wizard"
)

// handleApply accepts a completed application payload for a job. The wizard
// runs client-side; the server re-validates the full payload before writing.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload types.ApplicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if fieldErrs := wizard.ApplicationFlow().ValidateAll(payload); fieldErrs != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": fieldErrs,
		})
		return
	}

	applicationID, err := s.db.InsertApplication(r.Context(), jobID, userID, payload)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// A submitted application makes its draft obsolete.
	s.drafts.Clear(r.Context(), s.draftKey(string(wizard.FlowApplication), jobID, userID.String()))

	s.jsonResponse(w, http.StatusCreated, map[string]string{
		"application_id": applicationID.String(),
		"job_id":         jobID,
	})
}

// handleSubmitReview accepts a completed company review payload.
func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	companyID := r.PathValue("id")
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload types.ReviewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if fieldErrs := wizard.ReviewFlow().ValidateAll(payload); fieldErrs != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": fieldErrs,
		})
		return
	}

	reviewID, err := s.db.InsertReview(r.Context(), companyID, userID, payload)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.drafts.Clear(r.Context(), s.draftKey(string(wizard.FlowReview), companyID, userID.String()))

	s.jsonResponse(w, http.StatusCreated, map[string]string{
		"review_id":  reviewID.String(),
		"company_id": companyID,
	})
}

// handleListReviews lists a company's reviews
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	companyID := r.PathValue("id")

	reviews, err := s.db.ListReviews(r.Context(), companyID, 20)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list reviews: "+err.Error())
		return
	}
	if reviews == nil {
		reviews = []types.Review{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"reviews": reviews})
}

// ToggleResponse represents the response for the save and helpful-vote
// toggles: the authoritative new state and count.
type ToggleResponse struct {
	Success bool `json:"success"`
	Value   bool `json:"value"`
	Count   int  `json:"count"`
}

// handleToggleSave flips the saved state of a job for the signed-in user
func (s *Server) handleToggleSave(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	saved, count, err := s.db.ToggleSaveJob(r.Context(), jobID, userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ToggleResponse{Success: true, Value: saved, Count: count})
}

// handleToggleHelpful flips the helpful vote on a review
func (s *Server) handleToggleHelpful(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	voted, count, err := s.db.ToggleHelpfulVote(r.Context(), reviewID, userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ToggleResponse{Success: true, Value: voted, Count: count})
}

// draftKey scopes a draft to both the entity and the owning user, so two
// users drafting against the same job never share state.
func (s *Server) draftKey(flow, entityID, userID string) string {
	return draft.Key(flow, userID+":"+entityID)
}
