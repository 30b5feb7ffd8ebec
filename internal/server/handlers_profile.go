package server

import (
	"encoding/json"
	"net/http"

	"github.com/karim/wadhifa/internal/server/middleware"
	"github.com/karim/wadhifa/internal/types"
)

// handleGetProfile returns the signed-in user's candidate profile, or 404
// when onboarding has not been completed.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get profile: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not set up")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpsertProfile creates or replaces the signed-in user's profile
func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var profile types.CandidateProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// The profile belongs to the token holder, whatever the body says.
	profile.UserID = userID

	for _, a := range profile.WorkArrangements {
		switch a {
		case types.ArrangementRemote, types.ArrangementHybrid, types.ArrangementOnSite:
		default:
			s.errorResponse(w, http.StatusBadRequest, "Unknown work arrangement: "+string(a))
			return
		}
	}

	if err := s.db.UpsertProfile(r.Context(), &profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save profile: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}
