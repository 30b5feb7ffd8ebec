package server

import (
	"net/http"
	"strconv"

	"github.com/karim/wadhifa/internal/matching"
	"github.com/karim/wadhifa/internal/query"
	"github.com/karim/wadhifa/internal/server/middleware"
	"github.com/karim/wadhifa/internal/types"
)

// JobListResponse represents the response for GET /jobs
type JobListResponse struct {
	Jobs     []ScoredJobResponse `json:"jobs"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// ScoredJobResponse pairs a job with its match score for the requesting user
type ScoredJobResponse struct {
	types.Job
	MatchScore int `json:"match_score"`
}

// parseFilterState reads the board filters from query parameters
func parseFilterState(r *http.Request) types.FilterState {
	q := r.URL.Query()
	return types.FilterState{
		Search:               q.Get("q"),
		Country:              q.Get("country"),
		Seniority:            types.Seniority(q.Get("seniority")),
		WorkArrangement:      types.WorkArrangement(q.Get("arrangement")),
		Industry:             q.Get("industry"),
		VisaSponsorship:      q.Get("visa_sponsorship") == "true",
		RelocationAssistance: q.Get("relocation_assistance") == "true",
		PostedWithin:         q.Get("posted_within"),
		Sort:                 types.SortOption(q.Get("sort")),
	}.Normalize()
}

// handleListJobs lists job postings for the current filters and page. When
// the caller is signed in and has a candidate profile, each job carries a
// match score; anonymous callers get zero scores.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	descriptor := query.Build(parseFilterState(r), page)

	result, err := s.db.ListJobs(r.Context(), descriptor)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs: "+err.Error())
		return
	}

	var profile *types.CandidateProfile
	if userID, err := middleware.GetUserID(r); err == nil {
		// Profile lookup failures only cost scoring, not the listing.
		profile, _ = s.db.GetProfile(r.Context(), userID)
	}

	resp := JobListResponse{
		Jobs:     make([]ScoredJobResponse, 0, len(result.Jobs)),
		Total:    result.Total,
		Page:     descriptor.Page,
		PageSize: descriptor.Limit,
	}
	for _, job := range result.Jobs {
		resp.Jobs = append(resp.Jobs, ScoredJobResponse{
			Job:        job,
			MatchScore: matching.Score(&job, profile),
		})
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetJob returns a single job posting
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleSuggestTitles returns title completions for the typeahead
func (s *Server) handleSuggestTitles(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("q")
	if prefix == "" {
		s.jsonResponse(w, http.StatusOK, map[string][]string{"suggestions": {}})
		return
	}

	titles, err := s.db.SuggestTitles(r.Context(), prefix, 8)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to suggest titles: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string][]string{"suggestions": titles})
}

// handleMyJobs returns the signed-in user's saved and applied job IDs
func (s *Server) handleMyJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	saved, err := s.db.ListSavedJobIDs(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list saved jobs: "+err.Error())
		return
	}
	applied, err := s.db.ListAppliedJobIDs(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list applications: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string][]string{
		"saved":   emptyIfNil(saved),
		"applied": emptyIfNil(applied),
	})
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
