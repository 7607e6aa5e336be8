package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rallypoint-app/rallypoint/middleware"
	"github.com/rallypoint-app/rallypoint/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// SchedulePoolMatch handles POST /tournaments/{tournamentID}/pool-matches.
func (h *MatchHandler) SchedulePoolMatch(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	var input services.SchedulePoolMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.matchService.SchedulePoolMatch(r.Context(), chi.URLParam(r, "tournamentID"), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// ScheduleBracketMatch handles POST /tournaments/{tournamentID}/slots/{slotID}/match.
func (h *MatchHandler) ScheduleBracketMatch(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	match, err := h.matchService.ScheduleBracketMatch(r.Context(),
		chi.URLParam(r, "tournamentID"), userID, chi.URLParam(r, "slotID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// RecordResult handles PUT /matches/{matchID}/result.
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.matchService.RecordResult(r.Context(), chi.URLParam(r, "matchID"), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// GetByID handles GET /matches/{matchID}.
func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	match, err := h.matchService.GetByID(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// ListByTournament handles GET /tournaments/{tournamentID}/matches.
func (h *MatchHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListByTournament(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}
