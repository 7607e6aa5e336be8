package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rallypoint-app/rallypoint/middleware"
	"github.com/rallypoint-app/rallypoint/models"
	"github.com/rallypoint-app/rallypoint/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(rs services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

// Register handles POST /tournaments/{tournamentID}/registrations.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	var input services.RegisterForTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	reg, err := h.registrationService.Register(r.Context(), chi.URLParam(r, "tournamentID"), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registration": reg}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// List handles GET /tournaments/{tournamentID}/registrations.
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *models.RegistrationStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := models.RegistrationStatus(statusStr)
		status = &s
	}

	regs, err := h.registrationService.ListByTournament(r.Context(), chi.URLParam(r, "tournamentID"), status)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"registrations": regs}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// Withdraw handles POST /registrations/{registrationID}/withdraw.
func (h *RegistrationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	if err := h.registrationService.Withdraw(r.Context(), chi.URLParam(r, "registrationID"), userID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "withdrawn"}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// SetStatus handles PATCH /registrations/{registrationID}.
func (h *RegistrationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	var input struct {
		Status models.RegistrationStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.registrationService.SetStatus(r.Context(), chi.URLParam(r, "registrationID"), userID, input.Status); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": input.Status}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}
