package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rallypoint-app/rallypoint/services"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(rs services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: rs}
}

// GetPlayerRating handles GET /players/{userID}/rating.
func (h *RatingHandler) GetPlayerRating(w http.ResponseWriter, r *http.Request) {
	rating, err := h.ratingService.GetPlayerRating(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rating": rating}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}
