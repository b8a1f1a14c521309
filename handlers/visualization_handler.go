package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/alaminShaheen/PrepTracker/middleware"
	"github.com/alaminShaheen/PrepTracker/services"
)

type VisualizationHandler struct {
	visualizationService *services.VisualizationService
}

func NewVisualizationHandler(visualizationService *services.VisualizationService) *VisualizationHandler {
	return &VisualizationHandler{
		visualizationService: visualizationService,
	}
}

// GetHeatmap returns the user's per-day completion counts for the progress
// calendar.
func (h *VisualizationHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	entries, err := h.visualizationService.GetHeatmap(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
