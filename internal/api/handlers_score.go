package api

import (
	"net/http"
	"strconv"

	"github.com/car-assistant/internal/models"
	"github.com/car-assistant/internal/types"
	"github.com/gorilla/mux"
)

// handleCreateScore handles POST /api/cars/:carId/scores - Record a health score
func (s *Server) handleCreateScore(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	carID := vars["carId"]

	if carID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Car ID required", nil)
		return
	}

	// Parse request body
	var req struct {
		Category     types.ScoreCategory    `json:"category"`
		Score        float64                `json:"score"`
		Factors      map[string]interface{} `json:"factors,omitempty"`
		ModelVersion string                 `json:"modelVersion"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	score := &models.HealthScore{
		CarID:        carID,
		Category:     req.Category,
		Score:        req.Score,
		Factors:      req.Factors,
		ModelVersion: req.ModelVersion,
	}

	if err := s.scores.Create(r.Context(), score); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusCreated, score)
}

// handleListScores handles GET /api/cars/:carId/scores - Score history, newest first
func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	carID := vars["carId"]

	if carID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Car ID required", nil)
		return
	}

	query := r.URL.Query()

	// Parse pagination
	limit := 50 // Default
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	offset := 0 // Default
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	scores, err := s.scores.ListByCar(r.Context(), carID, limit, offset)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, scores)
}

// handleGetLatestScore handles GET /api/cars/:carId/scores/latest - Current score
func (s *Server) handleGetLatestScore(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	carID := vars["carId"]

	if carID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Car ID required", nil)
		return
	}

	score, err := s.scores.LatestByCar(r.Context(), carID)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, score)
}
