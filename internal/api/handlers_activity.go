package api

import (
	"net/http"
	"strconv"

	"github.com/car-assistant/internal/models"
	"github.com/car-assistant/internal/types"
	"github.com/gorilla/mux"
)

// handleRecordActivity handles POST /api/activity - Append an activity log entry
func (s *Server) handleRecordActivity(w http.ResponseWriter, r *http.Request) {
	// Get user ID from headers
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "User ID required", nil)
		return
	}

	// Parse request body
	var req struct {
		CarID   *string                `json:"carId,omitempty"`
		Action  types.ActivityAction   `json:"action"`
		Details map[string]interface{} `json:"details,omitempty"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.Action == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Action is required", nil)
		return
	}

	entry := &models.ActivityLog{
		UserID:  userID,
		CarID:   req.CarID,
		Action:  req.Action,
		Details: req.Details,
	}

	if err := s.activity.Insert(r.Context(), entry); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// handleListUserActivity handles GET /api/users/:id/activity - Activity history
func (s *Server) handleListUserActivity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if userID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "User ID required", nil)
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

	entries, err := s.activity.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	total, err := s.activity.CountByUser(r.Context(), userID)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries":    entries,
		"totalCount": total,
	})
}
