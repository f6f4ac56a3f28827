package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/car-assistant/internal/models"
	"github.com/gorilla/mux"
)

// handleCreateReminder handles POST /api/reminders - Create a maintenance reminder
func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	// Get user ID from headers
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "User ID required", nil)
		return
	}

	// Parse request body
	var req struct {
		CarID    string    `json:"carId"`
		Title    string    `json:"title"`
		Notes    *string   `json:"notes,omitempty"`
		DueAt    time.Time `json:"dueAt"`
		Channels []string  `json:"channels,omitempty"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.CarID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Car ID is required", nil)
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Title is required", nil)
		return
	}

	if req.DueAt.IsZero() {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Due date is required", nil)
		return
	}

	reminder := &models.Reminder{
		UserID:   userID,
		CarID:    req.CarID,
		Title:    req.Title,
		Notes:    req.Notes,
		DueAt:    req.DueAt,
		Channels: req.Channels,
	}

	if err := s.reminders.Create(r.Context(), reminder); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusCreated, reminder)
}

// handleGetReminder handles GET /api/reminders/:id - Get a single reminder
func (s *Server) handleGetReminder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reminderID := vars["id"]

	if reminderID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Reminder ID required", nil)
		return
	}

	reminder, err := s.reminders.GetByID(r.Context(), reminderID)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, reminder)
}

// handleMarkReminderDone handles POST /api/reminders/:id/done - Complete a reminder
func (s *Server) handleMarkReminderDone(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reminderID := vars["id"]

	if reminderID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Reminder ID required", nil)
		return
	}

	if err := s.reminders.MarkDone(r.Context(), reminderID); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleDeleteReminder handles DELETE /api/reminders/:id - Delete a reminder
func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reminderID := vars["id"]

	if reminderID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Reminder ID required", nil)
		return
	}

	if err := s.reminders.Delete(r.Context(), reminderID); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleListUserReminders handles GET /api/users/:id/reminders - Reminders for a user.
// With ?due=true only reminders due now and not yet done are returned.
func (s *Server) handleListUserReminders(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if userID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "User ID required", nil)
		return
	}

	query := r.URL.Query()

	if query.Get("due") == "true" {
		reminders, err := s.reminders.ListDue(r.Context(), userID, time.Now())
		if err != nil {
			statusCode, code, message := mapStorageError(err)
			respondError(w, statusCode, code, message, nil)
			return
		}

		respondJSON(w, http.StatusOK, reminders)
		return
	}

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

	reminders, err := s.reminders.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, reminders)
}
