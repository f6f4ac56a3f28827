package api

import (
	"net/http"

	"github.com/car-assistant/internal/errors"
	"github.com/car-assistant/internal/models"
	"github.com/gorilla/mux"
)

// handleGetUser handles GET /api/users/:id - Get user profile by ID
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if userID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "User ID required", nil)
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	// An absent profile is not a storage fault, just a missing document
	if user == nil {
		notFound := errors.NewNotFoundError("user", userID)
		respondError(w, notFound.StatusCode, ErrCodeNotFound, notFound.Message, nil)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// handleSaveUser handles PUT /api/users/:id - Save the full user profile
func (s *Server) handleSaveUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if userID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "User ID required", nil)
		return
	}

	// The profile is saved as sent; the store replaces the whole document
	var user models.User
	if err := parseJSONBody(r, &user); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if user.ID != "" && user.ID != userID {
		invalid := errors.NewInvalidParameterError("id", "body id does not match URL id")
		respondError(w, invalid.StatusCode, ErrCodeInvalidInput, invalid.Message, invalid.Details)
		return
	}
	user.ID = userID

	if err := s.users.Save(r.Context(), &user); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, &user)
}

// handleSetOnlineStatus handles PUT /api/users/:id/status - Update presence
func (s *Server) handleSetOnlineStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if userID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "User ID required", nil)
		return
	}

	var req struct {
		Online bool `json:"online"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := s.users.SetOnlineStatus(r.Context(), userID, req.Online); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleSetPushToken handles PUT /api/users/:id/push-token - Register a push token
func (s *Server) handleSetPushToken(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if userID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "User ID required", nil)
		return
	}

	// An empty token clears the stored one
	var req struct {
		Token string `json:"token"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := s.users.SetPushToken(r.Context(), userID, req.Token); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
