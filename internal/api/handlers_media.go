package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/car-assistant/internal/models"
	"github.com/car-assistant/internal/types"
	"github.com/gorilla/mux"
)

// handleCreateAudioDiagnostic handles POST /api/cars/:carId/audio-diagnostics - Register an upload
func (s *Server) handleCreateAudioDiagnostic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	carID := vars["carId"]

	if carID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Car ID required", nil)
		return
	}

	// Get user ID from headers
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "User ID required", nil)
		return
	}

	// Parse request body
	var req struct {
		AudioURL   string                 `json:"audioUrl"`
		DurationMs int64                  `json:"durationMs"`
		Status     types.DiagnosticStatus `json:"status,omitempty"`
		Labels     []string               `json:"labels,omitempty"`
		Findings   map[string]interface{} `json:"findings,omitempty"`
		RecordedAt time.Time              `json:"recordedAt,omitempty"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.AudioURL == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Audio URL is required", nil)
		return
	}

	diag := &models.AudioDiagnostic{
		CarID:      carID,
		UserID:     userID,
		AudioURL:   req.AudioURL,
		DurationMs: req.DurationMs,
		Status:     req.Status,
		Labels:     req.Labels,
		Findings:   req.Findings,
		RecordedAt: req.RecordedAt,
	}

	if err := s.audio.Create(r.Context(), diag); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusCreated, diag)
}

// handleListAudioDiagnostics handles GET /api/cars/:carId/audio-diagnostics
func (s *Server) handleListAudioDiagnostics(w http.ResponseWriter, r *http.Request) {
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

	diags, err := s.audio.ListByCar(r.Context(), carID, limit, offset)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, diags)
}

// handleGetAudioDiagnostic handles GET /api/audio-diagnostics/:id
func (s *Server) handleGetAudioDiagnostic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	diagID := vars["id"]

	if diagID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Diagnostic ID required", nil)
		return
	}

	diag, err := s.audio.GetByID(r.Context(), diagID)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, diag)
}

// handleDeleteAudioDiagnostic handles DELETE /api/audio-diagnostics/:id
func (s *Server) handleDeleteAudioDiagnostic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	diagID := vars["id"]

	if diagID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Diagnostic ID required", nil)
		return
	}

	if err := s.audio.Delete(r.Context(), diagID); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleCreateVideoDiagnostic handles POST /api/cars/:carId/video-diagnostics - Register an upload
func (s *Server) handleCreateVideoDiagnostic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	carID := vars["carId"]

	if carID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Car ID required", nil)
		return
	}

	// Get user ID from headers
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "User ID required", nil)
		return
	}

	// Parse request body
	var req struct {
		VideoURL   string                 `json:"videoUrl"`
		DurationMs int64                  `json:"durationMs"`
		FrameCount int64                  `json:"frameCount"`
		Status     types.DiagnosticStatus `json:"status,omitempty"`
		Labels     []string               `json:"labels,omitempty"`
		Findings   map[string]interface{} `json:"findings,omitempty"`
		RecordedAt time.Time              `json:"recordedAt,omitempty"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.VideoURL == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Video URL is required", nil)
		return
	}

	diag := &models.VideoDiagnostic{
		CarID:      carID,
		UserID:     userID,
		VideoURL:   req.VideoURL,
		DurationMs: req.DurationMs,
		FrameCount: req.FrameCount,
		Status:     req.Status,
		Labels:     req.Labels,
		Findings:   req.Findings,
		RecordedAt: req.RecordedAt,
	}

	if err := s.video.Create(r.Context(), diag); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusCreated, diag)
}

// handleListVideoDiagnostics handles GET /api/cars/:carId/video-diagnostics
func (s *Server) handleListVideoDiagnostics(w http.ResponseWriter, r *http.Request) {
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

	diags, err := s.video.ListByCar(r.Context(), carID, limit, offset)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, diags)
}

// handleGetVideoDiagnostic handles GET /api/video-diagnostics/:id
func (s *Server) handleGetVideoDiagnostic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	diagID := vars["id"]

	if diagID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Diagnostic ID required", nil)
		return
	}

	diag, err := s.video.GetByID(r.Context(), diagID)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, diag)
}

// handleDeleteVideoDiagnostic handles DELETE /api/video-diagnostics/:id
func (s *Server) handleDeleteVideoDiagnostic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	diagID := vars["id"]

	if diagID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Diagnostic ID required", nil)
		return
	}

	if err := s.video.Delete(r.Context(), diagID); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleCreateCarImage handles POST /api/cars/:carId/images - Register a photo
func (s *Server) handleCreateCarImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	carID := vars["carId"]

	if carID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Car ID required", nil)
		return
	}

	// Get user ID from headers
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "User ID required", nil)
		return
	}

	// Parse request body
	var req struct {
		ImageURL string    `json:"imageUrl"`
		Caption  *string   `json:"caption,omitempty"`
		Tags     []string  `json:"tags,omitempty"`
		TakenAt  time.Time `json:"takenAt,omitempty"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.ImageURL == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Image URL is required", nil)
		return
	}

	image := &models.CarImage{
		CarID:    carID,
		UserID:   userID,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
		Tags:     req.Tags,
		TakenAt:  req.TakenAt,
	}

	if err := s.images.Create(r.Context(), image); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusCreated, image)
}

// handleListCarImages handles GET /api/cars/:carId/images
func (s *Server) handleListCarImages(w http.ResponseWriter, r *http.Request) {
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

	images, err := s.images.ListByCar(r.Context(), carID, limit, offset)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, images)
}

// handleGetCarImage handles GET /api/images/:id
func (s *Server) handleGetCarImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	imageID := vars["id"]

	if imageID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Image ID required", nil)
		return
	}

	image, err := s.images.GetByID(r.Context(), imageID)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, image)
}

// handleDeleteCarImage handles DELETE /api/images/:id
func (s *Server) handleDeleteCarImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	imageID := vars["id"]

	if imageID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Image ID required", nil)
		return
	}

	if err := s.images.Delete(r.Context(), imageID); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
