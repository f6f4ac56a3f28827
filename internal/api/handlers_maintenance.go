package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/car-assistant/internal/models"
	"github.com/car-assistant/internal/types"
	"github.com/gorilla/mux"
)

// handleCreateMaintenanceRecord handles POST /api/cars/:carId/maintenance - Log a service
func (s *Server) handleCreateMaintenanceRecord(w http.ResponseWriter, r *http.Request) {
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
		Category      types.ServiceCategory `json:"category"`
		Title         string                `json:"title"`
		Description   *string               `json:"description,omitempty"`
		Mileage       int64                 `json:"mileage"`
		CostCents     int64                 `json:"costCents"`
		PartsReplaced []string              `json:"partsReplaced,omitempty"`
		PerformedAt   time.Time             `json:"performedAt,omitempty"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Title is required", nil)
		return
	}

	record := &models.MaintenanceRecord{
		CarID:         carID,
		UserID:        userID,
		Category:      req.Category,
		Title:         req.Title,
		Description:   req.Description,
		Mileage:       req.Mileage,
		CostCents:     req.CostCents,
		PartsReplaced: req.PartsReplaced,
		PerformedAt:   req.PerformedAt,
	}

	if err := s.maintenance.Create(r.Context(), record); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// handleListMaintenanceRecords handles GET /api/cars/:carId/maintenance - Service history
func (s *Server) handleListMaintenanceRecords(w http.ResponseWriter, r *http.Request) {
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

	records, err := s.maintenance.ListByCar(r.Context(), carID, limit, offset)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// handleGetMaintenanceRecord handles GET /api/maintenance/:id - Get a single record
func (s *Server) handleGetMaintenanceRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordID := vars["id"]

	if recordID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Record ID required", nil)
		return
	}

	record, err := s.maintenance.GetByID(r.Context(), recordID)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// handleUpdateMaintenanceRecord handles PUT /api/maintenance/:id - Update a record
func (s *Server) handleUpdateMaintenanceRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordID := vars["id"]

	if recordID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Record ID required", nil)
		return
	}

	// The update replaces the mutable fields, so the current record seeds
	// anything the body omits
	record, err := s.maintenance.GetByID(r.Context(), recordID)
	if err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	var req struct {
		Category      *types.ServiceCategory `json:"category,omitempty"`
		Title         *string                `json:"title,omitempty"`
		Description   *string                `json:"description,omitempty"`
		Mileage       *int64                 `json:"mileage,omitempty"`
		CostCents     *int64                 `json:"costCents,omitempty"`
		PartsReplaced []string               `json:"partsReplaced,omitempty"`
		PerformedAt   *time.Time             `json:"performedAt,omitempty"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.Category != nil {
		record.Category = *req.Category
	}
	if req.Title != nil {
		record.Title = *req.Title
	}
	if req.Description != nil {
		record.Description = req.Description
	}
	if req.Mileage != nil {
		record.Mileage = *req.Mileage
	}
	if req.CostCents != nil {
		record.CostCents = *req.CostCents
	}
	if req.PartsReplaced != nil {
		record.PartsReplaced = req.PartsReplaced
	}
	if req.PerformedAt != nil {
		record.PerformedAt = *req.PerformedAt
	}

	if err := s.maintenance.Update(r.Context(), record); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// handleDeleteMaintenanceRecord handles DELETE /api/maintenance/:id - Delete a record
func (s *Server) handleDeleteMaintenanceRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordID := vars["id"]

	if recordID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Record ID required", nil)
		return
	}

	if err := s.maintenance.Delete(r.Context(), recordID); err != nil {
		statusCode, code, message := mapStorageError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
