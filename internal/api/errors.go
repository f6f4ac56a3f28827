package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/car-assistant/internal/errors"
	"github.com/car-assistant/internal/logging"
	"github.com/car-assistant/internal/types"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error types.ServiceError `json:"error"`
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error: types.ServiceError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	json.NewEncoder(w).Encode(response)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// parseJSONBody parses JSON request body.
func parseJSONBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// Common error codes
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// mapStorageError maps storage errors to HTTP status codes.
// Repositories report missing rows as plain "not found" errors, so those are
// matched on the message; everything else goes through the categorizer.
func mapStorageError(err error) (int, string, string) {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	}

	catErr := errors.Categorize(err)
	if errors.IsSystemError(catErr) {
		logging.GetGlobalLogger().WithError(err).Error("Storage operation failed")
		return errors.GetHTTPStatusCode(catErr), ErrCodeInternalError, "An internal error occurred"
	}

	return errors.GetHTTPStatusCode(catErr), ErrCodeInvalidInput, catErr.Message
}
