package types

import (
	"errors"
	"testing"
)

func TestServiceError(t *testing.T) {
	t.Run("Error returns the message", func(t *testing.T) {
		err := &ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: "invalid score category: bogus",
		}
		if err.Error() != "invalid score category: bogus" {
			t.Errorf("Error() = %v, want the message", err.Error())
		}
	})

	t.Run("usable as a plain error", func(t *testing.T) {
		var err error = &ServiceError{Code: "NOT_FOUND", Message: "reminder not found"}

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			t.Fatal("errors.As() failed to recover *ServiceError")
		}
		if svcErr.Code != "NOT_FOUND" {
			t.Errorf("Code = %v, want NOT_FOUND", svcErr.Code)
		}
	})

	t.Run("details survive", func(t *testing.T) {
		err := &ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: "score out of range",
			Details: map[string]interface{}{"score": 150.0},
		}
		if err.Details["score"] != 150.0 {
			t.Errorf("Details = %v, want score 150", err.Details)
		}
	})
}
