package models

import (
	"time"

	"github.com/car-assistant/internal/types"
)

// ActivityLog represents one append-only entry in a user's activity history
type ActivityLog struct {
	ID     string               `json:"id" db:"id"`
	UserID string               `json:"userId" db:"user_id"`
	CarID  *string              `json:"carId,omitempty" db:"car_id"`
	Action types.ActivityAction `json:"action" db:"action"`
	// Details is stored as a JSON text column via the map converter.
	Details   map[string]interface{} `json:"details,omitempty" db:"details"`
	CreatedAt time.Time              `json:"createdAt" db:"created_at"`
}
