package models

import (
	"time"

	"github.com/car-assistant/internal/types"
)

// MaintenanceRecord represents a single service performed on a car
type MaintenanceRecord struct {
	ID          string                `json:"id" db:"id"`
	CarID       string                `json:"carId" db:"car_id"`
	UserID      string                `json:"userId" db:"user_id"`
	Category    types.ServiceCategory `json:"category" db:"category"`
	Title       string                `json:"title" db:"title"`
	Description *string               `json:"description,omitempty" db:"description"`
	Mileage     int64                 `json:"mileage" db:"mileage"`
	CostCents   int64                 `json:"costCents" db:"cost_cents"`
	// PartsReplaced is stored as a JSON text column via the list converter.
	PartsReplaced []string  `json:"partsReplaced" db:"parts_replaced"`
	PerformedAt   time.Time `json:"performedAt" db:"performed_at"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
