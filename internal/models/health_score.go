package models

import (
	"time"

	"github.com/car-assistant/internal/types"
)

// HealthScore represents an AI-derived health score for a car subsystem.
// Scores are append-only; the newest row per car and category is the
// current score.
type HealthScore struct {
	ID       string              `json:"id" db:"id"`
	CarID    string              `json:"carId" db:"car_id"`
	Category types.ScoreCategory `json:"category" db:"category"`
	// Score is in the range [0, 100].
	Score float64 `json:"score" db:"score"`
	// Factors maps factor names to model outputs and is stored as a JSON
	// text column via the map converter.
	Factors      map[string]interface{} `json:"factors,omitempty" db:"factors"`
	ModelVersion string                 `json:"modelVersion" db:"model_version"`
	CreatedAt    time.Time              `json:"createdAt" db:"created_at"`
}
