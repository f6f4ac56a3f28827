package models

import (
	"time"

	"github.com/car-assistant/internal/types"
)

// AudioDiagnostic represents an uploaded engine/cabin sound recording and
// the analysis derived from it
type AudioDiagnostic struct {
	ID         string                 `json:"id" db:"id"`
	CarID      string                 `json:"carId" db:"car_id"`
	UserID     string                 `json:"userId" db:"user_id"`
	AudioURL   string                 `json:"audioUrl" db:"audio_url"`
	DurationMs int64                  `json:"durationMs" db:"duration_ms"`
	Status     types.DiagnosticStatus `json:"status" db:"status"`
	// Labels and Findings are stored as JSON text columns via the list and
	// map converters.
	Labels     []string               `json:"labels" db:"labels"`
	Findings   map[string]interface{} `json:"findings,omitempty" db:"findings"`
	RecordedAt time.Time              `json:"recordedAt" db:"recorded_at"`
	CreatedAt  time.Time              `json:"createdAt" db:"created_at"`
}

// VideoDiagnostic represents an uploaded video walkaround or dashboard
// recording and the analysis derived from it
type VideoDiagnostic struct {
	ID         string                 `json:"id" db:"id"`
	CarID      string                 `json:"carId" db:"car_id"`
	UserID     string                 `json:"userId" db:"user_id"`
	VideoURL   string                 `json:"videoUrl" db:"video_url"`
	DurationMs int64                  `json:"durationMs" db:"duration_ms"`
	FrameCount int64                  `json:"frameCount" db:"frame_count"`
	Status     types.DiagnosticStatus `json:"status" db:"status"`
	Labels     []string               `json:"labels" db:"labels"`
	Findings   map[string]interface{} `json:"findings,omitempty" db:"findings"`
	RecordedAt time.Time              `json:"recordedAt" db:"recorded_at"`
	CreatedAt  time.Time              `json:"createdAt" db:"created_at"`
}
