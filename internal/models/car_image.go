package models

import "time"

// CarImage represents a photo of a car stored by the app
type CarImage struct {
	ID       string  `json:"id" db:"id"`
	CarID    string  `json:"carId" db:"car_id"`
	UserID   string  `json:"userId" db:"user_id"`
	ImageURL string  `json:"imageUrl" db:"image_url"`
	Caption  *string `json:"caption,omitempty" db:"caption"`
	// Tags is stored as a JSON text column via the list converter.
	Tags      []string  `json:"tags" db:"tags"`
	TakenAt   time.Time `json:"takenAt" db:"taken_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
