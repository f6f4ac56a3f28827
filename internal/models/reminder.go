package models

import "time"

// Reminder represents a scheduled maintenance reminder for a car
type Reminder struct {
	ID     string    `json:"id" db:"id"`
	UserID string    `json:"userId" db:"user_id"`
	CarID  string    `json:"carId" db:"car_id"`
	Title  string    `json:"title" db:"title"`
	Notes  *string   `json:"notes,omitempty" db:"notes"`
	DueAt  time.Time `json:"dueAt" db:"due_at"`
	// Channels lists the delivery channels the app should use ("push",
	// "email", ...) and is stored as a JSON text column via the list
	// converter. Delivery itself is outside this service.
	Channels  []string  `json:"channels" db:"channels"`
	Done      bool      `json:"done" db:"done"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
