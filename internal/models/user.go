// Package models provides data models for the car assistant system.
package models

import "time"

// User represents a user profile document in the remote profile store.
// The ID doubles as the document key; every read and write round-trips to
// the remote store, there is no local copy.
type User struct {
	ID          string `bson:"_id" json:"id"`
	DisplayName string `bson:"display_name,omitempty" json:"displayName,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	PhotoURL    string `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	Online      bool   `bson:"is_online" json:"isOnline"`
	// LastSeen is an epoch timestamp in milliseconds, stamped by
	// SetOnlineStatus.
	LastSeen  int64     `bson:"last_seen" json:"lastSeen"`
	PushToken string    `bson:"push_token,omitempty" json:"pushToken,omitempty"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
