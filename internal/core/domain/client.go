package domain

import "time"

// Client is a coached person belonging to exactly one trainer (the tenant).
// UserID is the direct owner column: client lookups filter on it with a
// plain equality predicate.
type Client struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Goals     string    `json:"goals,omitempty" bson:"goals,omitempty"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
