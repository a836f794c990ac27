package domain

import "time"

// Exercise is a single prescribed movement inside a workout. Exercises are
// embedded in their workout document, so a workout and its exercises are
// written atomically and reach their owner through the same chain:
// Exercise → Workout → Client → User.
type Exercise struct {
	Name     string  `json:"name" bson:"name"`
	Sets     int     `json:"sets" bson:"sets"`
	Reps     int     `json:"reps" bson:"reps"`
	WeightKg float64 `json:"weight_kg,omitempty" bson:"weight_kg,omitempty"`
	RestSec  int     `json:"rest_sec,omitempty" bson:"rest_sec,omitempty"`
	Notes    string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Workout is a training session assigned to a client. Ownership is reached
// through ClientID: tenant scoping joins through the clients collection
// rather than trusting any denormalized owner field on the workout itself.
type Workout struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	ClientID  string     `json:"client_id" bson:"client_id"`
	Title     string     `json:"title" bson:"title"`
	Date      time.Time  `json:"date" bson:"date"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Exercises []Exercise `json:"exercises" bson:"exercises"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}
