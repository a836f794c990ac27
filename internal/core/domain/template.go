package domain

import "time"

// TemplateExercise is one movement slot in a reusable workout template.
type TemplateExercise struct {
	Name    string `json:"name" bson:"name"`
	Sets    int    `json:"sets" bson:"sets"`
	Reps    int    `json:"reps" bson:"reps"`
	RestSec int    `json:"rest_sec,omitempty" bson:"rest_sec,omitempty"`
	Notes   string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// WorkoutTemplate is a reusable workout blueprint. A template is normally
// tenant-owned through UserID; when IsSystem is set it is visible to every
// tenant read-only, regardless of owner.
type WorkoutTemplate struct {
	ID          string             `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	IsSystem    bool               `json:"is_system" bson:"is_system"`
	Exercises   []TemplateExercise `json:"exercises" bson:"exercises"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Editable reports whether the caller owning tenantID may mutate the
// template. System templates are read-only for everyone but admins.
func (t WorkoutTemplate) Editable(tenantID string, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return !t.IsSystem && t.UserID == tenantID
}
