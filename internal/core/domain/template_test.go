package domain

import "testing"

func TestWorkoutTemplate_Editable(t *testing.T) {
	tests := []struct {
		name     string
		tpl      WorkoutTemplate
		tenantID string
		isAdmin  bool
		want     bool
	}{
		{"owner edits own", WorkoutTemplate{UserID: "u1"}, "u1", false, true},
		{"stranger cannot edit", WorkoutTemplate{UserID: "u1"}, "u2", false, false},
		{"system read-only for owner", WorkoutTemplate{UserID: "u1", IsSystem: true}, "u1", false, false},
		{"admin edits system", WorkoutTemplate{IsSystem: true}, "a1", true, true},
		{"admin edits anyone's", WorkoutTemplate{UserID: "u1"}, "a1", true, true},
	}
	for _, tc := range tests {
		if got := tc.tpl.Editable(tc.tenantID, tc.isAdmin); got != tc.want {
			t.Fatalf("%s: Editable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
