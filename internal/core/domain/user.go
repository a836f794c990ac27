package domain

import "time"

// Role determines the permission set a user operates with.
type Role string

const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"

	// RolePlaceholder is emitted by some identity providers for sessions that
	// are authenticated but have no application role assigned yet. It is
	// treated as "no role": the caller must be provisioned by an admin before
	// reaching any tenant data.
	RolePlaceholder Role = "authenticated"
)

// Valid reports whether r is one of the assignable application roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleTrainer || r == RoleAdmin
}

// User models a tenant/principal. The user's ID doubles as the tenant ID:
// every tenant-owned row is reachable from exactly one user.
type User struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Email string `json:"email" bson:"email"`
	Name  string `json:"name" bson:"name"`
	// PasswordHash is empty for accounts whose credential is owned by an
	// external identity provider.
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	Role         Role      `json:"role" bson:"role"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
