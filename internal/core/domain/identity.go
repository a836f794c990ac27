package domain

// AuthMethod records which credential scheme produced an identity.
type AuthMethod string

const (
	AuthMethodBearer AuthMethod = "bearer"
	AuthMethodAPIKey AuthMethod = "api_key"
)

// Permission is a named capability granted through a role.
type Permission string

const (
	PermReadOwnData    Permission = "data:read"
	PermWriteClients   Permission = "clients:write"
	PermWriteWorkouts  Permission = "workouts:write"
	PermWriteTemplates Permission = "templates:write"
	PermReadAllData    Permission = "data:read_all"
	PermManageUsers    Permission = "users:manage"
)

// rolePermissions is the fixed role → permission mapping. Admin is a strict
// superset of trainer, trainer of user.
var rolePermissions = map[Role][]Permission{
	RoleUser: {PermReadOwnData},
	RoleTrainer: {
		PermReadOwnData,
		PermWriteClients,
		PermWriteWorkouts,
		PermWriteTemplates,
	},
	RoleAdmin: {
		PermReadOwnData,
		PermWriteClients,
		PermWriteWorkouts,
		PermWriteTemplates,
		PermReadAllData,
		PermManageUsers,
	},
}

// PermissionsForRole returns the permission set granted by role. Unknown
// roles (including the provider placeholder) grant nothing.
func PermissionsForRole(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// CallerIdentity is the per-request result of credential resolution. It is
// built fresh for every request and never cached or shared.
type CallerIdentity struct {
	UserID      string       `json:"user_id"`
	Email       string       `json:"email,omitempty"`
	Name        string       `json:"name,omitempty"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
	IsAdmin     bool         `json:"is_admin"`
	Method      AuthMethod   `json:"auth_method"`
}

// NewCallerIdentity builds an identity for the given user attributes,
// computing the permission set and admin flag from the role.
func NewCallerIdentity(userID, email, name string, role Role, method AuthMethod) CallerIdentity {
	return CallerIdentity{
		UserID:      userID,
		Email:       email,
		Name:        name,
		Role:        role,
		Permissions: PermissionsForRole(role),
		IsAdmin:     role == RoleAdmin,
		Method:      method,
	}
}

// HasPermission reports whether p was granted to this identity.
func (ci CallerIdentity) HasPermission(p Permission) bool {
	for _, granted := range ci.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// TenantFilter returns the owner filter repositories must apply for this
// caller: the caller's own user ID, or empty for admins. The empty value is
// the explicit admin bypass — it is decided here, once, at identity level,
// never inferred inside a repository.
func (ci CallerIdentity) TenantFilter() string {
	if ci.IsAdmin {
		return ""
	}
	return ci.UserID
}
