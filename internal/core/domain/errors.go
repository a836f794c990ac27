package domain

import "errors"

// Authentication failures. All of these map to 401 at the HTTP boundary.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenTypeMismatch  = errors.New("unexpected token type")
	ErrAPIKeyInvalid      = errors.New("invalid api key")
	ErrNoCredentials      = errors.New("no credentials provided")
)

// Authorization failures, mapped to 403.
var (
	ErrForbidden = errors.New("access forbidden")
	// ErrNoRoleAssigned covers authenticated sessions carrying only the
	// provider placeholder role. A bare session grants nothing.
	ErrNoRoleAssigned = errors.New("no role assigned, contact an administrator")
)

// Not-found sentinels. A row outside the caller's tenant is reported with the
// same sentinel as an absent row so that existence cannot be probed.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAPIKeyNotFound   = errors.New("api key not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrTemplateNotFound = errors.New("template not found")
)

var (
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("credential store unavailable")
)
