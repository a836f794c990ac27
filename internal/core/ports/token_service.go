package ports

import (
	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// TokenType distinguishes the three token kinds issued by the service.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
	TokenTypeReset   TokenType = "reset"
)

// TokenClaims is the decoded, verified content of a token.
type TokenClaims struct {
	Subject   string
	Email     string
	Name      string
	Role      domain.Role
	TokenType TokenType
	ExpiresAt int64
}

// TokenService issues and validates signed, time-bounded tokens.
type TokenService interface {
	IssueAccess(user *domain.User) (string, error)
	IssueRefresh(user *domain.User) (string, error)
	IssuePasswordReset(userID string) (string, error)
	// Validate verifies signature and expiry and confirms the token_type
	// claim matches expected. Tokens without a token_type claim are accepted
	// as access tokens.
	Validate(token string, expected TokenType) (*TokenClaims, error)
	// ValidateExternal verifies a token issued by the external identity
	// provider, signed with its own shared secret.
	ValidateExternal(token string) (*TokenClaims, error)
}
