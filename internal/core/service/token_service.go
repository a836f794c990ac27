package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

const (
	// clockSkewLeeway tolerates small clock drift between the issuer and
	// this process when checking issued-at. Expiry is checked strictly: a
	// token whose exp equals "now" is already expired.
	clockSkewLeeway = 30 * time.Second

	minAccessTTL = 30 * time.Minute
	maxAccessTTL = 24 * time.Hour

	refreshTTL = 30 * 24 * time.Hour
	resetTTL   = 15 * time.Minute
)

// TokenService issues and validates the three token kinds with one shared
// signing secret, each distinguished by its token_type claim. A second
// secret verifies tokens minted by the external identity provider.
type TokenService struct {
	method         jwt.SigningMethod
	secret         []byte
	externalSecret []byte
	accessTTL      time.Duration
	diagnostics    bool
	logger         zerolog.Logger
}

// TokenServiceOptions configures NewTokenService.
type TokenServiceOptions struct {
	// Algorithm is the HMAC signing algorithm name (HS256, HS384, HS512).
	// Defaults to HS256 when empty or unrecognised.
	Algorithm      string
	Secret         string
	ExternalSecret string
	AccessTTL      time.Duration
	// Diagnostics enables unverified decoding of rejected tokens for debug
	// logging. It must stay off in production; it never grants access
	// either way.
	Diagnostics bool
}

func NewTokenService(opts TokenServiceOptions, logger zerolog.Logger) *TokenService {
	method := jwt.GetSigningMethod(opts.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}

	ttl := opts.AccessTTL
	if ttl < minAccessTTL {
		ttl = minAccessTTL
	}
	if ttl > maxAccessTTL {
		ttl = maxAccessTTL
	}

	return &TokenService{
		method:         method,
		secret:         []byte(opts.Secret),
		externalSecret: []byte(opts.ExternalSecret),
		accessTTL:      ttl,
		diagnostics:    opts.Diagnostics,
		logger:         logger,
	}
}

// IssueAccess returns a signed access token for the user. The token_type
// claim is omitted: plain access tokens are the backward-compatible default.
func (s *TokenService) IssueAccess(user *domain.User) (string, error) {
	now := time.Now().UTC()
	return s.sign(jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	})
}

// IssueRefresh returns a signed refresh token valid for 30 days.
func (s *TokenService) IssueRefresh(user *domain.User) (string, error) {
	now := time.Now().UTC()
	return s.sign(jwt.MapClaims{
		"sub":        user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       string(user.Role),
		"token_type": string(ports.TokenTypeRefresh),
		"iat":        now.Unix(),
		"exp":        now.Add(refreshTTL).Unix(),
	})
}

// IssuePasswordReset returns a minimal single-purpose token valid for
// 15 minutes.
func (s *TokenService) IssuePasswordReset(userID string) (string, error) {
	now := time.Now().UTC()
	return s.sign(jwt.MapClaims{
		"sub":        userID,
		"token_type": string(ports.TokenTypeReset),
		"iat":        now.Unix(),
		"exp":        now.Add(resetTTL).Unix(),
	})
}

func (s *TokenService) sign(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Validate verifies signature and expiry against the internal secret and
// confirms the token_type claim matches expected. A token without the claim
// is accepted as an access token.
func (s *TokenService) Validate(token string, expected ports.TokenType) (*ports.TokenClaims, error) {
	return s.validateWithSecret(token, s.secret, expected)
}

// ValidateExternal verifies a token signed by the external identity
// provider's shared secret. Only access semantics apply to external tokens.
func (s *TokenService) ValidateExternal(token string) (*ports.TokenClaims, error) {
	if len(s.externalSecret) == 0 {
		return nil, domain.ErrTokenInvalid
	}
	return s.validateWithSecret(token, s.externalSecret, ports.TokenTypeAccess)
}

func (s *TokenService) validateWithSecret(token string, secret []byte, expected ports.TokenType) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		s.logRejected(token, err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	// The library does not check issued-at; tolerate clockSkewLeeway of
	// drift from an issuer whose clock runs slightly ahead.
	if iat, ok := numericClaim(claims, "iat"); ok {
		if time.Unix(iat, 0).After(time.Now().Add(clockSkewLeeway)) {
			return nil, domain.ErrTokenInvalid
		}
	}

	tokenType := ports.TokenTypeAccess
	if raw, ok := claims["token_type"].(string); ok && raw != "" {
		tokenType = ports.TokenType(raw)
	}
	if tokenType != expected {
		return nil, domain.ErrTokenTypeMismatch
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrTokenInvalid
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	exp, _ := numericClaim(claims, "exp")

	return &ports.TokenClaims{
		Subject:   sub,
		Email:     email,
		Name:      name,
		Role:      roleFromClaims(claims),
		TokenType: tokenType,
		ExpiresAt: exp,
	}, nil
}

// roleFromClaims extracts the application role. Some identity providers nest
// it under a custom-claims object, which takes precedence over the top-level
// claim. The provider placeholder role counts as absent.
func roleFromClaims(claims jwt.MapClaims) domain.Role {
	role := ""
	if nested, ok := claims["custom_claims"].(map[string]interface{}); ok {
		role, _ = nested["role"].(string)
	}
	if role == "" {
		role, _ = claims["role"].(string)
	}
	if domain.Role(role) == domain.RolePlaceholder {
		return ""
	}
	return domain.Role(role)
}

// logRejected logs the claims of an unverifiable token for diagnostics.
// Gated off outside development; the decoded claims are never trusted.
func (s *TokenService) logRejected(token string, cause error) {
	if !s.diagnostics {
		return
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	sub, _ := claims["sub"].(string)
	s.logger.Debug().
		Err(cause).
		Str("sub", sub).
		Msg("token rejected")
}

func numericClaim(claims jwt.MapClaims, key string) (int64, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}
