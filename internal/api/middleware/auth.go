package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/api/metrics"
	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

// APIKeyHeader carries the opaque key credential.
const APIKeyHeader = "X-API-Key"

// identityContextKey is where the resolved identity lives in echo's context.
const identityContextKey = "caller_identity"

// Authenticate resolves the request's credentials into a CallerIdentity and
// attaches it to the context. Both schemes are optional individually; at
// least one must succeed.
func Authenticate(resolver ports.IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			bearer := bearerToken(c.Request().Header.Get("Authorization"))
			apiKey := c.Request().Header.Get(APIKeyHeader)

			identity, err := resolver.Resolve(c.Request().Context(), bearer, apiKey)
			if err != nil {
				method := "none"
				if bearer != "" {
					method = string(domain.AuthMethodBearer)
				} else if apiKey != "" {
					method = string(domain.AuthMethodAPIKey)
				}
				metrics.AuthAttemptsTotal.WithLabelValues(method, resultLabel(err)).Inc()
				metrics.AuthResolutionDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
				return authError(err, log, c)
			}

			metrics.AuthAttemptsTotal.WithLabelValues(string(identity.Method), "success").Inc()
			metrics.AuthResolutionDuration.WithLabelValues(string(identity.Method)).Observe(time.Since(start).Seconds())

			WithIdentity(c, *identity)
			return next(c)
		}
	}
}

// WithIdentity attaches a resolved identity to the request context.
func WithIdentity(c echo.Context, identity domain.CallerIdentity) {
	c.Set(identityContextKey, identity)
}

// Identity extracts the resolved caller identity injected by Authenticate.
func Identity(c echo.Context) (domain.CallerIdentity, error) {
	identity, ok := c.Get(identityContextKey).(domain.CallerIdentity)
	if !ok {
		return domain.CallerIdentity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// authError maps resolution failures to the boundary. Taxonomy errors pass
// through unchanged; anything unexpected is logged (never the credential)
// and surfaced as a plain 401. The no-credential case advertises both
// acceptable schemes.
func authError(err error, log zerolog.Logger, c echo.Context) error {
	switch {
	case errors.Is(err, domain.ErrNoCredentials):
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="api", X-API-Key`)
		return err
	case errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenTypeMismatch),
		errors.Is(err, domain.ErrAPIKeyInvalid),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNoRoleAssigned),
		errors.Is(err, domain.ErrStoreUnavailable):
		return err
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("identity resolution failed")
	return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoRoleAssigned):
		return "forbidden"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "error"
	default:
		return "unauthorized"
	}
}
