package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/trainmetrics/coaching-api/internal/api/middleware"
	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// callerIdentity extracts the identity injected by the Authenticate
// middleware and fast-fails before any service call: a handler behind the
// middleware must always see a resolved identity with a concrete user id.
func callerIdentity(c echo.Context) (domain.CallerIdentity, error) {
	identity, err := middleware.Identity(c)
	if err != nil {
		return domain.CallerIdentity{}, err
	}
	if identity.UserID == "" {
		return domain.CallerIdentity{}, domain.ErrNoCredentials
	}
	return identity, nil
}
