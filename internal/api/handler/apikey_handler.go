package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

// APIKeyHandler exposes API key lifecycle endpoints for the authenticated
// owner.
type APIKeyHandler struct {
	keys ports.APIKeyService
}

func NewAPIKeyHandler(keys ports.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{keys: keys}
}

type createAPIKeyRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=512"`
	ClientID    string `json:"client_id"`
	TTLDays     int    `json:"ttl_days" validate:"gte=0"`
}

type apiKeyListResponse struct {
	Keys []*domain.APIKey `json:"keys"`
}

// Create mints a new API key for the caller. The full key value appears in
// this response only; listings return it masked.
//
// @Summary      Create an API key
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAPIKeyRequest  true  "Key attributes"
// @Success      201   {object}  domain.APIKey
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/keys [post]
func (h *APIKeyHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	key, err := h.keys.Create(c.Request().Context(), ports.CreateAPIKeyInput{
		OwnerID:     identity.UserID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		TTLDays:     req.TTLDays,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, key)
}

// List returns the caller's keys with masked values.
//
// @Summary      List API keys
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiKeyListResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/keys [get]
func (h *APIKeyHandler) List(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	keys, err := h.keys.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiKeyListResponse{Keys: keys})
}

// Revoke deletes one of the caller's keys. Another tenant's key id yields
// 404, never 403.
//
// @Summary      Revoke an API key
// @Tags         api-keys
// @Security     BearerAuth
// @Param        id  path  string  true  "Key ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/keys/{id} [delete]
func (h *APIKeyHandler) Revoke(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.keys.Revoke(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
