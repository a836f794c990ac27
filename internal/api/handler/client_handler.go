package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

// ClientHandler exposes tenant-scoped CRUD for coached clients.
type ClientHandler struct {
	clients ports.ClientService
}

func NewClientHandler(clients ports.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// clientRequest deliberately has no owner field: the owner always comes
// from the resolved identity, so a payload cannot create a client on behalf
// of another tenant.
type clientRequest struct {
	Name  string `json:"name" validate:"required,max=256"`
	Email string `json:"email" validate:"omitempty,email"`
	Goals string `json:"goals" validate:"max=2048"`
	Notes string `json:"notes" validate:"max=4096"`
}

type clientListResponse struct {
	Clients []*domain.Client `json:"clients"`
}

func (r clientRequest) toInput() ports.ClientInput {
	return ports.ClientInput{
		Name:  r.Name,
		Email: r.Email,
		Goals: r.Goals,
		Notes: r.Notes,
	}
}

// Create stores a new client owned by the caller.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client attributes"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clients.Create(c.Request().Context(), identity, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// Get returns one client in the caller's scope.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Client ID"
// @Success      200  {object}  domain.Client
// @Failure      404  {object}  map[string]string
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	client, err := h.clients.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// List returns the caller's clients; admins see everyone's.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientListResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	clients, err := h.clients.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientListResponse{Clients: clients})
}

// Update replaces a client's attributes.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client ID"
// @Param        body  body      clientRequest  true  "Client attributes"
// @Success      200   {object}  domain.Client
// @Failure      404   {object}  map[string]string
// @Router       /v1/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clients.Update(c.Request().Context(), identity, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Delete removes a client and its workouts.
//
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Param        id  path  string  true  "Client ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.clients.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
