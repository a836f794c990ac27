package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

// TemplateHandler exposes CRUD for workout templates, including shared
// system templates.
type TemplateHandler struct {
	templates ports.TemplateService
}

func NewTemplateHandler(templates ports.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

type templateExerciseRequest struct {
	Name    string `json:"name" validate:"required,max=256"`
	Sets    int    `json:"sets" validate:"required,gte=1"`
	Reps    int    `json:"reps" validate:"required,gte=1"`
	RestSec int    `json:"rest_sec" validate:"gte=0"`
	Notes   string `json:"notes" validate:"max=1024"`
}

type templateRequest struct {
	Name        string                    `json:"name" validate:"required,max=256"`
	Description string                    `json:"description" validate:"max=2048"`
	IsSystem    bool                      `json:"is_system"`
	Exercises   []templateExerciseRequest `json:"exercises" validate:"dive"`
}

type templateListResponse struct {
	Templates []*domain.WorkoutTemplate `json:"templates"`
}

func (r templateRequest) toInput() ports.TemplateInput {
	exercises := make([]ports.TemplateExerciseInput, 0, len(r.Exercises))
	for _, ex := range r.Exercises {
		exercises = append(exercises, ports.TemplateExerciseInput{
			Name:    ex.Name,
			Sets:    ex.Sets,
			Reps:    ex.Reps,
			RestSec: ex.RestSec,
			Notes:   ex.Notes,
		})
	}
	return ports.TemplateInput{
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Exercises:   exercises,
	}
}

// Create stores a template. is_system is honoured for admins only.
//
// @Summary      Create a workout template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      templateRequest  true  "Template attributes"
// @Success      201   {object}  domain.WorkoutTemplate
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tpl, err := h.templates.Create(c.Request().Context(), identity, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tpl)
}

// Get returns one template visible to the caller.
//
// @Summary      Get a workout template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Template ID"
// @Success      200  {object}  domain.WorkoutTemplate
// @Failure      404  {object}  map[string]string
// @Router       /v1/templates/{id} [get]
func (h *TemplateHandler) Get(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	tpl, err := h.templates.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tpl)
}

// List returns the caller's templates plus all system templates.
//
// @Summary      List workout templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  templateListResponse
// @Router       /v1/templates [get]
func (h *TemplateHandler) List(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	templates, err := h.templates.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templateListResponse{Templates: templates})
}

// Update replaces a template's attributes. System templates are read-only
// for non-admins.
//
// @Summary      Update a workout template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Template ID"
// @Param        body  body      templateRequest  true  "Template attributes"
// @Success      200   {object}  domain.WorkoutTemplate
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/templates/{id} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tpl, err := h.templates.Update(c.Request().Context(), identity, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tpl)
}

// Delete removes a template.
//
// @Summary      Delete a workout template
// @Tags         templates
// @Security     BearerAuth
// @Param        id  path  string  true  "Template ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/templates/{id} [delete]
func (h *TemplateHandler) Delete(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.templates.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
