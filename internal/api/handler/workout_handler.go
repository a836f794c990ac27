package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

// WorkoutHandler exposes tenant-scoped CRUD for workouts.
type WorkoutHandler struct {
	workouts ports.WorkoutService
}

func NewWorkoutHandler(workouts ports.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

type exerciseRequest struct {
	Name     string  `json:"name" validate:"required,max=256"`
	Sets     int     `json:"sets" validate:"required,gte=1"`
	Reps     int     `json:"reps" validate:"required,gte=1"`
	WeightKg float64 `json:"weight_kg" validate:"gte=0"`
	RestSec  int     `json:"rest_sec" validate:"gte=0"`
	Notes    string  `json:"notes" validate:"max=1024"`
}

type workoutRequest struct {
	ClientID  string            `json:"client_id" validate:"required"`
	Title     string            `json:"title" validate:"required,max=256"`
	Date      time.Time         `json:"date"`
	Notes     string            `json:"notes" validate:"max=4096"`
	Exercises []exerciseRequest `json:"exercises" validate:"dive"`
}

type workoutListResponse struct {
	Workouts []*domain.Workout `json:"workouts"`
}

func (r workoutRequest) toInput() ports.WorkoutInput {
	exercises := make([]ports.ExerciseInput, 0, len(r.Exercises))
	for _, ex := range r.Exercises {
		exercises = append(exercises, ports.ExerciseInput{
			Name:     ex.Name,
			Sets:     ex.Sets,
			Reps:     ex.Reps,
			WeightKg: ex.WeightKg,
			RestSec:  ex.RestSec,
			Notes:    ex.Notes,
		})
	}
	return ports.WorkoutInput{
		ClientID:  r.ClientID,
		Title:     r.Title,
		Date:      r.Date,
		Notes:     r.Notes,
		Exercises: exercises,
	}
}

// Create stores a workout with its exercises under one of the caller's
// clients.
//
// @Summary      Create a workout
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      workoutRequest  true  "Workout with exercises"
// @Success      201   {object}  domain.Workout
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/workouts [post]
func (h *WorkoutHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req workoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	workout, err := h.workouts.Create(c.Request().Context(), identity, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, workout)
}

// Get returns one workout in the caller's scope.
//
// @Summary      Get a workout
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Workout ID"
// @Success      200  {object}  domain.Workout
// @Failure      404  {object}  map[string]string
// @Router       /v1/workouts/{id} [get]
func (h *WorkoutHandler) Get(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	workout, err := h.workouts.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workout)
}

// ListByClient returns a client's workouts in the caller's scope.
//
// @Summary      List a client's workouts
// @Tags         workouts
// @Produce      json
// @Security     BearerAuth
// @Param        clientID  path  string  true  "Client ID"
// @Success      200  {object}  workoutListResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/clients/{clientID}/workouts [get]
func (h *WorkoutHandler) ListByClient(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	workouts, err := h.workouts.ListByClient(c.Request().Context(), identity, c.Param("clientID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workoutListResponse{Workouts: workouts})
}

// Update replaces a workout and its exercises.
//
// @Summary      Update a workout
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Workout ID"
// @Param        body  body      workoutRequest  true  "Workout with exercises"
// @Success      200   {object}  domain.Workout
// @Failure      404   {object}  map[string]string
// @Router       /v1/workouts/{id} [put]
func (h *WorkoutHandler) Update(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req workoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	workout, err := h.workouts.Update(c.Request().Context(), identity, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workout)
}

// Delete removes a workout.
//
// @Summary      Delete a workout
// @Tags         workouts
// @Security     BearerAuth
// @Param        id  path  string  true  "Workout ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/workouts/{id} [delete]
func (h *WorkoutHandler) Delete(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.workouts.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
