package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/view"
)

// ErrorResponse represents a request that could not be routed to a search
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleSearch runs a full search and returns the rendered view state.
//
//	curl "http://localhost:8080/api/search?q=Paris"
func (r *routes) handleSearch(c *fiber.Ctx) error {
	query := c.Query("q")

	var state view.State
	state.SetClock(r.now())

	res, err := r.service.Search(c.UserContext(), query)
	if err != nil {
		state.SetError(models.UserMessage(err), models.PanelNone)
		return r.fail(c, err, state)
	}

	state.Apply(res)
	return c.JSON(state)
}

// handlePanelSearch searches for a single card, as the per-card layout does.
//
//	curl "http://localhost:8080/api/panels/marine?q=Lisbon"
func (r *routes) handlePanelSearch(c *fiber.Ctx) error {
	panel := models.ParsePanel(c.Params("panel"))
	if panel == models.PanelNone {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Unknown panel: must be one of current, historical, marine",
		})
	}
	query := c.Query("q")

	var state view.State
	state.SetClock(r.now())
	state.ActivePanel = panel

	res, err := r.service.SearchPanel(c.UserContext(), query, panel)
	if err != nil {
		state.SetError(models.UserMessage(err), panel)
		return r.fail(c, err, state)
	}

	state.ApplyPanel(res, panel)
	return c.JSON(state)
}

func (r *routes) fail(c *fiber.Ctx, err error, state view.State) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		r.l.Error(err, map[string]any{
			"path":   c.Path(),
			"query":  c.Query("q"),
			"status": status,
		})
	}
	return c.Status(status).JSON(state)
}

func statusFor(err error) int {
	switch models.KindOf(err) {
	case models.KindValidation:
		return fiber.StatusBadRequest
	case models.KindNotFound:
		return fiber.StatusNotFound
	case models.KindLookupFailed, models.KindCurrentUnavailable, models.KindHistoricalUnavailable:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
