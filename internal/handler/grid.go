package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cinesuggest/web/internal/middleware"
	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/internal/service"
	"github.com/cinesuggest/web/internal/session"
	"github.com/cinesuggest/web/internal/view"
	"github.com/cinesuggest/web/pkg/response"
)

type GridHandler struct {
	controller *service.Controller
	renderer   *view.Renderer
	validator  *validator.Validate
}

func NewGridHandler(ctrl *service.Controller, r *view.Renderer, v *validator.Validate) *GridHandler {
	return &GridHandler{
		controller: ctrl,
		renderer:   r,
		validator:  v,
	}
}

// Shuffle handles POST /grid/:region/shuffle
func (h *GridHandler) Shuffle(c *fiber.Ctx) error {
	path, ok, err := h.gridPath(c)
	if !ok {
		return err
	}

	st, err := h.controller.Shuffle(c.UserContext(), middleware.GetSessionID(c), path.Region)
	if err != nil {
		return serviceError(c, err)
	}
	return h.render(c, st, path.Region)
}

// Filter handles POST /grid/:region/filter
func (h *GridHandler) Filter(c *fiber.Ctx) error {
	path, ok, err := h.gridPath(c)
	if !ok {
		return err
	}

	var req model.FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	st, err := h.controller.Filter(c.UserContext(), middleware.GetSessionID(c), path.Region, req.Filter)
	if err != nil {
		return serviceError(c, err)
	}
	return h.render(c, st, path.Region)
}

// Sort handles POST /grid/:region/sort
func (h *GridHandler) Sort(c *fiber.Ctx) error {
	path, ok, err := h.gridPath(c)
	if !ok {
		return err
	}

	var req model.SortRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	st, err := h.controller.Sort(c.UserContext(), middleware.GetSessionID(c), path.Region, req.Sort)
	if err != nil {
		return serviceError(c, err)
	}
	return h.render(c, st, path.Region)
}

// Watchlist handles POST /cards/:region/:id/watchlist
func (h *GridHandler) Watchlist(c *fiber.Ctx) error {
	path, ok, err := h.cardPath(c)
	if !ok {
		return err
	}

	if err := h.controller.AddToWatchlist(c.UserContext(), middleware.GetSessionID(c), path.Region, path.ID); err != nil {
		return serviceError(c, err)
	}
	return response.NoContent(c)
}

// PosterError handles POST /cards/:region/:id/poster-error
func (h *GridHandler) PosterError(c *fiber.Ctx) error {
	path, ok, err := h.cardPath(c)
	if !ok {
		return err
	}

	if err := h.controller.PosterFailed(c.UserContext(), middleware.GetSessionID(c), path.Region, path.ID); err != nil {
		return serviceError(c, err)
	}
	return response.NoContent(c)
}

// gridPath parses the region. When ok is false the error response has
// been written and err is what the handler returns.
func (h *GridHandler) gridPath(c *fiber.Ctx) (path *model.GridPath, ok bool, err error) {
	path = &model.GridPath{}
	if err := c.ParamsParser(path); err != nil {
		return nil, false, response.ValidationError(c, "Invalid region", nil)
	}
	if err := h.validator.Struct(path); err != nil {
		return nil, false, response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}
	return path, true, nil
}

func (h *GridHandler) cardPath(c *fiber.Ctx) (path *model.CardPath, ok bool, err error) {
	path = &model.CardPath{}
	if err := c.ParamsParser(path); err != nil {
		return nil, false, response.ValidationError(c, "Invalid card", nil)
	}
	if err := h.validator.Struct(path); err != nil {
		return nil, false, response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}
	return path, true, nil
}

func (h *GridHandler) render(c *fiber.Ctx, st *session.State, region model.Region) error {
	data, err := service.GridView(st, region)
	if err != nil {
		return serviceError(c, err)
	}
	data.OOB = true
	body, err := h.renderer.Render(view.TemplateGridPartial, data)
	if err != nil {
		return serviceError(c, err)
	}
	return response.HTML(c, body)
}
