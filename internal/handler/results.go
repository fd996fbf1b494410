package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cinesuggest/web/internal/middleware"
	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/internal/service"
	"github.com/cinesuggest/web/internal/session"
	"github.com/cinesuggest/web/internal/view"
	"github.com/cinesuggest/web/pkg/response"
)

type ResultsHandler struct {
	controller *service.Controller
	renderer   *view.Renderer
	validator  *validator.Validate
}

func NewResultsHandler(ctrl *service.Controller, r *view.Renderer, v *validator.Validate) *ResultsHandler {
	return &ResultsHandler{
		controller: ctrl,
		renderer:   r,
		validator:  v,
	}
}

// Mood handles POST /moods/:id
func (h *ResultsHandler) Mood(c *fiber.Ctx) error {
	var req model.MoodPath
	if err := c.ParamsParser(&req); err != nil {
		return response.ValidationError(c, "Invalid mood", nil)
	}
	req.ID = model.NormalizeMoodID(req.ID)

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	st, err := h.controller.SelectMood(c.UserContext(), middleware.GetSessionID(c), req.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return h.render(c, st)
}

// Search handles GET /search?q=
func (h *ResultsHandler) Search(c *fiber.Ctx) error {
	var req model.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return response.ValidationError(c, "Invalid query", nil)
	}
	req.Query = strings.TrimSpace(req.Query)

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	st, err := h.controller.Search(c.UserContext(), middleware.GetSessionID(c), req.Query)
	if err != nil {
		return serviceError(c, err)
	}
	return h.render(c, st)
}

// Random handles POST /random
func (h *ResultsHandler) Random(c *fiber.Ctx) error {
	st, err := h.controller.RandomPick(c.UserContext(), middleware.GetSessionID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return h.render(c, st)
}

// Back handles POST /results/back
func (h *ResultsHandler) Back(c *fiber.Ctx) error {
	st, err := h.controller.Back(c.UserContext(), middleware.GetSessionID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return h.render(c, st)
}

func (h *ResultsHandler) render(c *fiber.Ctx, st *session.State) error {
	data := service.ResultsView(st)
	data.OOB = true
	body, err := h.renderer.Render(view.TemplateResultsPartial, data)
	if err != nil {
		return serviceError(c, err)
	}
	return response.HTML(c, body)
}
