package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cinesuggest/web/internal/middleware"
	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/internal/service"
	"github.com/cinesuggest/web/internal/view"
	"github.com/cinesuggest/web/pkg/response"
)

type PageHandler struct {
	controller *service.Controller
	renderer   *view.Renderer
	validator  *validator.Validate
}

func NewPageHandler(ctrl *service.Controller, r *view.Renderer, v *validator.Validate) *PageHandler {
	return &PageHandler{
		controller: ctrl,
		renderer:   r,
		validator:  v,
	}
}

// Index handles GET /
func (h *PageHandler) Index(c *fiber.Ctx) error {
	st, err := h.controller.Open(c.UserContext(), middleware.GetSessionID(c))
	if err != nil {
		return serviceError(c, err)
	}

	body, err := h.renderer.Render(view.TemplatePage, h.controller.Page(st))
	if err != nil {
		return serviceError(c, err)
	}
	return response.HTML(c, body)
}

// Quote handles POST /quote
func (h *PageHandler) Quote(c *fiber.Ctx) error {
	var req model.QuoteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.ValidationError(c, "Invalid request body", nil)
		}
	}

	st, err := h.controller.RefreshQuote(c.UserContext(), middleware.GetSessionID(c), req.Announce)
	if err != nil {
		return serviceError(c, err)
	}

	body, err := h.renderer.Render(view.TemplateQuote, st.Quote)
	if err != nil {
		return serviceError(c, err)
	}
	return response.HTML(c, body)
}

// Feedback handles POST /feedback
func (h *PageHandler) Feedback(c *fiber.Ctx) error {
	h.controller.Feedback(c.UserContext(), middleware.GetSessionID(c))
	return response.NoContent(c)
}

// State handles GET /api/state
func (h *PageHandler) State(c *fiber.Ctx) error {
	st, err := h.controller.State(c.UserContext(), middleware.GetSessionID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.OK(c, st)
}
