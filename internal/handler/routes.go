package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cinesuggest/web/internal/config"
	"github.com/cinesuggest/web/internal/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Page    *PageHandler
	Results *ResultsHandler
	Grid    *GridHandler
	WS      *WSHandler
}

// RegisterRoutes mounts the page, its partials and the websocket on app
func RegisterRoutes(app *fiber.App, h *Handlers, sessions *middleware.SessionMiddleware, limiter *middleware.RateLimiter, limits config.RateLimitConfig) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	site := app.Group("", sessions.Handler())
	actions := limiter.ActionLimit(limits.ActionsPerMin)

	site.Get("/", h.Page.Index)
	site.Post("/quote", actions, h.Page.Quote)
	site.Post("/feedback", h.Page.Feedback)
	site.Get("/api/state", h.Page.State)

	site.Post("/moods/:id", actions, h.Results.Mood)
	site.Get("/search", limiter.SearchLimit(limits.SearchPerMin), h.Results.Search)
	site.Post("/random", actions, h.Results.Random)
	site.Post("/results/back", h.Results.Back)

	site.Post("/grid/:region/shuffle", h.Grid.Shuffle)
	site.Post("/grid/:region/filter", h.Grid.Filter)
	site.Post("/grid/:region/sort", h.Grid.Sort)
	site.Post("/cards/:region/:id/watchlist", h.Grid.Watchlist)
	site.Post("/cards/:region/:id/poster-error", h.Grid.PosterError)

	if h.WS != nil {
		site.Use("/ws", h.WS.Upgrade)
		site.Get("/ws", h.WS.Serve())
	}
}
