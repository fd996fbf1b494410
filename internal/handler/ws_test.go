package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestWSUpgradeGreetsFirstConnectionOnly(t *testing.T) {
	h := &WSHandler{}
	app := fiber.New()
	app.Get("/ws", h.Upgrade, func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprint(c.Locals("wsGreet")))
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{"first connection", "/ws", "true"},
		{"reconnect", "/ws?reconnect=1", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Connection", "Upgrade")
			req.Header.Set("Upgrade", "websocket")

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			assertStatus(t, resp, http.StatusOK)
			if got := readBody(t, resp); got != tt.want {
				t.Errorf("expected greet=%s, got %s", tt.want, got)
			}
		})
	}
}

func TestWSUpgradeRejectsPlainHTTP(t *testing.T) {
	h := &WSHandler{}
	app := fiber.New()
	app.Get("/ws", h.Upgrade)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusUpgradeRequired)
}
