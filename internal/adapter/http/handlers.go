package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether the database answers.
type Pinger func(ctx context.Context) error

type Handler struct{ ping Pinger }

func NewHandler(ping Pinger) *Handler { return &Handler{ping: ping} }

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.ping == nil {
		return c.JSON(http.StatusOK, body)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.ping(ctx); err != nil {
		body["status"] = "degraded"
		body["database"] = "down"
		return c.JSON(http.StatusServiceUnavailable, body)
	}
	body["database"] = "up"
	return c.JSON(http.StatusOK, body)
}
