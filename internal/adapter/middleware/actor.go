package middleware

import (
	"net/http"
	"strings"

	"leasehub-backend/internal/domain/actor"
	"leasehub-backend/internal/logger"
	ids "leasehub-backend/pkg/id"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Actor copies the Ax-Actor-Id / Ax-Actor-Name headers into the request
// context. A request without Ax-Actor-Id passes through unattributed.
func Actor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := strings.TrimSpace(req.Header.Get(HeaderActorID))
			if id == "" {
				return next(c)
			}
			if !ids.IsID32(id) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid Ax-Actor-Id"})
			}
			who, _ := actor.Actor{ID: id, DisplayName: req.Header.Get(HeaderActorName)}.Resolve()

			ctx := actor.WithActor(req.Context(), who)
			ctx = logger.WithFields(ctx, zap.String("actor_id", who.ID))
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
