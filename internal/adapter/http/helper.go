package http

import (
	"net/http"
	"time"

	"leasehub-backend/internal/domain/actor"
	domainLease "leasehub-backend/internal/domain/lease"
	"leasehub-backend/internal/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// bindValid binds the body into req and validates it, writing the 400/422
// response itself. ok is false when the handler must stop.
func bindValid(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Kind:    "validation",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(c echo.Context, err error) error {
	kind := domainLease.Kind(err)
	switch kind {
	case "not_found":
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: kind})
	case "validation":
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: kind})
	case "invalid_transition", "unit_occupied":
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Kind: kind})
	case "conflict":
		c.Response().Header().Set(echo.HeaderRetryAfter, "1")
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "lease was modified concurrently, retry", Kind: kind})
	case "storage":
		c.Response().Header().Set(echo.HeaderRetryAfter, "1")
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, retry later", Kind: kind})
	}
	logger.ErrorCtx(c.Request().Context(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func actorOf(c echo.Context) actor.Actor {
	who, _ := actor.FromContext(c.Request().Context())
	return who
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseDate(s)
	return &t
}

func money(f float64) decimal.Decimal { return decimal.NewFromFloat(f).Round(2) }

func optionalMoney(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := money(*f)
	return &d
}
