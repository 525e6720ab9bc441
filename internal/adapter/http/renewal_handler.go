package http

import (
	"net/http"

	ucRenewal "leasehub-backend/internal/usecase/renewal"

	"github.com/labstack/echo/v4"
)

type RenewalHandler struct{ uc *ucRenewal.Usecase }

func NewRenewalHandler(uc *ucRenewal.Usecase) *RenewalHandler { return &RenewalHandler{uc: uc} }

// Alerts serves the renewal worklist, optionally narrowed by ?stage=.
func (h *RenewalHandler) Alerts(c echo.Context) error {
	feed, err := h.uc.Feed(c.Request().Context(), ucRenewal.FeedFilter{Stage: c.QueryParam("stage")})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, feed)
}
