package http

import (
	"net/http"

	ucUnit "leasehub-backend/internal/usecase/unit"

	"github.com/labstack/echo/v4"
)

type UnitHandler struct{ uc *ucUnit.Usecase }

func NewUnitHandler(uc *ucUnit.Usecase) *UnitHandler { return &UnitHandler{uc: uc} }

type createUnitReq struct {
	PropertyID string `json:"property_id" validate:"required,max=32"`
	UnitNumber string `json:"unit_number" validate:"required,max=32"`
}

func (h *UnitHandler) CreateUnit(c echo.Context) error {
	var req createUnitReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	u, err := h.uc.Create(c.Request().Context(), ucUnit.CreateInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *UnitHandler) GetUnit(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("unit_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
