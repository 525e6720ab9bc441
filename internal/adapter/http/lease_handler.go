package http

import (
	"net/http"

	ucLease "leasehub-backend/internal/usecase/lease"
	ucAction "leasehub-backend/internal/usecase/leaseaction"
	ucTransfer "leasehub-backend/internal/usecase/transfer"

	"github.com/labstack/echo/v4"
)

type LeaseHandler struct {
	reads     *ucLease.Usecase
	actions   *ucAction.Usecase
	transfers *ucTransfer.Usecase
}

func NewLeaseHandler(reads *ucLease.Usecase, actions *ucAction.Usecase, transfers *ucTransfer.Usecase) *LeaseHandler {
	return &LeaseHandler{reads: reads, actions: actions, transfers: transfers}
}

type createLeaseReq struct {
	UnitID          string   `json:"unit_id"          validate:"required,hex32"`
	TenantName      string   `json:"tenant_name"      validate:"required,max=255"`
	TenantEmail     string   `json:"tenant_email"     validate:"omitempty,email,max=255"`
	TenantPhone     string   `json:"tenant_phone"     validate:"omitempty,max=64"`
	LeaseStart      string   `json:"lease_start"      validate:"required,datetime=2006-01-02"`
	LeaseEnd        string   `json:"lease_end"        validate:"omitempty,datetime=2006-01-02"`
	LeaseTerm       string   `json:"lease_term"       validate:"omitempty,oneof=fixed month_to_month"`
	MonthlyRent     *float64 `json:"monthly_rent"     validate:"required,gte=0,dec2"`
	SecurityDeposit *float64 `json:"security_deposit" validate:"omitempty,gte=0,dec2"`
	MoveInDate      string   `json:"move_in_date"     validate:"omitempty,datetime=2006-01-02"`
	Description     string   `json:"description"      validate:"max=2000"`
}

func (h *LeaseHandler) CreateLease(c echo.Context) error {
	var req createLeaseReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	l, err := h.actions.Create(c.Request().Context(), ucAction.CreateInput{
		UnitID:          req.UnitID,
		TenantName:      req.TenantName,
		TenantEmail:     req.TenantEmail,
		TenantPhone:     req.TenantPhone,
		LeaseStart:      parseDate(req.LeaseStart),
		LeaseEnd:        parseOptionalDate(req.LeaseEnd),
		LeaseTerm:       req.LeaseTerm,
		MonthlyRent:     money(*req.MonthlyRent),
		SecurityDeposit: optionalMoney(req.SecurityDeposit),
		MoveInDate:      parseOptionalDate(req.MoveInDate),
		Description:     req.Description,
	}, actorOf(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LeaseHandler) GetLease(c echo.Context) error {
	l, err := h.reads.Get(c.Request().Context(), c.Param("lease_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LeaseHandler) ListActions(c echo.Context) error {
	list, err := h.reads.History(c.Request().Context(), c.Param("lease_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"actions": list})
}

func (h *LeaseHandler) Audit(c echo.Context) error {
	report, err := h.reads.Audit(c.Request().Context(), c.Param("lease_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

type applyActionReq struct {
	ActionType  string   `json:"action_type"   validate:"required,max=32"`
	Description string   `json:"description"   validate:"max=2000"`
	NewRent     *float64 `json:"new_rent"      validate:"omitempty,gt=0,dec2"`
	NoticeType  string   `json:"notice_type"   validate:"omitempty,max=16"`
	MoveOutDate string   `json:"move_out_date" validate:"omitempty,datetime=2006-01-02"`
}

// ApplyAction records one operator action; unknown or system-only types are
// rejected by the use case with 422.
func (h *LeaseHandler) ApplyAction(c echo.Context) error {
	var req applyActionReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	res, err := h.actions.Apply(c.Request().Context(), ucAction.ApplyInput{
		LeaseID:     c.Param("lease_id"),
		Type:        req.ActionType,
		Description: req.Description,
		NewRent:     optionalMoney(req.NewRent),
		NoticeType:  req.NoticeType,
		MoveOutDate: req.MoveOutDate,
	}, actorOf(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

type transferReq struct {
	NewUnitID      string  `json:"new_unit_id"       validate:"required,hex32"`
	NewMonthlyRent float64 `json:"new_monthly_rent"  validate:"required,gt=0,dec2"`
	NewLeaseStart  string  `json:"new_lease_start"   validate:"required,datetime=2006-01-02"`
	NewLeaseEnd    string  `json:"new_lease_end"     validate:"required,datetime=2006-01-02"`
	Description    string  `json:"description"       validate:"max=2000"`
}

func (h *LeaseHandler) Transfer(c echo.Context) error {
	var req transferReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	res, err := h.transfers.Transfer(c.Request().Context(), ucTransfer.Input{
		OldLeaseID:    c.Param("lease_id"),
		NewUnitID:     req.NewUnitID,
		NewRent:       money(req.NewMonthlyRent),
		NewLeaseStart: parseDate(req.NewLeaseStart),
		NewLeaseEnd:   parseDate(req.NewLeaseEnd),
		Description:   req.Description,
	}, actorOf(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}
