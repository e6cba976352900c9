package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"autocredit-backend/internal/usecase/quotation"
)

type QuotationHandler struct{ uc *quotation.Usecase }

func NewQuotationHandler(uc *quotation.Usecase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

type createQuotationReq struct {
	ClientID    string  `json:"client_id"    validate:"required,hex32"`
	VehicleID   string  `json:"vehicle_id"   validate:"required,hex32"`
	BasePrice   float64 `json:"base_price"   validate:"required,gt=0,dec2"`
	DownPayment float64 `json:"down_payment" validate:"gte=0,dec2"`
	TermMonths  int     `json:"term_months"  validate:"required,gte=1,lte=120"`
	AnnualRate  float64 `json:"annual_rate"  validate:"gte=0,lte=1"`
}

func (h *QuotationHandler) Create(c echo.Context) error {
	var req createQuotationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), quotation.CreateInput{
		ClientID:    req.ClientID,
		VehicleID:   req.VehicleID,
		BasePrice:   req.BasePrice,
		DownPayment: req.DownPayment,
		TermMonths:  req.TermMonths,
		AnnualRate:  req.AnnualRate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type decideQuotationReq struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

func (h *QuotationHandler) Decide(c echo.Context) error {
	quotationID := c.Param("quotation_id")
	if quotationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing quotation_id path param"})
	}
	seller, ok := actorFromHeaders(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	var req decideQuotationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Decide(c.Request().Context(), quotation.DecideInput{
		QuotationID: quotationID,
		Seller:      seller,
		Approve:     req.Approve,
		Notes:       req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *QuotationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("quotation_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *QuotationHandler) ListByClient(c echo.Context) error {
	dtos, err := h.uc.ListByClient(c.Request().Context(), c.Param("client_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
