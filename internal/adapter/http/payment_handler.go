package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domainPayment "autocredit-backend/internal/domain/payment"
	"autocredit-backend/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type registerPaymentReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
	Method string  `json:"method" validate:"required,paymethod"`
	Notes  string  `json:"notes"`
}

func (h *PaymentHandler) Register(c echo.Context) error {
	act, ok := actorFromHeaders(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	var req registerPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Register(c.Request().Context(), payment.RegisterInput{
		PurchaseID: c.Param("purchase_id"),
		Amount:     req.Amount,
		Method:     domainPayment.Method(req.Method),
		Notes:      req.Notes,
		Actor:      act,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) ListByPurchase(c echo.Context) error {
	dtos, err := h.uc.ListByPurchase(c.Request().Context(), c.Param("purchase_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *PaymentHandler) ListByClient(c echo.Context) error {
	dtos, err := h.uc.ListByClient(c.Request().Context(), c.Param("client_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *PaymentHandler) ListByQuotation(c echo.Context) error {
	dtos, err := h.uc.ListByQuotation(c.Request().Context(), c.Param("quotation_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
