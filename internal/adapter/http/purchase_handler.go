package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domainPurchase "autocredit-backend/internal/domain/purchase"
	"autocredit-backend/internal/usecase/purchase"
)

type PurchaseHandler struct{ uc *purchase.Usecase }

func NewPurchaseHandler(uc *purchase.Usecase) *PurchaseHandler { return &PurchaseHandler{uc: uc} }

type startPurchaseReq struct {
	QuotationID     string  `json:"quotation_id"     validate:"required,hex32"`
	MonthlyIncome   float64 `json:"monthly_income"   validate:"gte=0,dec2"`
	OtherIncome     float64 `json:"other_income"     validate:"gte=0,dec2"`
	MonthlyExpenses float64 `json:"monthly_expenses" validate:"gte=0,dec2"`
	CurrentDebts    float64 `json:"current_debts"    validate:"gte=0,dec2"`
}

func (h *PurchaseHandler) Start(c echo.Context) error {
	client, ok := actorFromHeaders(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	var req startPurchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Start(c.Request().Context(), purchase.StartInput{
		QuotationID: req.QuotationID,
		Client:      client,
		Profile: purchase.ProfileInput{
			MonthlyIncome:   req.MonthlyIncome,
			OtherIncome:     req.OtherIncome,
			MonthlyExpenses: req.MonthlyExpenses,
			CurrentDebts:    req.CurrentDebts,
		},
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type evaluateReq struct {
	Comments string `json:"comments"`
}

func (h *PurchaseHandler) Evaluate(c echo.Context) error {
	analyst, ok := actorFromHeaders(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	var req evaluateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.EvaluateFinancing(c.Request().Context(), purchase.EvaluateInput{
		PurchaseID: c.Param("purchase_id"),
		Analyst:    analyst,
		Comments:   req.Comments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type finalizeReq struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected pending completed"`
	Comments string `json:"comments"`
}

func (h *PurchaseHandler) Finalize(c echo.Context) error {
	seller, ok := actorFromHeaders(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	var req finalizeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Finalize(c.Request().Context(), purchase.FinalizeInput{
		PurchaseID: c.Param("purchase_id"),
		Decision:   domainPurchase.Status(req.Decision),
		Seller:     seller,
		Comments:   req.Comments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PurchaseHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("purchase_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PurchaseHandler) ListByClient(c echo.Context) error {
	dtos, err := h.uc.ListByClient(c.Request().Context(), c.Param("client_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *PurchaseHandler) ListPending(c echo.Context) error {
	dtos, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
