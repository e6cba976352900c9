package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"autocredit-backend/internal/domain/actor"
	"autocredit-backend/internal/domain/payment"
	"autocredit-backend/internal/domain/purchase"
	"autocredit-backend/internal/domain/quotation"
	"autocredit-backend/pkg/finance"
)

// actorFromHeaders reads the already-authenticated actor descriptor the
// gateway injects. Authentication itself is outside this core.
func actorFromHeaders(c echo.Context) (actor.Actor, bool) {
	a := actor.Actor{
		ID:    strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Id")),
		Role:  actor.Role(strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Role"))),
		Email: strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Email")),
		Name:  strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Name")),
	}
	if a.ID == "" || !actor.ValidRole(a.Role) {
		return actor.Actor{}, false
	}
	return a, true
}

// writeError maps domain error kinds onto HTTP statuses.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, quotation.ErrNotFound),
		errors.Is(err, purchase.ErrNotFound),
		errors.Is(err, payment.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, actor.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, purchase.ErrInvalidState),
		errors.Is(err, quotation.ErrInvalidState),
		errors.Is(err, purchase.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, purchase.ErrInvalidAmount),
		errors.Is(err, quotation.ErrInvalidInput),
		errors.Is(err, finance.ErrInvalidInput):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
