package payment

import (
	"time"

	"autocredit-backend/internal/domain/actor"
	"autocredit-backend/internal/domain/payment"
)

type RegisterInput struct {
	PurchaseID string
	Amount     float64
	Method     payment.Method
	Notes      string
	Actor      actor.Actor
}

type PaymentDTO struct {
	PaymentID    string    `json:"payment_id"`
	PurchaseID   string    `json:"purchase_id"`
	ClientID     string    `json:"client_id"`
	Amount       float64   `json:"amount"`
	Method       string    `json:"method"`
	Notes        string    `json:"notes,omitempty"`
	RegisteredBy string    `json:"registered_by"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toDTO(p *payment.Payment) *PaymentDTO {
	return &PaymentDTO{
		PaymentID:    p.PaymentID,
		PurchaseID:   p.PurchaseID,
		ClientID:     p.ClientID,
		Amount:       p.Amount,
		Method:       string(p.Method),
		Notes:        p.Notes,
		RegisteredBy: p.RegisteredBy,
		Status:       string(p.Status),
		RegisteredAt: p.RegisteredAt,
	}
}

func toDTOs(ps []payment.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(ps))
	for i := range ps {
		out = append(out, *toDTO(&ps[i]))
	}
	return out
}
