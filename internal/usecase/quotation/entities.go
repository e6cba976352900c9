package quotation

import (
	"time"

	"autocredit-backend/internal/domain/actor"
	"autocredit-backend/internal/domain/quotation"
)

type CreateInput struct {
	ClientID    string  `json:"client_id"`
	VehicleID   string  `json:"vehicle_id"`
	BasePrice   float64 `json:"base_price"`
	DownPayment float64 `json:"down_payment"`
	TermMonths  int     `json:"term_months"`
	AnnualRate  float64 `json:"annual_rate"`
}

type DecideInput struct {
	QuotationID string
	Seller      actor.Actor
	Approve     bool
	Notes       string
}

type QuotationDTO struct {
	QuotationID    string    `json:"quotation_id"`
	ClientID       string    `json:"client_id"`
	VehicleID      string    `json:"vehicle_id"`
	SellerID       string    `json:"seller_id,omitempty"`
	BasePrice      float64   `json:"base_price"`
	DownPayment    float64   `json:"down_payment"`
	TermMonths     int       `json:"term_months"`
	AnnualRate     float64   `json:"annual_rate"`
	MonthlyPayment float64   `json:"monthly_payment"`
	TotalPayable   float64   `json:"total_payable"`
	Status         string    `json:"status"`
	SellerNotes    string    `json:"seller_notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDTO(q *quotation.Quotation) *QuotationDTO {
	return &QuotationDTO{
		QuotationID:    q.QuotationID,
		ClientID:       q.ClientID,
		VehicleID:      q.VehicleID,
		SellerID:       q.SellerID,
		BasePrice:      q.BasePrice,
		DownPayment:    q.DownPayment,
		TermMonths:     q.TermMonths,
		AnnualRate:     q.AnnualRate,
		MonthlyPayment: q.MonthlyPayment,
		TotalPayable:   q.TotalPayable,
		Status:         string(q.Status),
		SellerNotes:    q.SellerNotes,
		CreatedAt:      q.CreatedAt,
	}
}
