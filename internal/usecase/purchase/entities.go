package purchase

import (
	"time"

	"autocredit-backend/internal/domain/actor"
	"autocredit-backend/internal/domain/purchase"
)

type StartInput struct {
	QuotationID string
	Client      actor.Actor
	Profile     ProfileInput
}

type ProfileInput struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	OtherIncome     float64 `json:"other_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	CurrentDebts    float64 `json:"current_debts"`
}

type EvaluateInput struct {
	PurchaseID string
	Analyst    actor.Actor
	Comments   string
}

type FinalizeInput struct {
	PurchaseID string
	Decision   purchase.Status
	Seller     actor.Actor
	Comments   string
}

type PurchaseDTO struct {
	PurchaseID  string `json:"purchase_id"`
	QuotationID string `json:"quotation_id"`
	VehicleID   string `json:"vehicle_id"`
	ClientID    string `json:"client_id"`
	SellerID    string `json:"seller_id,omitempty"`
	AnalystID   string `json:"analyst_id,omitempty"`
	Status      string `json:"status"`

	Profile purchase.FinancialProfile       `json:"financial_profile"`
	Bureau  purchase.CreditBureauSnapshot   `json:"credit_bureau_result"`
	Bank    purchase.BankEvaluationSnapshot `json:"bank_evaluation_result"`

	AnalystComments string `json:"analyst_comments,omitempty"`

	TotalFinanced      float64 `json:"total_financed"`
	OutstandingBalance float64 `json:"outstanding_balance"`
	TotalPaid          float64 `json:"total_paid"`

	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toDTO(p *purchase.Purchase) *PurchaseDTO {
	return &PurchaseDTO{
		PurchaseID:         p.PurchaseID,
		QuotationID:        p.QuotationID,
		VehicleID:          p.VehicleID,
		ClientID:           p.ClientID,
		SellerID:           p.SellerID,
		AnalystID:          p.AnalystID,
		Status:             string(p.Status),
		Profile:            p.Profile,
		Bureau:             p.Bureau,
		Bank:               p.Bank,
		AnalystComments:    p.AnalystComments,
		TotalFinanced:      p.TotalFinanced,
		OutstandingBalance: p.OutstandingBalance,
		TotalPaid:          p.TotalPaid,
		ApprovedAt:         p.ApprovedAt,
		DeliveredAt:        p.DeliveredAt,
		CreatedAt:          p.CreatedAt,
	}
}
