package quotation

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("quotation not found")
	ErrInvalidState = errors.New("quotation state does not allow the operation")
	ErrInvalidInput = errors.New("invalid quotation input")
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusCompleted   Status = "completed"
)

type Quotation struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	QuotationID string `gorm:"size:32;uniqueIndex:ux_quotations_quotation_id" json:"quotation_id"`
	ClientID    string `gorm:"size:32;index:idx_quotations_client" json:"client_id"`
	VehicleID   string `gorm:"size:32;index" json:"vehicle_id"`
	SellerID    string `gorm:"size:32" json:"seller_id,omitempty"`

	BasePrice      float64 `gorm:"type:decimal(18,2)" json:"base_price"`
	DownPayment    float64 `gorm:"type:decimal(18,2)" json:"down_payment"`
	TermMonths     int     `gorm:"column:term_months" json:"term_months"`
	AnnualRate     float64 `gorm:"type:decimal(6,4)" json:"annual_rate"`
	MonthlyPayment float64 `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	TotalPayable   float64 `gorm:"type:decimal(18,2)" json:"total_payable"`

	Status      Status `gorm:"type:enum('pending','under_review','approved','rejected','completed');default:'pending'" json:"status"`
	SellerNotes string `gorm:"type:text" json:"seller_notes,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Quotation) TableName() string { return "quotations" }

// Decidable reports whether a seller may still approve or reject.
func (q *Quotation) Decidable() bool {
	return q.Status == StatusPending || q.Status == StatusUnderReview
}
