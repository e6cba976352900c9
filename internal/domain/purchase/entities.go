package purchase

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("purchase not found")
	ErrInvalidState  = errors.New("purchase state does not allow the operation")
	ErrInvalidAmount = errors.New("invalid payment amount")
	ErrAlreadyExists = errors.New("purchase already exists for this quotation")
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

// FinancialProfile is the applicant's declared situation, snapshotted at
// purchase start.
type FinancialProfile struct {
	MonthlyIncome   float64 `gorm:"type:decimal(18,2)" json:"monthly_income"`
	OtherIncome     float64 `gorm:"type:decimal(18,2)" json:"other_income"`
	MonthlyExpenses float64 `gorm:"type:decimal(18,2)" json:"monthly_expenses"`
	CurrentDebts    float64 `gorm:"type:decimal(18,2)" json:"current_debts"`
	PaymentCapacity float64 `gorm:"type:decimal(18,2)" json:"payment_capacity"`
}

// CreditBureauSnapshot is the bureau answer at the instant of the query,
// never recomputed. Absent optional data stays at its zero value.
type CreditBureauSnapshot struct {
	Score           int        `json:"score"`
	RiskLevel       string     `gorm:"size:16" json:"risk_level"`
	PaymentHistory  string     `gorm:"size:128" json:"payment_history"`
	OpenAccounts    int        `json:"open_accounts"`
	TotalDebt       float64    `gorm:"type:decimal(18,2)" json:"total_debt"`
	RecentInquiries int        `json:"recent_inquiries"`
	CreditAgeYears  int        `json:"credit_age_years"`
	QueriedAt       *time.Time `json:"queried_at,omitempty"`
}

// BankEvaluationSnapshot is the financing decision applied to the purchase.
type BankEvaluationSnapshot struct {
	Approved         bool       `json:"approved"`
	ApprovedAmount   float64    `gorm:"type:decimal(18,2)" json:"approved_amount"`
	AnnualRate       float64    `gorm:"type:decimal(6,4)" json:"annual_rate"`
	MonthlyPayment   float64    `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	TermMonths       int        `json:"term_months"`
	DebtRatio        float64    `gorm:"type:decimal(8,6)" json:"debt_ratio"`
	Conditions       []string   `gorm:"serializer:json;type:text" json:"conditions,omitempty"`
	RejectionReasons []string   `gorm:"serializer:json;type:text" json:"rejection_reasons,omitempty"`
	Suggestions      []string   `gorm:"serializer:json;type:text" json:"suggestions,omitempty"`
	EvaluatedAt      *time.Time `json:"evaluated_at,omitempty"`
}

type Purchase struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	PurchaseID string `gorm:"size:32;uniqueIndex:ux_purchases_purchase_id" json:"purchase_id"`
	// 1:1 with its quotation; DB uniqueness backs the in-flow guard.
	QuotationID string `gorm:"size:32;uniqueIndex:ux_purchases_quotation" json:"quotation_id"`
	VehicleID   string `gorm:"size:32" json:"vehicle_id"`
	ClientID    string `gorm:"size:32;index:idx_purchases_client" json:"client_id"`
	SellerID    string `gorm:"size:32" json:"seller_id,omitempty"`
	AnalystID   string `gorm:"size:32" json:"analyst_id,omitempty"`

	Status Status `gorm:"type:enum('pending','under_review','approved','rejected','completed','cancelled');default:'pending';index" json:"status"`

	Profile FinancialProfile       `gorm:"embedded;embeddedPrefix:profile_" json:"financial_profile"`
	Bureau  CreditBureauSnapshot   `gorm:"embedded;embeddedPrefix:bureau_" json:"credit_bureau_result"`
	Bank    BankEvaluationSnapshot `gorm:"embedded;embeddedPrefix:bank_" json:"bank_evaluation_result"`

	AnalystComments string `gorm:"type:text" json:"analyst_comments,omitempty"`

	TotalFinanced      float64 `gorm:"type:decimal(18,2)" json:"total_financed"`
	OutstandingBalance float64 `gorm:"type:decimal(18,2)" json:"outstanding_balance"`
	TotalPaid          float64 `gorm:"type:decimal(18,2)" json:"total_paid"`

	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Purchase) TableName() string { return "purchases" }

// Financed reports whether the approved bank amount has been applied to the
// running balance. Registering payments requires this.
func (p *Purchase) Financed() bool { return p.TotalFinanced > 0 }
