package payment

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("payment not found")

type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
	MethodCard     Method = "card"
	MethodCheck    Method = "check"
)

type Status string

// Payments are append-only: registered is the only status, records are never
// edited or deleted.
const StatusRegistered Status = "registered"

type Payment struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	PaymentID  string `gorm:"size:32;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	PurchaseID string `gorm:"size:32;index:idx_payments_purchase" json:"purchase_id"`
	ClientID   string `gorm:"size:32;index:idx_payments_client" json:"client_id"`

	Amount float64 `gorm:"type:decimal(18,2)" json:"amount"`
	Method Method  `gorm:"size:16" json:"method"`
	Notes  string  `gorm:"type:text" json:"notes,omitempty"`

	RegisteredBy string    `gorm:"size:32" json:"registered_by"`
	Status       Status    `gorm:"size:16;default:'registered'" json:"status"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
}

func (Payment) TableName() string { return "payments" }

func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCard, MethodCheck:
		return true
	}
	return false
}
