package mysql

import (
	"context"

	paymentDomain "autocredit-backend/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByPurchaseID(ctx context.Context, purchaseID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("registered_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) ListByClientID(ctx context.Context, clientID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("registered_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) SumByPurchaseID(ctx context.Context, purchaseID string) (float64, error) {
	var sum *float64
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Select("SUM(amount)").
		Where("purchase_id = ?", purchaseID).
		Scan(&sum)
	if res.Error != nil {
		return 0, res.Error
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
