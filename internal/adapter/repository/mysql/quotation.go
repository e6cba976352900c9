package mysql

import (
	"context"

	quotationDomain "autocredit-backend/internal/domain/quotation"

	"gorm.io/gorm"
)

type QuotationRepository struct{ db *gorm.DB }

func NewQuotationRepository(db *gorm.DB) *QuotationRepository { return &QuotationRepository{db: db} }

func (r *QuotationRepository) Create(ctx context.Context, q *quotationDomain.Quotation) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *QuotationRepository) Save(ctx context.Context, q *quotationDomain.Quotation) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *QuotationRepository) GetByQuotationID(ctx context.Context, quotationID string) (*quotationDomain.Quotation, error) {
	var out quotationDomain.Quotation
	res := r.db.WithContext(ctx).Where("quotation_id = ?", quotationID).First(&out)
	return &out, res.Error
}

func (r *QuotationRepository) ListByClientID(ctx context.Context, clientID string) ([]quotationDomain.Quotation, error) {
	var out []quotationDomain.Quotation
	res := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
