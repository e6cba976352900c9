package mysql

import (
	"context"

	purchaseDomain "autocredit-backend/internal/domain/purchase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository { return &PurchaseRepository{db: db} }

func (r *PurchaseRepository) Create(ctx context.Context, p *purchaseDomain.Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PurchaseRepository) Save(ctx context.Context, p *purchaseDomain.Purchase) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PurchaseRepository) GetByPurchaseID(ctx context.Context, purchaseID string) (*purchaseDomain.Purchase, error) {
	var out purchaseDomain.Purchase
	res := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseID).First(&out)
	return &out, res.Error
}

// GetByPurchaseIDForUpdate reads the row with SELECT ... FOR UPDATE so
// concurrent balance mutations serialize on the enclosing transaction.
func (r *PurchaseRepository) GetByPurchaseIDForUpdate(ctx context.Context, purchaseID string) (*purchaseDomain.Purchase, error) {
	var out purchaseDomain.Purchase
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("purchase_id = ?", purchaseID).
		First(&out)
	return &out, res.Error
}

func (r *PurchaseRepository) GetByQuotationID(ctx context.Context, quotationID string) (*purchaseDomain.Purchase, error) {
	var out purchaseDomain.Purchase
	res := r.db.WithContext(ctx).Where("quotation_id = ?", quotationID).First(&out)
	return &out, res.Error
}

func (r *PurchaseRepository) ListByClientID(ctx context.Context, clientID string) ([]purchaseDomain.Purchase, error) {
	var out []purchaseDomain.Purchase
	res := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *PurchaseRepository) ListByStatus(ctx context.Context, status purchaseDomain.Status) ([]purchaseDomain.Purchase, error) {
	var out []purchaseDomain.Purchase
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
