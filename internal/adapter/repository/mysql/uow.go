package mysql

import (
	"context"

	"autocredit-backend/internal/domain/purchase"
	"autocredit-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Quotations: &QuotationRepository{db: tx},
		Purchases:  &PurchaseRepository{db: tx},
		Payments:   &PaymentRepository{db: tx},
		Stock:      &VehicleStock{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinPurchaseTx(ctx context.Context, purchaseID string, fn func(r uow.Repos, p *purchase.Purchase) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the purchase row up-front to serialize balance mutations
		p, err := r.Purchases.GetByPurchaseIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
