package uow

import (
	"context"

	"autocredit-backend/internal/domain/payment"
	"autocredit-backend/internal/domain/purchase"
	"autocredit-backend/internal/domain/quotation"
)

type Repos struct {
	Quotations quotation.Repository
	Purchases  purchase.Repository
	Payments   payment.Repository
	Stock      purchase.StockDecrementer
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the purchase row first, then pass it in. This is the
	// serialization point for concurrent balance mutations on one purchase.
	WithinPurchaseTx(ctx context.Context, purchaseID string, fn func(r Repos, p *purchase.Purchase) error) error
}
