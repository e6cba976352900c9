package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	// ListByPurchaseID returns payments oldest first (statement order).
	ListByPurchaseID(ctx context.Context, purchaseID string) ([]Payment, error)
	// ListByClientID returns payments newest first.
	ListByClientID(ctx context.Context, clientID string) ([]Payment, error)
	// SumByPurchaseID totals registered payments, for reconciliation checks.
	SumByPurchaseID(ctx context.Context, purchaseID string) (float64, error)
}
