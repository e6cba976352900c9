package paymentmock

import (
	"context"

	domain "autocredit-backend/internal/domain/payment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, p *domain.Payment) error
	ListByPurchaseIDFn func(ctx context.Context, purchaseID string) ([]domain.Payment, error)
	ListByClientIDFn   func(ctx context.Context, clientID string) ([]domain.Payment, error)
	SumByPurchaseIDFn  func(ctx context.Context, purchaseID string) (float64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByPurchaseID(ctx context.Context, purchaseID string) ([]domain.Payment, error) {
	if m.ListByPurchaseIDFn != nil {
		return m.ListByPurchaseIDFn(ctx, purchaseID)
	}
	return nil, nil
}

func (m *Repo) ListByClientID(ctx context.Context, clientID string) ([]domain.Payment, error) {
	if m.ListByClientIDFn != nil {
		return m.ListByClientIDFn(ctx, clientID)
	}
	return nil, nil
}

func (m *Repo) SumByPurchaseID(ctx context.Context, purchaseID string) (float64, error) {
	if m.SumByPurchaseIDFn != nil {
		return m.SumByPurchaseIDFn(ctx, purchaseID)
	}
	return 0, nil
}
