package purchasemock

import (
	"context"

	domain "autocredit-backend/internal/domain/purchase"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, p *domain.Purchase) error
	GetByPurchaseIDFn          func(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	GetByPurchaseIDForUpdateFn func(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	GetByQuotationIDFn         func(ctx context.Context, quotationID string) (*domain.Purchase, error)
	ListByClientIDFn           func(ctx context.Context, clientID string) ([]domain.Purchase, error)
	ListByStatusFn             func(ctx context.Context, status domain.Status) ([]domain.Purchase, error)
	SaveFn                     func(ctx context.Context, p *domain.Purchase) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.Purchase) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPurchaseID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	if m.GetByPurchaseIDFn != nil {
		return m.GetByPurchaseIDFn(ctx, purchaseID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByPurchaseIDForUpdate(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	if m.GetByPurchaseIDForUpdateFn != nil {
		return m.GetByPurchaseIDForUpdateFn(ctx, purchaseID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByQuotationID(ctx context.Context, quotationID string) (*domain.Purchase, error) {
	if m.GetByQuotationIDFn != nil {
		return m.GetByQuotationIDFn(ctx, quotationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByClientID(ctx context.Context, clientID string) ([]domain.Purchase, error) {
	if m.ListByClientIDFn != nil {
		return m.ListByClientIDFn(ctx, clientID)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Purchase, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Purchase) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

// Stock is a function-backed mock for the stock-decrement capability.
type Stock struct {
	DecrementStockFn func(ctx context.Context, vehicleID string) error
	Calls            int
}

var _ domain.StockDecrementer = (*Stock)(nil)

func (m *Stock) DecrementStock(ctx context.Context, vehicleID string) error {
	m.Calls++
	if m.DecrementStockFn != nil {
		return m.DecrementStockFn(ctx, vehicleID)
	}
	return nil
}
