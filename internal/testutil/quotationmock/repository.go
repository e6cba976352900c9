package quotationmock

import (
	"context"

	domain "autocredit-backend/internal/domain/quotation"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository. Fill in
// the function fields a test needs; unfilled getters report not-found.
type Repo struct {
	CreateFn           func(ctx context.Context, q *domain.Quotation) error
	GetByQuotationIDFn func(ctx context.Context, quotationID string) (*domain.Quotation, error)
	ListByClientIDFn   func(ctx context.Context, clientID string) ([]domain.Quotation, error)
	SaveFn             func(ctx context.Context, q *domain.Quotation) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, q *domain.Quotation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, q)
	}
	return nil
}

func (m *Repo) GetByQuotationID(ctx context.Context, quotationID string) (*domain.Quotation, error) {
	if m.GetByQuotationIDFn != nil {
		return m.GetByQuotationIDFn(ctx, quotationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByClientID(ctx context.Context, clientID string) ([]domain.Quotation, error) {
	if m.ListByClientIDFn != nil {
		return m.ListByClientIDFn(ctx, clientID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, q *domain.Quotation) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, q)
	}
	return nil
}
