package uowmock

import (
	"context"
	"errors"

	"autocredit-backend/internal/domain/purchase"
	"autocredit-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinPurchaseTxFn func(ctx context.Context, purchaseID string, fn func(r uow.Repos, p *purchase.Purchase) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinPurchaseTx(fn func(context.Context, string, func(uow.Repos, *purchase.Purchase) error) error) *UoW {
	m.WithinPurchaseTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinPurchaseTx(ctx context.Context, purchaseID string, fn func(r uow.Repos, p *purchase.Purchase) error) error {
	if m.WithinPurchaseTxFn != nil {
		return m.WithinPurchaseTxFn(ctx, purchaseID, fn)
	}
	return errUnimplemented
}
