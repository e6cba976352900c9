package quotation

import (
	"context"
	"errors"
	"fmt"

	"autocredit-backend/internal/domain/actor"
	"autocredit-backend/internal/domain/quotation"
	"autocredit-backend/pkg/finance"
	"autocredit-backend/pkg/id"
	"autocredit-backend/pkg/money"

	"gorm.io/gorm"
)

type Usecase struct{ repo quotation.Repository }

func NewUsecase(r quotation.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*QuotationDTO, error) {
	if in.ClientID == "" || in.VehicleID == "" {
		return nil, fmt.Errorf("%w: missing client or vehicle reference", quotation.ErrInvalidInput)
	}
	if in.BasePrice <= 0 || in.DownPayment < 0 || in.AnnualRate < 0 {
		return nil, fmt.Errorf("%w: malformed amounts", quotation.ErrInvalidInput)
	}
	if in.DownPayment >= in.BasePrice {
		return nil, fmt.Errorf("%w: down payment must be below the base price", quotation.ErrInvalidInput)
	}

	principal := money.Round2(in.BasePrice - in.DownPayment)
	inst, err := finance.ComputeInstallment(principal, in.AnnualRate, in.TermMonths)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", quotation.ErrInvalidInput, err)
	}

	q := &quotation.Quotation{
		QuotationID:    id.NewID32(),
		ClientID:       in.ClientID,
		VehicleID:      in.VehicleID,
		BasePrice:      money.Round2(in.BasePrice),
		DownPayment:    money.Round2(in.DownPayment),
		TermMonths:     in.TermMonths,
		AnnualRate:     in.AnnualRate,
		MonthlyPayment: inst.MonthlyPayment,
		TotalPayable:   money.Round2(inst.TotalPayable + in.DownPayment),
		Status:         quotation.StatusPending,
	}
	if err := u.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return toDTO(q), nil
}

// Decide records a seller's approve/reject call on a pending quotation.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*QuotationDTO, error) {
	if in.Seller.Role != actor.RoleSeller && in.Seller.Role != actor.RoleAdmin {
		return nil, actor.ErrPermissionDenied
	}
	q, err := u.repo.GetByQuotationID(ctx, in.QuotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, quotation.ErrNotFound
		}
		return nil, err
	}
	if !q.Decidable() {
		return nil, fmt.Errorf("%w: status %s", quotation.ErrInvalidState, q.Status)
	}
	if in.Approve {
		q.Status = quotation.StatusApproved
	} else {
		q.Status = quotation.StatusRejected
	}
	q.SellerID = in.Seller.ID
	q.SellerNotes = in.Notes
	if err := u.repo.Save(ctx, q); err != nil {
		return nil, err
	}
	return toDTO(q), nil
}

func (u *Usecase) Get(ctx context.Context, quotationID string) (*QuotationDTO, error) {
	q, err := u.repo.GetByQuotationID(ctx, quotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, quotation.ErrNotFound
		}
		return nil, err
	}
	return toDTO(q), nil
}

func (u *Usecase) ListByClient(ctx context.Context, clientID string) ([]QuotationDTO, error) {
	qs, err := u.repo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]QuotationDTO, 0, len(qs))
	for i := range qs {
		out = append(out, *toDTO(&qs[i]))
	}
	return out, nil
}
