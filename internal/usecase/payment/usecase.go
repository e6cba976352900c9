package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"autocredit-backend/internal/domain/actor"
	"autocredit-backend/internal/domain/event"
	domainPayment "autocredit-backend/internal/domain/payment"
	domainPurchase "autocredit-backend/internal/domain/purchase"
	"autocredit-backend/internal/domain/uow"
	"autocredit-backend/pkg/id"
	"autocredit-backend/pkg/money"

	"gorm.io/gorm"
)

// PurchaseAdvancer is the state machine's completion hook, invoked inside
// the payment transaction when the balance reaches zero.
type PurchaseAdvancer interface {
	AdvanceFromPayment(ctx context.Context, r uow.Repos, p *domainPurchase.Purchase) error
}

type Usecase struct {
	paymentRepo  domainPayment.Repository
	purchaseRepo domainPurchase.Repository
	uow          uow.UnitOfWork
	events       event.Emitter
	advancer     PurchaseAdvancer
}

func NewUsecase(payments domainPayment.Repository, purchases domainPurchase.Repository, tx uow.UnitOfWork, events event.Emitter, advancer PurchaseAdvancer) *Usecase {
	return &Usecase{paymentRepo: payments, purchaseRepo: purchases, uow: tx, events: events, advancer: advancer}
}

// Register appends a payment against a purchase and decrements the running
// balance. The whole effect — balance read, precondition checks, payment
// insert, balance write and the conditional completion — runs inside one
// transaction that locks the purchase row, so two simultaneous submissions
// serialize and the loser revalidates against the committed balance.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*PaymentDTO, error) {
	if u.uow == nil {
		return nil, domainPurchase.ErrInvalidState
	}
	if !in.Actor.Privileged() {
		return nil, actor.ErrPermissionDenied
	}

	var (
		dto        *PaymentDTO
		newBalance float64
		settled    bool
		clientID   string
	)
	err := u.uow.WithinPurchaseTx(ctx, in.PurchaseID, func(r uow.Repos, p *domainPurchase.Purchase) error {
		if in.Actor.Role == actor.RoleSeller && p.SellerID != in.Actor.ID {
			return actor.ErrPermissionDenied
		}
		if p.Status == domainPurchase.StatusCompleted {
			return fmt.Errorf("%w: purchase already completed", domainPurchase.ErrInvalidState)
		}
		if !p.Financed() || p.OutstandingBalance <= 0 {
			return fmt.Errorf("%w: no outstanding balance to pay", domainPurchase.ErrInvalidState)
		}
		if !domainPayment.ValidMethod(in.Method) {
			return fmt.Errorf("%w: unknown method %q", domainPurchase.ErrInvalidAmount, in.Method)
		}

		next, done, err := domainPurchase.ApplyPayment(*p, in.Amount, time.Now().UTC())
		if err != nil {
			return err
		}

		rec := &domainPayment.Payment{
			PaymentID:    id.NewID32(),
			PurchaseID:   p.PurchaseID,
			ClientID:     p.ClientID,
			Amount:       money.Round2(in.Amount),
			Method:       in.Method,
			Notes:        in.Notes,
			RegisteredBy: in.Actor.ID,
			Status:       domainPayment.StatusRegistered,
		}
		if err := r.Payments.Create(ctx, rec); err != nil {
			return err
		}

		*p = next
		if done && u.advancer != nil {
			if err := u.advancer.AdvanceFromPayment(ctx, r, p); err != nil {
				return err
			}
		}
		if err := r.Purchases.Save(ctx, p); err != nil {
			return err
		}

		dto = toDTO(rec)
		newBalance = p.OutstandingBalance
		settled = done
		clientID = p.ClientID
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainPurchase.ErrNotFound
		}
		return nil, err
	}

	u.emit(ctx, event.TypePaymentRegistered, map[string]any{
		"payment_id":          dto.PaymentID,
		"purchase_id":         in.PurchaseID,
		"client_id":           clientID,
		"amount":              dto.Amount,
		"outstanding_balance": newBalance,
	})
	if settled {
		u.emit(ctx, event.TypePurchaseCompleted, map[string]any{
			"purchase_id": in.PurchaseID,
			"client_id":   clientID,
		})
	}
	return dto, nil
}

func (u *Usecase) ListByPurchase(ctx context.Context, purchaseID string) ([]PaymentDTO, error) {
	if _, err := u.purchaseRepo.GetByPurchaseID(ctx, purchaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainPurchase.ErrNotFound
		}
		return nil, err
	}
	ps, err := u.paymentRepo.ListByPurchaseID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	return toDTOs(ps), nil
}

func (u *Usecase) ListByClient(ctx context.Context, clientID string) ([]PaymentDTO, error) {
	ps, err := u.paymentRepo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toDTOs(ps), nil
}

// ListByQuotation resolves the quotation's purchase first, then lists its
// payments.
func (u *Usecase) ListByQuotation(ctx context.Context, quotationID string) ([]PaymentDTO, error) {
	p, err := u.purchaseRepo.GetByQuotationID(ctx, quotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainPurchase.ErrNotFound
		}
		return nil, err
	}
	return u.ListByPurchase(ctx, p.PurchaseID)
}

// Reconcile compares the purchase's total-paid field against the summed
// payment history; a mismatch indicates a consistency bug.
func (u *Usecase) Reconcile(ctx context.Context, purchaseID string) (bool, error) {
	p, err := u.purchaseRepo.GetByPurchaseID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domainPurchase.ErrNotFound
		}
		return false, err
	}
	sum, err := u.paymentRepo.SumByPurchaseID(ctx, purchaseID)
	if err != nil {
		return false, err
	}
	return money.EqualWithinCent(sum, p.TotalPaid) &&
		money.EqualWithinCent(p.TotalPaid+p.OutstandingBalance, p.TotalFinanced), nil
}

func (u *Usecase) emit(ctx context.Context, t event.Type, payload map[string]any) {
	if u.events == nil {
		return
	}
	if err := u.events.Emit(ctx, event.New(t, payload)); err != nil {
		log.Printf("payment: event %s dropped: %v", t, err)
	}
}
