package purchase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"autocredit-backend/internal/domain/actor"
	"autocredit-backend/internal/domain/event"
	domainPurchase "autocredit-backend/internal/domain/purchase"
	domainQuotation "autocredit-backend/internal/domain/quotation"
	"autocredit-backend/internal/domain/uow"
	"autocredit-backend/pkg/finance"
	"autocredit-backend/pkg/id"
	"autocredit-backend/pkg/money"

	"gorm.io/gorm"
)

type Usecase struct {
	purchaseRepo domainPurchase.Repository
	uow          uow.UnitOfWork
	bureau       finance.Bureau
	events       event.Emitter
}

// NewUsecase: repos for reads, a UoW for tx flows, the bureau capability and
// the event emitter for the notifier.
func NewUsecase(purchases domainPurchase.Repository, tx uow.UnitOfWork, bureau finance.Bureau, events event.Emitter) *Usecase {
	return &Usecase{purchaseRepo: purchases, uow: tx, bureau: bureau, events: events}
}

// Start opens the purchase process for an approved quotation: snapshots the
// financial profile, queries the bureau once and parks the purchase in
// under_review for an analyst.
func (u *Usecase) Start(ctx context.Context, in StartInput) (*PurchaseDTO, error) {
	if u.uow == nil {
		return nil, domainPurchase.ErrInvalidState
	}

	bureauRes, err := u.bureau.Query(ctx, in.Client.Email)
	if err != nil {
		return nil, fmt.Errorf("bureau query: %w", err)
	}

	var dto *PurchaseDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		q, err := r.Quotations.GetByQuotationID(ctx, in.QuotationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainQuotation.ErrNotFound
			}
			return err
		}
		if q.Status != domainQuotation.StatusApproved {
			return fmt.Errorf("%w: quotation is %s, needs approved", domainPurchase.ErrInvalidState, q.Status)
		}

		// 1:1 with the quotation; the DB unique index backs this guard.
		if _, err := r.Purchases.GetByQuotationID(ctx, q.QuotationID); err == nil {
			return domainPurchase.ErrAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		profile := finance.Profile{
			MonthlyIncome:   in.Profile.MonthlyIncome,
			OtherIncome:     in.Profile.OtherIncome,
			MonthlyExpenses: in.Profile.MonthlyExpenses,
			CurrentDebts:    in.Profile.CurrentDebts,
		}
		p := &domainPurchase.Purchase{
			PurchaseID:  id.NewID32(),
			QuotationID: q.QuotationID,
			VehicleID:   q.VehicleID,
			ClientID:    in.Client.ID,
			SellerID:    q.SellerID,
			Status:      domainPurchase.StatusUnderReview,
			Profile: domainPurchase.FinancialProfile{
				MonthlyIncome:   profile.MonthlyIncome,
				OtherIncome:     profile.OtherIncome,
				MonthlyExpenses: profile.MonthlyExpenses,
				CurrentDebts:    profile.CurrentDebts,
				PaymentCapacity: profile.PaymentCapacity(),
			},
			Bureau: toBureauSnapshot(bureauRes),
		}
		if err := r.Purchases.Create(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.emit(ctx, event.TypePurchaseRequested, map[string]any{
		"purchase_id":  dto.PurchaseID,
		"quotation_id": dto.QuotationID,
		"client_id":    dto.ClientID,
		"bureau_score": dto.Bureau.Score,
	})
	return dto, nil
}

// EvaluateFinancing runs the bank decision on an under-review purchase. On
// approval the financed amount initializes the running balance.
func (u *Usecase) EvaluateFinancing(ctx context.Context, in EvaluateInput) (*PurchaseDTO, error) {
	if u.uow == nil {
		return nil, domainPurchase.ErrInvalidState
	}
	if in.Analyst.Role != actor.RoleAnalyst && in.Analyst.Role != actor.RoleAdmin {
		return nil, actor.ErrPermissionDenied
	}

	var dto *PurchaseDTO
	err := u.uow.WithinPurchaseTx(ctx, in.PurchaseID, func(r uow.Repos, p *domainPurchase.Purchase) error {
		q, err := r.Quotations.GetByQuotationID(ctx, p.QuotationID)
		if err != nil {
			return err
		}

		requested := money.Round2(q.BasePrice - q.DownPayment)
		ev, err := finance.Evaluate(finance.Profile{
			MonthlyIncome:   p.Profile.MonthlyIncome,
			OtherIncome:     p.Profile.OtherIncome,
			MonthlyExpenses: p.Profile.MonthlyExpenses,
			CurrentDebts:    p.Profile.CurrentDebts,
		}, finance.BureauResult{Score: p.Bureau.Score}, requested, q.TermMonths)
		if err != nil {
			return err
		}

		trigger := domainPurchase.TriggerDeclineFinance
		if ev.Approved {
			trigger = domainPurchase.TriggerApproveFinance
		}
		next, ok := domainPurchase.Next(p.Status, trigger)
		if !ok {
			return fmt.Errorf("%w: cannot evaluate from %s", domainPurchase.ErrInvalidState, p.Status)
		}

		now := time.Now().UTC()
		p.Status = next
		p.AnalystID = in.Analyst.ID
		p.AnalystComments = in.Comments
		p.Bank = toBankSnapshot(ev)
		if ev.Approved {
			p.ApprovedAt = &now
			p.TotalFinanced = ev.ApprovedAmount
			p.OutstandingBalance = ev.ApprovedAmount
			p.TotalPaid = 0
		}
		if err := r.Purchases.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.emit(ctx, event.TypeFinancingDecision, map[string]any{
		"purchase_id": dto.PurchaseID,
		"client_id":   dto.ClientID,
		"approved":    dto.Bank.Approved,
		"annual_rate": dto.Bank.AnnualRate,
		"reasons":     dto.Bank.RejectionReasons,
	})
	return dto, nil
}

// Finalize records the seller's closing decision on an approved purchase.
func (u *Usecase) Finalize(ctx context.Context, in FinalizeInput) (*PurchaseDTO, error) {
	if u.uow == nil {
		return nil, domainPurchase.ErrInvalidState
	}
	if !in.Seller.Privileged() {
		return nil, actor.ErrPermissionDenied
	}
	trigger, ok := domainPurchase.FinalizeTrigger(in.Decision)
	if !ok {
		return nil, fmt.Errorf("%w: decision %s not accepted", domainPurchase.ErrInvalidState, in.Decision)
	}

	var dto *PurchaseDTO
	var completed bool
	err := u.uow.WithinPurchaseTx(ctx, in.PurchaseID, func(r uow.Repos, p *domainPurchase.Purchase) error {
		next, ok := domainPurchase.Next(p.Status, trigger)
		if !ok {
			return fmt.Errorf("%w: cannot finalize from %s", domainPurchase.ErrInvalidState, p.Status)
		}
		p.Status = next
		p.SellerID = in.Seller.ID
		if in.Comments != "" {
			p.AnalystComments = in.Comments
		}
		if next == domainPurchase.StatusCompleted {
			now := time.Now().UTC()
			p.DeliveredAt = &now
			completed = true
		}
		if err := r.Purchases.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed {
		u.emit(ctx, event.TypePurchaseCompleted, map[string]any{
			"purchase_id": dto.PurchaseID,
			"client_id":   dto.ClientID,
			"seller_id":   dto.SellerID,
		})
	}
	return dto, nil
}

// AdvanceFromPayment is invoked by the payment ledger inside its own locked
// transaction once the balance hits zero. Already-completed purchases are a
// no-op so the terminal transition stays idempotent.
func (u *Usecase) AdvanceFromPayment(ctx context.Context, r uow.Repos, p *domainPurchase.Purchase) error {
	return u.completeLinked(ctx, r, p)
}

// completeLinked applies the completion side effects: quotation moves to
// completed and the vehicle leaves stock.
func (u *Usecase) completeLinked(ctx context.Context, r uow.Repos, p *domainPurchase.Purchase) error {
	q, err := r.Quotations.GetByQuotationID(ctx, p.QuotationID)
	if err != nil {
		return err
	}
	if q.Status != domainQuotation.StatusCompleted {
		q.Status = domainQuotation.StatusCompleted
		if err := r.Quotations.Save(ctx, q); err != nil {
			return err
		}
	}
	if r.Stock != nil {
		if err := r.Stock.DecrementStock(ctx, p.VehicleID); err != nil {
			return err
		}
	}
	return nil
}

func (u *Usecase) Get(ctx context.Context, purchaseID string) (*PurchaseDTO, error) {
	p, err := u.purchaseRepo.GetByPurchaseID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainPurchase.ErrNotFound
		}
		return nil, err
	}
	return toDTO(p), nil
}

func (u *Usecase) ListByClient(ctx context.Context, clientID string) ([]PurchaseDTO, error) {
	ps, err := u.purchaseRepo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toDTOs(ps), nil
}

// ListPending returns purchases waiting on a financing decision.
func (u *Usecase) ListPending(ctx context.Context) ([]PurchaseDTO, error) {
	ps, err := u.purchaseRepo.ListByStatus(ctx, domainPurchase.StatusUnderReview)
	if err != nil {
		return nil, err
	}
	return toDTOs(ps), nil
}

func toDTOs(ps []domainPurchase.Purchase) []PurchaseDTO {
	out := make([]PurchaseDTO, 0, len(ps))
	for i := range ps {
		out = append(out, *toDTO(&ps[i]))
	}
	return out
}

// emit hands the event to the notifier; failures are logged and dropped so
// they can never undo a committed mutation.
func (u *Usecase) emit(ctx context.Context, t event.Type, payload map[string]any) {
	if u.events == nil {
		return
	}
	if err := u.events.Emit(ctx, event.New(t, payload)); err != nil {
		log.Printf("purchase: event %s dropped: %v", t, err)
	}
}

func toBureauSnapshot(r finance.BureauResult) domainPurchase.CreditBureauSnapshot {
	queried := r.QueriedAt
	return domainPurchase.CreditBureauSnapshot{
		Score:           r.Score,
		RiskLevel:       string(r.RiskLevel),
		PaymentHistory:  r.PaymentHistory,
		OpenAccounts:    r.OpenAccounts,
		TotalDebt:       r.TotalDebt,
		RecentInquiries: r.RecentInquiries,
		CreditAgeYears:  r.CreditAgeYears,
		QueriedAt:       &queried,
	}
}

func toBankSnapshot(ev finance.Evaluation) domainPurchase.BankEvaluationSnapshot {
	evaluated := ev.EvaluatedAt
	return domainPurchase.BankEvaluationSnapshot{
		Approved:         ev.Approved,
		ApprovedAmount:   ev.ApprovedAmount,
		AnnualRate:       ev.AnnualRate,
		MonthlyPayment:   ev.MonthlyPayment,
		TermMonths:       ev.TermMonths,
		DebtRatio:        ev.DebtRatio,
		Conditions:       ev.Conditions,
		RejectionReasons: ev.RejectionReasons,
		Suggestions:      ev.Suggestions,
		EvaluatedAt:      &evaluated,
	}
}
