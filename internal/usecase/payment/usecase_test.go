package payment

import (
	"context"
	"errors"
	"testing"

	"autocredit-backend/internal/domain/actor"
	"autocredit-backend/internal/domain/event"
	domainPayment "autocredit-backend/internal/domain/payment"
	domainPurchase "autocredit-backend/internal/domain/purchase"
	"autocredit-backend/internal/domain/uow"
	"autocredit-backend/internal/testutil/eventmock"
	"autocredit-backend/internal/testutil/paymentmock"
	"autocredit-backend/internal/testutil/purchasemock"
	"autocredit-backend/internal/testutil/quotationmock"
	"autocredit-backend/internal/testutil/uowmock"
	"autocredit-backend/pkg/money"

	"gorm.io/gorm"
)

type advancerStub struct {
	calls int
	err   error
}

func (a *advancerStub) AdvanceFromPayment(_ context.Context, _ uow.Repos, _ *domainPurchase.Purchase) error {
	a.calls++
	return a.err
}

// lockingUoW mimics the production UoW: it resolves the purchase through
// the locked getter and hands the callback the same instance, so sequential
// calls observe each other's committed balance.
func lockingUoW(r uow.Repos) *uowmock.UoW {
	u := uowmock.New()
	u.WithinPurchaseTxFn = func(ctx context.Context, purchaseID string, fn func(uow.Repos, *domainPurchase.Purchase) error) error {
		p, err := r.Purchases.GetByPurchaseIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		return fn(r, p)
	}
	return u
}

func financedPurchase(balance float64) *domainPurchase.Purchase {
	return &domainPurchase.Purchase{
		PurchaseID:         "2aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		QuotationID:        "2bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		VehicleID:          "2ccccccccccccccccccccccccccccccc",
		ClientID:           "2ddddddddddddddddddddddddddddddd",
		SellerID:           "2eeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
		Status:             domainPurchase.StatusApproved,
		TotalFinanced:      240_000,
		OutstandingBalance: balance,
		TotalPaid:          money.Round2(240_000 - balance),
	}
}

type fixture struct {
	purchase *domainPurchase.Purchase
	payments *paymentmock.Repo
	created  []domainPayment.Payment
	saved    int
	events   *eventmock.Emitter
	advancer *advancerStub
	uc       *Usecase
}

func newFixture(p *domainPurchase.Purchase) *fixture {
	f := &fixture{purchase: p, events: &eventmock.Emitter{}, advancer: &advancerStub{}}
	f.payments = &paymentmock.Repo{
		CreateFn: func(ctx context.Context, rec *domainPayment.Payment) error {
			f.created = append(f.created, *rec)
			return nil
		},
	}
	purchases := &purchasemock.Repo{
		GetByPurchaseIDForUpdateFn: func(ctx context.Context, id string) (*domainPurchase.Purchase, error) {
			if f.purchase == nil || f.purchase.PurchaseID != id {
				return nil, gorm.ErrRecordNotFound
			}
			return f.purchase, nil
		},
		GetByPurchaseIDFn: func(ctx context.Context, id string) (*domainPurchase.Purchase, error) {
			if f.purchase == nil || f.purchase.PurchaseID != id {
				return nil, gorm.ErrRecordNotFound
			}
			return f.purchase, nil
		},
		GetByQuotationIDFn: func(ctx context.Context, id string) (*domainPurchase.Purchase, error) {
			if f.purchase == nil || f.purchase.QuotationID != id {
				return nil, gorm.ErrRecordNotFound
			}
			return f.purchase, nil
		},
		SaveFn: func(ctx context.Context, p *domainPurchase.Purchase) error {
			f.saved++
			return nil
		},
	}
	repos := uow.Repos{
		Quotations: &quotationmock.Repo{},
		Purchases:  purchases,
		Payments:   f.payments,
	}
	f.uc = NewUsecase(f.payments, purchases, lockingUoW(repos), f.events, f.advancer)
	return f
}

func admin() actor.Actor {
	return actor.Actor{ID: "3aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: actor.RoleAdmin}
}

// ----- Register -----

func TestRegister_RoleGate(t *testing.T) {
	f := newFixture(financedPurchase(240_000))

	for _, role := range []actor.Role{actor.RoleClient, actor.RoleAnalyst} {
		_, err := f.uc.Register(context.Background(), RegisterInput{
			PurchaseID: f.purchase.PurchaseID,
			Amount:     100,
			Method:     domainPayment.MethodCash,
			Actor:      actor.Actor{ID: "x", Role: role},
		})
		if !errors.Is(err, actor.ErrPermissionDenied) {
			t.Fatalf("role %s: err = %v, want ErrPermissionDenied", role, err)
		}
	}
	if len(f.created) != 0 {
		t.Fatalf("payment rows created on denied register")
	}
}

func TestRegister_PurchaseNotFound(t *testing.T) {
	f := newFixture(financedPurchase(240_000))

	_, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: "4aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Amount:     100,
		Method:     domainPayment.MethodCash,
		Actor:      admin(),
	})
	if !errors.Is(err, domainPurchase.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRegister_SellerMustOwnPurchase(t *testing.T) {
	f := newFixture(financedPurchase(240_000))

	_, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     100,
		Method:     domainPayment.MethodCash,
		Actor:      actor.Actor{ID: "not-the-seller", Role: actor.RoleSeller},
	})
	if !errors.Is(err, actor.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}

	// the assigned seller passes
	if _, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     100,
		Method:     domainPayment.MethodCash,
		Actor:      actor.Actor{ID: f.purchase.SellerID, Role: actor.RoleSeller},
	}); err != nil {
		t.Fatalf("assigned seller rejected: %v", err)
	}
}

func TestRegister_CompletedPurchase(t *testing.T) {
	p := financedPurchase(0)
	p.Status = domainPurchase.StatusCompleted
	f := newFixture(p)

	_, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: p.PurchaseID,
		Amount:     100,
		Method:     "bogus", // state must be checked before the method
		Actor:      admin(),
	})
	if !errors.Is(err, domainPurchase.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestRegister_NotFinanced(t *testing.T) {
	p := financedPurchase(0)
	p.TotalFinanced = 0
	p.TotalPaid = 0
	p.Status = domainPurchase.StatusUnderReview
	f := newFixture(p)

	_, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: p.PurchaseID,
		Amount:     100,
		Method:     domainPayment.MethodCash,
		Actor:      admin(),
	})
	if !errors.Is(err, domainPurchase.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestRegister_UnknownMethod(t *testing.T) {
	f := newFixture(financedPurchase(240_000))

	_, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     100,
		Method:     "crypto",
		Actor:      admin(),
	})
	if !errors.Is(err, domainPurchase.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if len(f.created) != 0 {
		t.Fatalf("payment created despite invalid method")
	}
}

func TestRegister_PartialPayment(t *testing.T) {
	f := newFixture(financedPurchase(240_000))

	dto, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     6679.49,
		Method:     domainPayment.MethodTransfer,
		Notes:      "installment 1",
		Actor:      admin(),
	})
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if dto.Amount != 6679.49 || dto.Method != string(domainPayment.MethodTransfer) {
		t.Fatalf("unexpected payment dto: %+v", dto)
	}
	if dto.Status != string(domainPayment.StatusRegistered) {
		t.Fatalf("status = %q, want registered", dto.Status)
	}
	if len(f.created) != 1 || f.created[0].RegisteredBy != admin().ID {
		t.Fatalf("payment row not appended: %+v", f.created)
	}
	if got := f.purchase.OutstandingBalance; got != 233320.51 {
		t.Fatalf("OutstandingBalance = %v, want 233320.51", got)
	}
	if got := f.purchase.TotalPaid; got != 6679.49 {
		t.Fatalf("TotalPaid = %v, want 6679.49", got)
	}
	if f.purchase.Status != domainPurchase.StatusApproved {
		t.Fatalf("partial payment must not change status, got %s", f.purchase.Status)
	}
	if f.advancer.calls != 0 {
		t.Fatalf("advancer called on partial payment")
	}
	if f.saved != 1 {
		t.Fatalf("purchase saved %d times, want 1", f.saved)
	}
	got := f.events.ByType(event.TypePaymentRegistered)
	if len(got) != 1 {
		t.Fatalf("payment.registered events = %d, want 1", len(got))
	}
	if bal, _ := got[0].Payload["outstanding_balance"].(float64); bal != 233320.51 {
		t.Fatalf("event balance = %v, want 233320.51", bal)
	}
}

func TestRegister_OverBalance(t *testing.T) {
	f := newFixture(financedPurchase(500))

	_, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     500.01,
		Method:     domainPayment.MethodCash,
		Actor:      admin(),
	})
	if !errors.Is(err, domainPurchase.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if len(f.created) != 0 || f.saved != 0 {
		t.Fatalf("over-balance payment must leave no writes (created=%d saved=%d)", len(f.created), f.saved)
	}
	if f.purchase.OutstandingBalance != 500 {
		t.Fatalf("balance mutated to %v", f.purchase.OutstandingBalance)
	}
}

func TestRegister_SettlementCompletes(t *testing.T) {
	f := newFixture(financedPurchase(500))

	dto, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     500,
		Method:     domainPayment.MethodCard,
		Actor:      admin(),
	})
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if dto.Amount != 500 {
		t.Fatalf("amount = %v, want 500", dto.Amount)
	}
	if f.purchase.Status != domainPurchase.StatusCompleted {
		t.Fatalf("status = %s, want completed", f.purchase.Status)
	}
	if f.purchase.OutstandingBalance != 0 {
		t.Fatalf("balance = %v, want 0", f.purchase.OutstandingBalance)
	}
	if f.purchase.DeliveredAt == nil {
		t.Fatalf("DeliveredAt not stamped on settlement")
	}
	if f.advancer.calls != 1 {
		t.Fatalf("advancer calls = %d, want 1", f.advancer.calls)
	}
	if got := f.events.ByType(event.TypePurchaseCompleted); len(got) != 1 {
		t.Fatalf("purchase.completed events = %d, want 1", len(got))
	}

	// the settled purchase refuses further payments
	_, err = f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     1,
		Method:     domainPayment.MethodCash,
		Actor:      admin(),
	})
	if !errors.Is(err, domainPurchase.ErrInvalidState) {
		t.Fatalf("post-settlement err = %v, want ErrInvalidState", err)
	}
}

// Two submissions racing for the same balance serialize on the row lock;
// the loser revalidates against the committed balance and is rejected.
func TestRegister_SerializedPairCannotOverdraw(t *testing.T) {
	f := newFixture(financedPurchase(240_000))

	if _, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     150_000,
		Method:     domainPayment.MethodTransfer,
		Actor:      admin(),
	}); err != nil {
		t.Fatalf("first register err: %v", err)
	}

	_, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     150_000,
		Method:     domainPayment.MethodTransfer,
		Actor:      admin(),
	})
	if !errors.Is(err, domainPurchase.ErrInvalidAmount) {
		t.Fatalf("second register err = %v, want ErrInvalidAmount", err)
	}
	if len(f.created) != 1 {
		t.Fatalf("payment rows = %d, want 1", len(f.created))
	}
	if f.purchase.OutstandingBalance != 90_000 {
		t.Fatalf("balance = %v, want 90000", f.purchase.OutstandingBalance)
	}
}

func TestRegister_AdvancerFailureAborts(t *testing.T) {
	f := newFixture(financedPurchase(500))
	f.advancer.err = errors.New("stock exhausted")

	_, err := f.uc.Register(context.Background(), RegisterInput{
		PurchaseID: f.purchase.PurchaseID,
		Amount:     500,
		Method:     domainPayment.MethodCash,
		Actor:      admin(),
	})
	if err == nil {
		t.Fatalf("expected error when completion hook fails")
	}
	if f.saved != 0 {
		t.Fatalf("purchase saved despite failed completion hook")
	}
}

// ----- reads -----

func TestListByPurchase_NotFound(t *testing.T) {
	f := newFixture(nil)
	if _, err := f.uc.ListByPurchase(context.Background(), "missing"); !errors.Is(err, domainPurchase.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListByPurchase_ReturnsHistory(t *testing.T) {
	f := newFixture(financedPurchase(240_000))
	f.payments.ListByPurchaseIDFn = func(ctx context.Context, id string) ([]domainPayment.Payment, error) {
		return []domainPayment.Payment{
			{PaymentID: "m1", PurchaseID: id, Amount: 100},
			{PaymentID: "m2", PurchaseID: id, Amount: 200},
		}, nil
	}
	out, err := f.uc.ListByPurchase(context.Background(), f.purchase.PurchaseID)
	if err != nil {
		t.Fatalf("ListByPurchase err: %v", err)
	}
	if len(out) != 2 || out[0].PaymentID != "m1" || out[1].Amount != 200 {
		t.Fatalf("unexpected list: %+v", out)
	}
}

func TestListByQuotation_ResolvesPurchase(t *testing.T) {
	f := newFixture(financedPurchase(240_000))
	var askedPurchase string
	f.payments.ListByPurchaseIDFn = func(ctx context.Context, id string) ([]domainPayment.Payment, error) {
		askedPurchase = id
		return nil, nil
	}
	if _, err := f.uc.ListByQuotation(context.Background(), f.purchase.QuotationID); err != nil {
		t.Fatalf("ListByQuotation err: %v", err)
	}
	if askedPurchase != f.purchase.PurchaseID {
		t.Fatalf("listed purchase %q, want %q", askedPurchase, f.purchase.PurchaseID)
	}

	if _, err := f.uc.ListByQuotation(context.Background(), "5aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"); !errors.Is(err, domainPurchase.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// ----- Reconcile -----

func TestReconcile(t *testing.T) {
	p := financedPurchase(233320.51) // 6679.49 paid
	f := newFixture(p)

	f.payments.SumByPurchaseIDFn = func(ctx context.Context, id string) (float64, error) {
		return 6679.49, nil
	}
	ok, err := f.uc.Reconcile(context.Background(), p.PurchaseID)
	if err != nil {
		t.Fatalf("Reconcile err: %v", err)
	}
	if !ok {
		t.Fatalf("expected ledger and balance to reconcile")
	}

	f.payments.SumByPurchaseIDFn = func(ctx context.Context, id string) (float64, error) {
		return 5000, nil
	}
	ok, err = f.uc.Reconcile(context.Background(), p.PurchaseID)
	if err != nil {
		t.Fatalf("Reconcile err: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch to be reported")
	}
}

func TestReconcile_NotFound(t *testing.T) {
	f := newFixture(nil)
	if _, err := f.uc.Reconcile(context.Background(), "missing"); !errors.Is(err, domainPurchase.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
