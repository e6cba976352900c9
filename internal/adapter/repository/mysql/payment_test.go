package mysql

import (
	"context"
	"testing"
	"time"

	domain "autocredit-backend/internal/domain/payment"
	"autocredit-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type paymentSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	PaymentID    string    `gorm:"size:32;uniqueIndex;column:payment_id"`
	PurchaseID   string    `gorm:"size:32;column:purchase_id"`
	ClientID     string    `gorm:"size:32;column:client_id"`
	Amount       float64   `gorm:"column:amount"`
	Method       string    `gorm:"column:method"`
	Notes        string    `gorm:"column:notes"`
	RegisteredBy string    `gorm:"column:registered_by"`
	Status       string    `gorm:"column:status"`
	RegisteredAt time.Time `gorm:"column:registered_at"`
}

func (paymentSQLite) TableName() string { return "payments" }

func openPaymentDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&paymentSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makePayment(purchaseID, clientID string, amount float64) *domain.Payment {
	return &domain.Payment{
		PaymentID:    id.NewID32(),
		PurchaseID:   purchaseID,
		ClientID:     clientID,
		Amount:       amount,
		Method:       domain.MethodTransfer,
		RegisteredBy: id.NewID32(),
		Status:       domain.StatusRegistered,
	}
}

func TestPaymentCreateAndListByPurchase(t *testing.T) {
	db := openPaymentDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	purchaseID := id.NewID32()
	client := id.NewID32()
	first := makePayment(purchaseID, client, 6679.49)
	second := makePayment(purchaseID, client, 100)
	other := makePayment(id.NewID32(), client, 50)
	for _, p := range []*domain.Payment{first, second, other} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByPurchaseID(ctx, purchaseID)
	if err != nil {
		t.Fatalf("ListByPurchaseID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("list length = %d, want 2", len(got))
	}
	// chronological, ties broken by insertion order
	if got[0].PaymentID != first.PaymentID || got[1].PaymentID != second.PaymentID {
		t.Errorf("unexpected order: %s, %s", got[0].PaymentID, got[1].PaymentID)
	}
}

func TestPaymentListByClient_NewestFirst(t *testing.T) {
	db := openPaymentDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	client := id.NewID32()
	first := makePayment(id.NewID32(), client, 100)
	second := makePayment(id.NewID32(), client, 200)
	for _, p := range []*domain.Payment{first, second} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByClientID(ctx, client)
	if err != nil {
		t.Fatalf("ListByClientID: %v", err)
	}
	if len(got) != 2 || got[0].PaymentID != second.PaymentID {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestPaymentSumByPurchase(t *testing.T) {
	db := openPaymentDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	purchaseID := id.NewID32()
	client := id.NewID32()
	for _, amount := range []float64{6679.49, 6679.49, 100_000} {
		if err := repo.Create(ctx, makePayment(purchaseID, client, amount)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	sum, err := repo.SumByPurchaseID(ctx, purchaseID)
	if err != nil {
		t.Fatalf("SumByPurchaseID: %v", err)
	}
	if sum < 113358.97 || sum > 113358.99 {
		t.Errorf("sum = %v, want ≈113358.98", sum)
	}

	// no rows → zero, not an error
	sum, err = repo.SumByPurchaseID(ctx, id.NewID32())
	if err != nil {
		t.Fatalf("SumByPurchaseID empty: %v", err)
	}
	if sum != 0 {
		t.Errorf("empty sum = %v, want 0", sum)
	}
}
