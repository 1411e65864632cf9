package services

import (
	"errors"
	"testing"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
)

func newWithdrawalFixture(t *testing.T) (*WithdrawalService, *storage.MemoryStore, *models.Ambassador) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc := NewWithdrawalService(store, testConfig(), nil)

	amb := &models.Ambassador{FirstName: "Christale", LastName: "Kibangou", Email: "christale@taxiconnect.cg", Phone: "+242060000001"}
	if err := store.CreateAmbassador(amb); err != nil {
		t.Fatalf("create ambassador: %v", err)
	}
	return svc, store, amb
}

func seedCommission(t *testing.T, store *storage.MemoryStore, ambID uint, amount float64, status string) {
	t.Helper()
	err := store.CreateCommission(&models.Commission{
		AmbassadorID: ambID,
		Type:         models.CommissionEnrollDriver,
		Amount:       amount,
		Status:       status,
	})
	if err != nil {
		t.Fatalf("seed commission: %v", err)
	}
}

func TestAvailableBalanceCountsOnlyPayableStatuses(t *testing.T) {
	svc, store, amb := newWithdrawalFixture(t)

	seedCommission(t, store, amb.ID, 5000, models.CommissionStatusValidated)
	seedCommission(t, store, amb.ID, 5000, models.CommissionStatusPaid)
	// Pending money is not withdrawable.
	seedCommission(t, store, amb.ID, 3000, models.CommissionStatusPending)

	available, err := svc.AvailableBalance(amb)
	if err != nil {
		t.Fatalf("available balance: %v", err)
	}
	if available.String() != "10000" {
		t.Errorf("available = %s, want 10000", available)
	}
}

func TestCreateWithdrawalReservesBalance(t *testing.T) {
	svc, store, amb := newWithdrawalFixture(t)

	seedCommission(t, store, amb.ID, 10000, models.CommissionStatusValidated)

	ref, err := svc.Create(amb, 6000, "+242060000001")
	if err != nil {
		t.Fatalf("first withdrawal: %v", err)
	}
	if len(ref) != 12 || ref[:4] != "RET-" {
		t.Errorf("reference = %q, want RET-XXXXXXXX", ref)
	}

	available, err := svc.AvailableBalance(amb)
	if err != nil {
		t.Fatalf("available balance: %v", err)
	}
	if available.String() != "4000" {
		t.Errorf("available after withdrawal = %s, want 4000", available)
	}
}

func TestCreateWithdrawalInsufficientBalance(t *testing.T) {
	svc, store, amb := newWithdrawalFixture(t)

	seedCommission(t, store, amb.ID, 10000, models.CommissionStatusValidated)
	if _, err := svc.Create(amb, 3000, "+242060000001"); KindOf(err) != KindValidation {
		// 3000 is below the 5000 minimum.
		t.Fatalf("below-minimum kind = %v, want validation", KindOf(err))
	}

	// A prior pending withdrawal of 3000 reserves part of the balance.
	if err := store.CreateWithdrawal(&models.WithdrawalRequest{
		AmbassadorEmail: amb.Email,
		Amount:          3000,
		Phone:           "+242060000001",
		Status:          models.WithdrawalStatusPending,
		Reference:       "RET-SEEDED01",
	}); err != nil {
		t.Fatalf("seed withdrawal: %v", err)
	}

	// 10000 earned minus 3000 reserved leaves 7000; asking 8000 fails.
	_, err := svc.Create(amb, 8000, "+242060000001")
	if KindOf(err) != KindInsufficientBalance {
		t.Fatalf("kind = %v, want insufficient balance", KindOf(err))
	}
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatal("expected DomainError")
	}
	if de.Message != "Solde insuffisant. Disponible : 7000 XAF" {
		t.Errorf("message = %q", de.Message)
	}
	if de.Available.String() != "7000" || de.Requested.String() != "8000" {
		t.Errorf("available/requested = %s/%s", de.Available, de.Requested)
	}

	// 7000 exactly still fits.
	if _, err := svc.Create(amb, 7000, "+242060000001"); err != nil {
		t.Errorf("boundary withdrawal failed: %v", err)
	}
}

func TestCreateWithdrawalValidation(t *testing.T) {
	svc, store, amb := newWithdrawalFixture(t)
	seedCommission(t, store, amb.ID, 10000, models.CommissionStatusValidated)

	if _, err := svc.Create(amb, 6000, ""); KindOf(err) != KindValidation {
		t.Errorf("empty phone kind = %v, want validation", KindOf(err))
	}
	if _, err := svc.Create(amb, -5, "+242060000001"); KindOf(err) != KindValidation {
		t.Errorf("negative amount kind = %v, want validation", KindOf(err))
	}
}

func TestWithdrawalHistoryNewestFirst(t *testing.T) {
	svc, store, amb := newWithdrawalFixture(t)
	seedCommission(t, store, amb.ID, 20000, models.CommissionStatusPaid)

	if _, err := svc.Create(amb, 5000, "+242060000001"); err != nil {
		t.Fatalf("withdrawal: %v", err)
	}
	if _, err := svc.Create(amb, 6000, "+242060000001"); err != nil {
		t.Fatalf("withdrawal: %v", err)
	}

	items, err := svc.History(amb)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("history size = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.Status != models.WithdrawalStatusPending {
			t.Errorf("status = %q, want %q", item.Status, models.WithdrawalStatusPending)
		}
	}
}
