package services

import (
	"testing"
	"time"

	"github.com/christale-kib/taxiconnect-backend/internal/config"
	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		Zones:                config.DefaultZones,
		DriverCommission:     5000,
		PassengerCommission:  500,
		PeerCommission:       2000,
		WithdrawalMinimum:    5000,
		DefaultMonthlyTarget: 100,
		JWTSecret:            "test-secret",
		JWTExpiry:            time.Hour,
	}
}

func newEnrollmentFixture(t *testing.T) (*EnrollmentService, *storage.MemoryStore, *models.Ambassador) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc := NewEnrollmentService(store, testConfig(), nil)

	amb := &models.Ambassador{FirstName: "Christale", LastName: "Kibangou", Email: "christale@taxiconnect.cg", Phone: "+242060000001"}
	if err := store.CreateAmbassador(amb); err != nil {
		t.Fatalf("create ambassador: %v", err)
	}
	return svc, store, amb
}

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ab-12 cd", "AB12CD"},
		{"AB12CD", "AB12CD"},
		{"  a b 1 2 c d  ", "AB12CD"},
		{"ab.12.cd", "AB12CD"},
		{"éAB12CD", "AB12CD"},
	}
	for _, c := range cases {
		got, err := NormalizePlate(c.in)
		if err != nil {
			t.Errorf("NormalizePlate(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizePlateRejectsWrongLength(t *testing.T) {
	for _, in := range []string{"AB1", "AB12CDE", "", "------", "ÉB12CD"} {
		if _, err := NormalizePlate(in); err == nil {
			t.Errorf("NormalizePlate(%q) succeeded, want error", in)
		} else if KindOf(err) != KindValidation {
			t.Errorf("NormalizePlate(%q) kind = %v, want validation", in, KindOf(err))
		}
	}
}

func TestResolveZoneIdempotent(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(t)

	first, err := svc.ResolveZone("Oyo")
	if err != nil {
		t.Fatalf("resolve zone: %v", err)
	}
	second, err := svc.ResolveZone("Oyo")
	if err != nil {
		t.Fatalf("resolve zone again: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("station ids differ: %d vs %d", first.ID, second.ID)
	}
}

func TestResolveZoneUnknown(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(t)
	if _, err := svc.ResolveZone("Atlantis"); KindOf(err) != KindValidation {
		t.Errorf("unknown zone kind = %v, want validation", KindOf(err))
	}
	if _, err := svc.ResolveZone(""); KindOf(err) != KindValidation {
		t.Errorf("empty zone kind = %v, want validation", KindOf(err))
	}
}

func TestEnrollDriverCreatesCommission(t *testing.T) {
	svc, store, amb := newEnrollmentFixture(t)

	driver, err := svc.EnrollDriver(amb, &models.DriverEnrollment{
		Name:      "Jean Pierre Mboungou",
		Phone:     "+242060000002",
		Zone:      "Brazzaville",
		VehicleNo: "kg-45 ab",
	})
	if err != nil {
		t.Fatalf("enroll driver: %v", err)
	}
	if driver.Plate != "KG45AB" {
		t.Errorf("plate = %q, want KG45AB", driver.Plate)
	}
	if driver.FirstName != "Jean Pierre" || driver.LastName != "Mboungou" {
		t.Errorf("name split = %q / %q", driver.FirstName, driver.LastName)
	}

	total, err := store.SumCommissionsByAmbassador(amb.ID, nil, nil)
	if err != nil {
		t.Fatalf("sum commissions: %v", err)
	}
	if total != 5000 {
		t.Errorf("commission total = %v, want 5000", total)
	}
}

func TestEnrollDriverDuplicateLeavesNoCommission(t *testing.T) {
	svc, store, amb := newEnrollmentFixture(t)

	req := &models.DriverEnrollment{
		Name:      "Jean Mboungou",
		Phone:     "+242060000002",
		Zone:      "Brazzaville",
		VehicleNo: "KG45AB",
	}
	if _, err := svc.EnrollDriver(amb, req); err != nil {
		t.Fatalf("first enrollment: %v", err)
	}

	// Same plate, different phone: must conflict and credit nothing new.
	dup := &models.DriverEnrollment{
		Name:      "Paul Okemba",
		Phone:     "+242060000003",
		Zone:      "Brazzaville",
		VehicleNo: "kg 45 ab",
	}
	_, err := svc.EnrollDriver(amb, dup)
	if KindOf(err) != KindConflict {
		t.Fatalf("duplicate enrollment kind = %v, want conflict", KindOf(err))
	}

	total, err := store.SumCommissionsByAmbassador(amb.ID, nil, nil)
	if err != nil {
		t.Fatalf("sum commissions: %v", err)
	}
	if total != 5000 {
		t.Errorf("commission total after failed enrollment = %v, want 5000", total)
	}
}

func TestEnrollPassenger(t *testing.T) {
	svc, store, amb := newEnrollmentFixture(t)

	passenger, err := svc.EnrollPassenger(amb, &models.PassengerEnrollment{
		Name:  "Grace Loemba",
		Phone: "+242060000010",
	})
	if err != nil {
		t.Fatalf("enroll passenger: %v", err)
	}
	if passenger.FirstName != "Grace" || passenger.LastName != "Loemba" {
		t.Errorf("name split = %q / %q", passenger.FirstName, passenger.LastName)
	}

	if _, err := svc.EnrollPassenger(amb, &models.PassengerEnrollment{
		Name:  "Autre Personne",
		Phone: "+242060000010",
	}); KindOf(err) != KindConflict {
		t.Errorf("duplicate passenger kind = %v, want conflict", KindOf(err))
	}

	total, _ := store.SumCommissionsByAmbassador(amb.ID, nil, nil)
	if total != 500 {
		t.Errorf("commission total = %v, want 500", total)
	}
}

func TestEnrollPeerDriver(t *testing.T) {
	svc, store, amb := newEnrollmentFixture(t)

	referrer, err := svc.EnrollDriver(amb, &models.DriverEnrollment{
		Name:      "Jean Mboungou",
		Phone:     "+242060000002",
		Zone:      "Brazzaville",
		VehicleNo: "KG45AB",
	})
	if err != nil {
		t.Fatalf("enroll referrer: %v", err)
	}

	recruit, err := svc.EnrollPeerDriver(referrer, &models.DriverEnrollment{
		Name:      "Paul Okemba",
		Phone:     "+242060000003",
		Zone:      "Brazzaville",
		VehicleNo: "KG46AB",
	})
	if err != nil {
		t.Fatalf("enroll peer: %v", err)
	}
	if recruit.AmbassadorID != amb.ID {
		t.Errorf("recruit ambassador = %d, want %d", recruit.AmbassadorID, amb.ID)
	}

	n, err := store.CountEnrollmentsByReferrer(referrer.ID)
	if err != nil {
		t.Fatalf("count enrollments: %v", err)
	}
	if n != 1 {
		t.Errorf("referral count = %d, want 1", n)
	}

	// 5000 for the direct enrollment plus 2000 for the peer referral.
	total, _ := store.SumCommissionsByAmbassador(amb.ID, nil, nil)
	if total != 7000 {
		t.Errorf("commission total = %v, want 7000", total)
	}
}
