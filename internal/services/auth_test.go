package services

import (
	"strings"
	"testing"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
)

func newAuthFixture(t *testing.T) (*AuthService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	cfg := testConfig()
	enrollment := NewEnrollmentService(store, cfg, nil)
	return NewAuthService(store, cfg, enrollment), store
}

func TestRegisterAmbassadorAndLogin(t *testing.T) {
	auth, store := newAuthFixture(t)

	result, err := auth.RegisterAmbassador(&models.AmbassadorRegistration{
		FirstName: "Christale",
		LastName:  "Kibangou",
		Email:     "Christale@TaxiConnect.cg",
		Phone:     "+242060000001",
		Password:  "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Role != models.RoleAmbassador {
		t.Errorf("role = %q, want %q", result.Role, models.RoleAmbassador)
	}
	if result.Email != "christale@taxiconnect.cg" {
		t.Errorf("email not lowercased: %q", result.Email)
	}
	if result.Token == "" {
		t.Error("empty token")
	}

	// The BA profile must exist and be linked.
	amb, err := store.GetAmbassadorByEmail("christale@taxiconnect.cg")
	if err != nil {
		t.Fatalf("ambassador profile: %v", err)
	}
	if amb.Phone != "+242060000001" {
		t.Errorf("ambassador phone = %q", amb.Phone)
	}

	login, err := auth.Login(&models.Credentials{Email: "christale@taxiconnect.cg", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := auth.ParseToken(login.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != models.RoleAmbassador || claims.Email != "christale@taxiconnect.cg" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterAmbassadorWithoutPhoneGetsPlaceholder(t *testing.T) {
	auth, store := newAuthFixture(t)

	if _, err := auth.RegisterAmbassador(&models.AmbassadorRegistration{
		FirstName: "Grace",
		LastName:  "Loemba",
		Email:     "grace@taxiconnect.cg",
		Password:  "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	amb, err := store.GetAmbassadorByEmail("grace@taxiconnect.cg")
	if err != nil {
		t.Fatalf("ambassador profile: %v", err)
	}
	if !strings.HasPrefix(amb.Phone, "TEMP-") {
		t.Errorf("phone = %q, want TEMP- placeholder", amb.Phone)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	auth, _ := newAuthFixture(t)

	reg := &models.AmbassadorRegistration{
		FirstName: "Christale", LastName: "Kibangou",
		Email: "christale@taxiconnect.cg", Phone: "+242060000001", Password: "secret123",
	}
	if _, err := auth.RegisterAmbassador(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	reg2 := &models.AmbassadorRegistration{
		FirstName: "Autre", LastName: "Personne",
		Email: "christale@taxiconnect.cg", Phone: "+242060000099", Password: "secret123",
	}
	if _, err := auth.RegisterAmbassador(reg2); KindOf(err) != KindConflict {
		t.Errorf("duplicate register kind = %v, want conflict", KindOf(err))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuthFixture(t)

	if _, err := auth.RegisterAmbassador(&models.AmbassadorRegistration{
		FirstName: "Christale", LastName: "Kibangou",
		Email: "christale@taxiconnect.cg", Phone: "+242060000001", Password: "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Login(&models.Credentials{Email: "christale@taxiconnect.cg", Password: "wrong"}); KindOf(err) != KindValidation {
		t.Errorf("wrong password kind = %v, want validation", KindOf(err))
	}
	if _, err := auth.Login(&models.Credentials{Email: "nobody@taxiconnect.cg", Password: "secret123"}); KindOf(err) != KindValidation {
		t.Errorf("unknown email kind = %v, want validation", KindOf(err))
	}
}

func TestRegisterTaxi(t *testing.T) {
	auth, store := newAuthFixture(t)

	result, err := auth.RegisterTaxi(&models.TaxiRegistration{
		FirstName: "Jean",
		LastName:  "Mboungou",
		Email:     "jean@taxiconnect.cg",
		Phone:     "+242060000002",
		Password:  "secret123",
		Plate:     "kg-45 ab",
		Zone:      "Brazzaville",
	})
	if err != nil {
		t.Fatalf("register taxi: %v", err)
	}
	if result.Role != models.RoleTaxi {
		t.Errorf("role = %q, want %q", result.Role, models.RoleTaxi)
	}

	account, err := store.GetAccountByEmail("jean@taxiconnect.cg")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if account.DriverID == nil {
		t.Fatal("account not linked to a driver profile")
	}
	driver, err := store.GetDriverByID(*account.DriverID)
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	if driver.Plate != "KG45AB" {
		t.Errorf("plate = %q, want KG45AB", driver.Plate)
	}
}

func TestRegisterTaxiInvalidPlate(t *testing.T) {
	auth, _ := newAuthFixture(t)
	_, err := auth.RegisterTaxi(&models.TaxiRegistration{
		FirstName: "Jean", LastName: "Mboungou",
		Email: "jean@taxiconnect.cg", Phone: "+242060000002",
		Password: "secret123", Plate: "AB1", Zone: "Brazzaville",
	})
	if KindOf(err) != KindValidation {
		t.Errorf("invalid plate kind = %v, want validation", KindOf(err))
	}
}

func TestSeedManagerIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	cfg := testConfig()
	cfg.ManagerEmail = "manager@taxiconnect.cg"
	cfg.ManagerPassword = "admin123"
	cfg.ManagerName = "Patron Central"
	auth := NewAuthService(store, cfg, NewEnrollmentService(store, cfg, nil))

	if err := auth.SeedManager(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := auth.SeedManager(); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	account, err := store.GetAccountByEmail("manager@taxiconnect.cg")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if account.Role != models.RoleManager {
		t.Errorf("role = %q, want %q", account.Role, models.RoleManager)
	}

	result, err := auth.Login(&models.Credentials{Email: "manager@taxiconnect.cg", Password: "admin123"})
	if err != nil {
		t.Fatalf("manager login: %v", err)
	}
	if result.Role != models.RoleManager {
		t.Errorf("login role = %q", result.Role)
	}
}
