package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/christale-kib/taxiconnect-backend/internal/config"
	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
)

// Claims carried inside every access token.
type Claims struct {
	AccountID uint   `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and token issuance.
type AuthService struct {
	store      storage.Store
	cfg        *config.Config
	enrollment *EnrollmentService
}

func NewAuthService(store storage.Store, cfg *config.Config, enrollment *EnrollmentService) *AuthService {
	return &AuthService{store: store, cfg: cfg, enrollment: enrollment}
}

// AuthResult is the login/registration response payload.
type AuthResult struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *AuthService) issueToken(account *models.Account) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return validationf("email", "Email obligatoire.")
	}
	if len(password) < 6 {
		return validationf("password", "Mot de passe trop court (6 caractères minimum).")
	}
	return nil
}

// RegisterAmbassador creates the account and its BA profile, then
// signs the new user in.
func (s *AuthService) RegisterAmbassador(req *models.AmbassadorRegistration) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateCredentials(email, req.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, validationf("nom", "Nom et prénom obligatoires.")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	ambassador, err := s.ensureAmbassador(email, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         models.RoleAmbassador,
		AmbassadorID: &ambassador.ID,
	}
	if err := s.store.CreateAccount(account); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, conflictf("Un compte existe déjà avec cet email.")
		}
		return nil, err
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Name: account.FullName(), Email: account.Email, Role: account.Role}, nil
}

// ensureAmbassador fetches the BA profile for an email, creating it
// when missing. Registration may race an earlier enrollment that
// already created the profile, so get-or-create by email.
func (s *AuthService) ensureAmbassador(email, firstName, lastName, phone string) (*models.Ambassador, error) {
	existing, err := s.store.GetAmbassadorByEmail(email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	phone = strings.TrimSpace(phone)
	ambassador := &models.Ambassador{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     email,
		Phone:     phone,
	}
	if ambassador.Phone == "" {
		// Placeholder that satisfies the unique phone index until the
		// BA fills in a real number.
		ambassador.Phone = fmt.Sprintf("TEMP-%d", time.Now().UnixNano())
	}
	if err := s.store.CreateAmbassador(ambassador); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, conflictf("Téléphone déjà utilisé par un autre ambassadeur.")
		}
		return nil, err
	}
	return ambassador, nil
}

// RegisterTaxi creates a driver profile plus its account and signs the
// driver in. Self-registered drivers have no referring ambassador.
func (s *AuthService) RegisterTaxi(req *models.TaxiRegistration) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateCredentials(email, req.Password); err != nil {
		return nil, err
	}

	plate, err := NormalizePlate(req.Plate)
	if err != nil {
		return nil, err
	}
	station, err := s.enrollment.ResolveZone(req.Zone)
	if err != nil {
		return nil, err
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, validationf("telephone", "Téléphone obligatoire.")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	model := strings.TrimSpace(req.VehicleModel)
	if model == "" {
		model = "N/A"
	}
	stationID := station.ID
	driver := &models.Driver{
		StationID:    &stationID,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        phone,
		Email:        email,
		Plate:        plate,
		VehicleMake:  vehicleMake(model),
		VehicleModel: model,
		VehicleColor: "N/A",
		Status:       models.DriverStatusEnrolled,
	}
	if err := s.store.CreateDriver(driver); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, conflictf("Téléphone ou immatriculation déjà utilisés.")
		}
		return nil, err
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    driver.FirstName,
		LastName:     driver.LastName,
		Role:         models.RoleTaxi,
		DriverID:     &driver.ID,
	}
	if err := s.store.CreateAccount(account); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, conflictf("Un compte existe déjà avec cet email.")
		}
		return nil, err
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Name: account.FullName(), Email: account.Email, Role: account.Role}, nil
}

// Login verifies the credentials and issues a fresh token.
func (s *AuthService) Login(creds *models.Credentials) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	account, err := s.store.GetAccountByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, validationf("email", "Email ou mot de passe incorrect.")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(creds.Password)) != nil {
		return nil, validationf("password", "Email ou mot de passe incorrect.")
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Name: account.FullName(), Email: account.Email, Role: account.Role}, nil
}

// AmbassadorForAccount resolves the BA profile behind an account,
// creating it lazily for accounts registered before the profile link
// existed.
func (s *AuthService) AmbassadorForAccount(account *models.Account) (*models.Ambassador, error) {
	if account.AmbassadorID != nil {
		amb, err := s.store.GetAmbassadorByID(*account.AmbassadorID)
		if err == nil {
			return amb, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}

	amb, err := s.ensureAmbassador(account.Email, account.FirstName, account.LastName, "")
	if err != nil {
		return nil, err
	}
	account.AmbassadorID = &amb.ID
	if err := s.store.UpdateAccount(account); err != nil {
		return nil, err
	}
	return amb, nil
}

// DriverForAccount resolves the driver profile behind a taxi account.
func (s *AuthService) DriverForAccount(account *models.Account) (*models.Driver, error) {
	if account.DriverID == nil {
		return nil, notFoundf("Profil chauffeur introuvable.")
	}
	return s.store.GetDriverByID(*account.DriverID)
}

// AccountByEmail loads the principal named by a token.
func (s *AuthService) AccountByEmail(email string) (*models.Account, error) {
	return s.store.GetAccountByEmail(email)
}

// SeedManager creates the manager account from the environment on
// boot. A no-op when credentials are unset or the account exists.
func (s *AuthService) SeedManager() error {
	if s.cfg.ManagerEmail == "" || s.cfg.ManagerPassword == "" {
		return nil
	}
	email := strings.ToLower(strings.TrimSpace(s.cfg.ManagerEmail))
	if _, err := s.store.GetAccountByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := hashPassword(s.cfg.ManagerPassword)
	if err != nil {
		return err
	}
	first, last := splitName(s.cfg.ManagerName)
	account := &models.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Role:         models.RoleManager,
	}
	return s.store.CreateAccount(account)
}
