package services

import (
	"errors"
	"strings"

	"github.com/christale-kib/taxiconnect-backend/internal/config"
	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
)

// EnrollmentService records new driver, passenger and taxi-referral
// rows. Every successful enrollment commits together with its
// commission record, never separately.
type EnrollmentService struct {
	store    storage.Store
	cfg      *config.Config
	notifier *NotifyService
}

func NewEnrollmentService(store storage.Store, cfg *config.Config, notifier *NotifyService) *EnrollmentService {
	return &EnrollmentService{store: store, cfg: cfg, notifier: notifier}
}

// NormalizePlate uppercases the registration number, strips everything
// outside A-Z and 0-9, and requires exactly six characters. Accented
// letters are stripped rather than counted.
func NormalizePlate(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	plate := b.String()
	if len(plate) != 6 {
		return "", validationf("vehicleNumber", "Immatriculation invalide : 6 caractères alphanumériques requis.")
	}
	return plate, nil
}

// ResolveZone maps a zone name onto its station row, creating the row
// on first use. Resolution is idempotent by name.
func (s *EnrollmentService) ResolveZone(zone string) (*models.Station, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return nil, validationf("zone", "Zone obligatoire.")
	}
	if !s.cfg.KnownZone(zone) {
		return nil, validationf("zone", "Zone inconnue : %s.", zone)
	}
	return s.store.GetOrCreateStation(zone, zone)
}

// splitName splits "Prenom1 Prenom2 Nom" into first and last name the
// way the enrollment forms expect: last word is the family name.
func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return full, parts[0]
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

func vehicleMake(model string) string {
	model = strings.TrimSpace(model)
	if model == "" || model == "N/A" {
		return "N/A"
	}
	return strings.Fields(model)[0]
}

func (s *EnrollmentService) buildDriver(ambassadorID uint, req *models.DriverEnrollment) (*models.Driver, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, validationf("phone", "Téléphone obligatoire.")
	}

	station, err := s.ResolveZone(req.Zone)
	if err != nil {
		return nil, err
	}

	plate, err := NormalizePlate(req.VehicleNo)
	if err != nil {
		return nil, err
	}

	first, last := splitName(req.Name)
	model := strings.TrimSpace(req.VehicleModel)
	if model == "" {
		model = "N/A"
	}

	stationID := station.ID
	return &models.Driver{
		AmbassadorID: ambassadorID,
		StationID:    &stationID,
		FirstName:    first,
		LastName:     last,
		Address:      strings.TrimSpace(req.Address),
		Phone:        phone,
		Email:        strings.TrimSpace(req.Email),
		Plate:        plate,
		VehicleMake:  vehicleMake(model),
		VehicleModel: model,
		VehicleColor: "N/A",
		Status:       models.DriverStatusEnrolled,
	}, nil
}

// EnrollDriver records a driver under the given ambassador and credits
// the fixed driver-enrollment commission in the same transaction.
func (s *EnrollmentService) EnrollDriver(amb *models.Ambassador, req *models.DriverEnrollment) (*models.Driver, error) {
	driver, err := s.buildDriver(amb.ID, req)
	if err != nil {
		return nil, err
	}

	commission := &models.Commission{
		AmbassadorID: amb.ID,
		Type:         models.CommissionEnrollDriver,
		Amount:       s.cfg.DriverCommission,
		RecruitType:  "CHAUFFEUR",
		Status:       models.CommissionStatusPending,
	}

	if err := s.store.CreateDriverWithCommission(driver, commission); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, conflictf("Téléphone ou immatriculation déjà utilisés.")
		}
		return nil, err
	}

	s.notifier.EnrollmentWelcome(driver.Phone, driver.FullName())
	return driver, nil
}

// EnrollPassenger records a passenger under the given ambassador with
// its passenger-enrollment commission.
func (s *EnrollmentService) EnrollPassenger(amb *models.Ambassador, req *models.PassengerEnrollment) (*models.Passenger, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, validationf("phone", "Téléphone obligatoire.")
	}

	first, last := splitName(req.Name)
	passenger := &models.Passenger{
		AmbassadorID: amb.ID,
		FirstName:    first,
		LastName:     last,
		Phone:        phone,
		Email:        strings.TrimSpace(req.Email),
		Status:       "INSCRIT",
	}

	commission := &models.Commission{
		AmbassadorID: amb.ID,
		Type:         models.CommissionEnrollPassenger,
		Amount:       s.cfg.PassengerCommission,
		RecruitType:  "PASSAGER",
		Status:       models.CommissionStatusPending,
	}

	if err := s.store.CreatePassengerWithCommission(passenger, commission); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, conflictf("Téléphone passager déjà utilisé.")
		}
		return nil, err
	}

	s.notifier.EnrollmentWelcome(passenger.Phone, passenger.FullName())
	return passenger, nil
}

// EnrollPeerDriver records a driver recruited by another driver. The
// recruit joins the referrer's ambassador, the referral edge is
// traced, and the taxi-referral commission is credited in the same
// transaction.
func (s *EnrollmentService) EnrollPeerDriver(referrer *models.Driver, req *models.DriverEnrollment) (*models.Driver, error) {
	recruit, err := s.buildDriver(referrer.AmbassadorID, req)
	if err != nil {
		return nil, err
	}

	commission := &models.Commission{
		AmbassadorID: referrer.AmbassadorID,
		Type:         models.CommissionEnrollTaxi,
		Amount:       s.cfg.PeerCommission,
		RecruitType:  "CHAUFFEUR",
		Status:       models.CommissionStatusPending,
	}

	if err := s.store.CreateDriverWithEnrollment(recruit, referrer.ID, commission); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, conflictf("Téléphone ou immatriculation déjà utilisés.")
		}
		return nil, err
	}

	s.notifier.EnrollmentWelcome(recruit.Phone, recruit.FullName())
	return recruit, nil
}
