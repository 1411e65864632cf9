package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
)

// DatabaseStore implements Store on top of GORM. The database must be
// opened with TranslateError enabled so duplicate-key violations reach
// us as gorm.ErrDuplicatedKey regardless of driver.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}

// Ambassador operations

func (s *DatabaseStore) CreateAmbassador(a *models.Ambassador) error {
	return translate(s.db.Create(a).Error)
}

func (s *DatabaseStore) GetAmbassadorByID(id uint) (*models.Ambassador, error) {
	var a models.Ambassador
	if err := s.db.First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *DatabaseStore) GetAmbassadorByEmail(email string) (*models.Ambassador, error) {
	var a models.Ambassador
	if err := s.db.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *DatabaseStore) GetAllAmbassadors() ([]*models.Ambassador, error) {
	var ambs []*models.Ambassador
	err := s.db.Order("created_at DESC").Find(&ambs).Error
	return ambs, translate(err)
}

// Driver operations

func (s *DatabaseStore) CreateDriver(d *models.Driver) error {
	return translate(s.db.Create(d).Error)
}

func (s *DatabaseStore) GetDriverByID(id uint) (*models.Driver, error) {
	var d models.Driver
	if err := s.db.Preload("Station").First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *DatabaseStore) GetAllDrivers() ([]*models.Driver, error) {
	var drivers []*models.Driver
	err := s.db.Preload("Ambassador").Preload("Station").
		Order("created_at DESC").Find(&drivers).Error
	return drivers, translate(err)
}

func (s *DatabaseStore) FirstDriverByAmbassador(ambassadorID uint) (*models.Driver, error) {
	var d models.Driver
	err := s.db.Preload("Station").
		Where("ambassador_id = ?", ambassadorID).
		Order("created_at ASC").First(&d).Error
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *DatabaseStore) ListRecentDriversByAmbassador(ambassadorID uint, limit int) ([]*models.Driver, error) {
	var drivers []*models.Driver
	err := s.db.Where("ambassador_id = ?", ambassadorID).
		Order("created_at DESC").Limit(limit).Find(&drivers).Error
	return drivers, translate(err)
}

func (s *DatabaseStore) ListRecentDrivers(limit int) ([]*models.Driver, error) {
	var drivers []*models.Driver
	err := s.db.Preload("Ambassador").
		Order("created_at DESC").Limit(limit).Find(&drivers).Error
	return drivers, translate(err)
}

func (s *DatabaseStore) ListRecentActivatedDrivers(limit int) ([]*models.Driver, error) {
	var drivers []*models.Driver
	err := s.db.Preload("Ambassador").
		Where("activated_at IS NOT NULL").
		Order("activated_at DESC").Limit(limit).Find(&drivers).Error
	return drivers, translate(err)
}

func (s *DatabaseStore) CountDriversByAmbassador(ambassadorID uint, since *time.Time) (int, error) {
	var n int64
	q := s.db.Model(&models.Driver{}).Where("ambassador_id = ?", ambassadorID)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	err := q.Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) CountActiveDriversByAmbassador(ambassadorID uint) (int, error) {
	var n int64
	err := s.db.Model(&models.Driver{}).
		Where("ambassador_id = ?", ambassadorID).
		Where("status IN ? OR activated_at IS NOT NULL", []string{"ACTIF", "ACTIVE"}).
		Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) CountDriversByAmbassadorBetween(ambassadorID uint, start, end time.Time) (int, error) {
	var n int64
	err := s.db.Model(&models.Driver{}).
		Where("ambassador_id = ? AND created_at >= ? AND created_at < ?", ambassadorID, start, end).
		Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) CountDriversCreatedBetween(start, end time.Time) (int, error) {
	var n int64
	err := s.db.Model(&models.Driver{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) CountDriverActivationsBetween(start, end time.Time) (int, error) {
	var n int64
	err := s.db.Model(&models.Driver{}).
		Where("activated_at >= ? AND activated_at < ?", start, end).
		Count(&n).Error
	return int(n), translate(err)
}

// Passenger operations

func (s *DatabaseStore) FindPassengerByPhone(phone string) (*models.Passenger, error) {
	var p models.Passenger
	if err := s.db.Where("phone = ?", phone).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *DatabaseStore) ListRecentPassengersByAmbassador(ambassadorID uint, limit int) ([]*models.Passenger, error) {
	var passengers []*models.Passenger
	err := s.db.Where("ambassador_id = ?", ambassadorID).
		Order("created_at DESC").Limit(limit).Find(&passengers).Error
	return passengers, translate(err)
}

func (s *DatabaseStore) CountPassengersByAmbassador(ambassadorID uint, since *time.Time) (int, error) {
	var n int64
	q := s.db.Model(&models.Passenger{}).Where("ambassador_id = ?", ambassadorID)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	err := q.Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) CountPassengersByAmbassadorBetween(ambassadorID uint, start, end time.Time) (int, error) {
	var n int64
	err := s.db.Model(&models.Passenger{}).
		Where("ambassador_id = ? AND created_at >= ? AND created_at < ?", ambassadorID, start, end).
		Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) CountPassengersCreatedBetween(start, end time.Time) (int, error) {
	var n int64
	err := s.db.Model(&models.Passenger{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&n).Error
	return int(n), translate(err)
}

// Station operations

func (s *DatabaseStore) GetOrCreateStation(name, city string) (*models.Station, error) {
	var st models.Station
	err := s.db.Where(models.Station{Name: name}).
		Attrs(models.Station{City: city, Active: true}).
		FirstOrCreate(&st).Error
	if err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

func (s *DatabaseStore) ListStations() ([]*models.Station, error) {
	var stations []*models.Station
	err := s.db.Order("name ASC").Find(&stations).Error
	return stations, translate(err)
}

// Commission operations

func (s *DatabaseStore) SumCommissionsByAmbassador(ambassadorID uint, statuses []string, since *time.Time) (float64, error) {
	var total float64
	q := s.db.Model(&models.Commission{}).Where("ambassador_id = ?", ambassadorID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, translate(err)
}

func (s *DatabaseStore) SumCommissionsBetween(start, end time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.Commission{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, translate(err)
}

func (s *DatabaseStore) ListRecentCommissions(limit int) ([]*models.Commission, error) {
	var commissions []*models.Commission
	err := s.db.Preload("Ambassador").
		Order("created_at DESC").Limit(limit).Find(&commissions).Error
	return commissions, translate(err)
}

// Transaction operations

func (s *DatabaseStore) CreateTransaction(t *models.Transaction) error {
	return translate(s.db.Create(t).Error)
}

func (s *DatabaseStore) CountTransactionsByDriver(driverID uint, since *time.Time) (int, error) {
	var n int64
	q := s.db.Model(&models.Transaction{}).Where("driver_id = ?", driverID)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	err := q.Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) CountTransactionsByDriverBetween(driverID uint, start, end time.Time) (int, error) {
	var n int64
	err := s.db.Model(&models.Transaction{}).
		Where("driver_id = ? AND created_at >= ? AND created_at < ?", driverID, start, end).
		Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) SumTransactionsByDriver(driverID uint, since *time.Time) (float64, error) {
	var total float64
	q := s.db.Model(&models.Transaction{}).Where("driver_id = ?", driverID)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, translate(err)
}

func (s *DatabaseStore) CountDistinctPassengersByDriver(driverID uint) (int, error) {
	var n int64
	err := s.db.Model(&models.Transaction{}).
		Where("driver_id = ? AND passenger_id IS NOT NULL", driverID).
		Distinct("passenger_id").Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) ListRecentTransactionsByDriver(driverID uint, limit int) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := s.db.Preload("Passenger").
		Where("driver_id = ?", driverID).
		Order("created_at DESC").Limit(limit).Find(&txs).Error
	return txs, translate(err)
}

// Withdrawal operations

func (s *DatabaseStore) CreateWithdrawal(w *models.WithdrawalRequest) error {
	return translate(s.db.Create(w).Error)
}

func (s *DatabaseStore) SumWithdrawalsByEmail(email string, statuses []string) (float64, error) {
	var total float64
	q := s.db.Model(&models.WithdrawalRequest{}).Where("ambassador_email = ?", email)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, translate(err)
}

func (s *DatabaseStore) ListWithdrawalsByEmail(email string, limit int) ([]*models.WithdrawalRequest, error) {
	var ws []*models.WithdrawalRequest
	err := s.db.Where("ambassador_email = ?", email).
		Order("created_at DESC").Limit(limit).Find(&ws).Error
	return ws, translate(err)
}

// Taxi referral operations

func (s *DatabaseStore) CountEnrollmentsByReferrer(driverID uint) (int, error) {
	var n int64
	err := s.db.Model(&models.TaxiEnrollment{}).
		Where("referrer_driver_id = ?", driverID).
		Count(&n).Error
	return int(n), translate(err)
}

func (s *DatabaseStore) ListEnrollmentsByReferrer(driverID uint, limit int) ([]*models.TaxiEnrollment, error) {
	var enrollments []*models.TaxiEnrollment
	err := s.db.Preload("Recruit").
		Where("referrer_driver_id = ?", driverID).
		Order("created_at DESC").Limit(limit).Find(&enrollments).Error
	return enrollments, translate(err)
}

// Composite enrollment operations

func (s *DatabaseStore) CreateDriverWithCommission(d *models.Driver, c *models.Commission) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		c.RecruitID = d.ID
		return tx.Create(c).Error
	})
	return translate(err)
}

func (s *DatabaseStore) CreatePassengerWithCommission(p *models.Passenger, c *models.Commission) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		c.RecruitID = p.ID
		return tx.Create(c).Error
	})
	return translate(err)
}

func (s *DatabaseStore) CreateDriverWithEnrollment(d *models.Driver, referrerDriverID uint, c *models.Commission) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		enrollment := &models.TaxiEnrollment{
			ReferrerDriverID: referrerDriverID,
			RecruitDriverID:  d.ID,
		}
		if err := tx.Create(enrollment).Error; err != nil {
			return err
		}
		if c != nil {
			c.RecruitID = d.ID
			return tx.Create(c).Error
		}
		return nil
	})
	return translate(err)
}

// Challenge operations

func (s *DatabaseStore) CreateChallenge(c *models.Challenge) error {
	return translate(s.db.Create(c).Error)
}

func (s *DatabaseStore) ListActiveChallenges(now time.Time) ([]*models.Challenge, error) {
	var challenges []*models.Challenge
	err := s.db.Where("active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Order("ends_at ASC").Find(&challenges).Error
	return challenges, translate(err)
}

func (s *DatabaseStore) CreateParticipation(p *models.ChallengeParticipation) error {
	return translate(s.db.Create(p).Error)
}

func (s *DatabaseStore) ListParticipationsByAmbassador(ambassadorID uint) ([]*models.ChallengeParticipation, error) {
	var participations []*models.ChallengeParticipation
	err := s.db.Where("ambassador_id = ?", ambassadorID).Find(&participations).Error
	return participations, translate(err)
}

// Objective config

func (s *DatabaseStore) GetObjectiveConfig() (*models.ObjectiveConfig, error) {
	var cfg models.ObjectiveConfig
	defaults := models.ObjectiveConfig{}
	if err := defaults.SetTiers(models.DefaultTiers()); err != nil {
		return nil, err
	}
	err := s.db.Where(models.ObjectiveConfig{Model: gorm.Model{ID: 1}}).
		Attrs(defaults).FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cfg, nil
}

func (s *DatabaseStore) SaveObjectiveConfig(cfg *models.ObjectiveConfig) error {
	return translate(s.db.Save(cfg).Error)
}

// Account operations

func (s *DatabaseStore) CreateAccount(a *models.Account) error {
	return translate(s.db.Create(a).Error)
}

func (s *DatabaseStore) GetAccountByEmail(email string) (*models.Account, error) {
	var a models.Account
	if err := s.db.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *DatabaseStore) UpdateAccount(a *models.Account) error {
	return translate(s.db.Save(a).Error)
}
