package storage

import (
	"errors"
	"time"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
)

// ErrDuplicateKey is returned when an insert violates a uniqueness
// constraint (phone, plate, email, reference, referral pair). Services
// translate it into a domain-level conflict.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the services need. The read
// side is deliberately made of narrow count/sum/list calls: the
// reporting engine recomputes everything from these on each request.
type Store interface {
	// Ambassador operations
	CreateAmbassador(a *models.Ambassador) error
	GetAmbassadorByID(id uint) (*models.Ambassador, error)
	GetAmbassadorByEmail(email string) (*models.Ambassador, error)
	GetAllAmbassadors() ([]*models.Ambassador, error)

	// Driver operations
	CreateDriver(d *models.Driver) error
	GetDriverByID(id uint) (*models.Driver, error)
	GetAllDrivers() ([]*models.Driver, error)
	FirstDriverByAmbassador(ambassadorID uint) (*models.Driver, error)
	ListRecentDriversByAmbassador(ambassadorID uint, limit int) ([]*models.Driver, error)
	ListRecentDrivers(limit int) ([]*models.Driver, error)
	ListRecentActivatedDrivers(limit int) ([]*models.Driver, error)
	CountDriversByAmbassador(ambassadorID uint, since *time.Time) (int, error)
	CountActiveDriversByAmbassador(ambassadorID uint) (int, error)
	CountDriversByAmbassadorBetween(ambassadorID uint, start, end time.Time) (int, error)
	CountDriversCreatedBetween(start, end time.Time) (int, error)
	CountDriverActivationsBetween(start, end time.Time) (int, error)

	// Passenger operations
	FindPassengerByPhone(phone string) (*models.Passenger, error)
	ListRecentPassengersByAmbassador(ambassadorID uint, limit int) ([]*models.Passenger, error)
	CountPassengersByAmbassador(ambassadorID uint, since *time.Time) (int, error)
	CountPassengersByAmbassadorBetween(ambassadorID uint, start, end time.Time) (int, error)
	CountPassengersCreatedBetween(start, end time.Time) (int, error)

	// Station operations
	GetOrCreateStation(name, city string) (*models.Station, error)
	ListStations() ([]*models.Station, error)

	// Commission operations
	SumCommissionsByAmbassador(ambassadorID uint, statuses []string, since *time.Time) (float64, error)
	SumCommissionsBetween(start, end time.Time) (float64, error)
	ListRecentCommissions(limit int) ([]*models.Commission, error)

	// Transaction operations
	CreateTransaction(t *models.Transaction) error
	CountTransactionsByDriver(driverID uint, since *time.Time) (int, error)
	CountTransactionsByDriverBetween(driverID uint, start, end time.Time) (int, error)
	SumTransactionsByDriver(driverID uint, since *time.Time) (float64, error)
	CountDistinctPassengersByDriver(driverID uint) (int, error)
	ListRecentTransactionsByDriver(driverID uint, limit int) ([]*models.Transaction, error)

	// Withdrawal operations
	CreateWithdrawal(w *models.WithdrawalRequest) error
	SumWithdrawalsByEmail(email string, statuses []string) (float64, error)
	ListWithdrawalsByEmail(email string, limit int) ([]*models.WithdrawalRequest, error)

	// Taxi referral operations
	CountEnrollmentsByReferrer(driverID uint) (int, error)
	ListEnrollmentsByReferrer(driverID uint, limit int) ([]*models.TaxiEnrollment, error)

	// Composite enrollment operations. Each commits everything or
	// nothing: an enrollment without its commission must never exist.
	CreateDriverWithCommission(d *models.Driver, c *models.Commission) error
	CreatePassengerWithCommission(p *models.Passenger, c *models.Commission) error
	CreateDriverWithEnrollment(d *models.Driver, referrerDriverID uint, c *models.Commission) error

	// Challenge operations
	CreateChallenge(c *models.Challenge) error
	ListActiveChallenges(now time.Time) ([]*models.Challenge, error)
	CreateParticipation(p *models.ChallengeParticipation) error
	ListParticipationsByAmbassador(ambassadorID uint) ([]*models.ChallengeParticipation, error)

	// Objective config (singleton)
	GetObjectiveConfig() (*models.ObjectiveConfig, error)
	SaveObjectiveConfig(cfg *models.ObjectiveConfig) error

	// Account operations
	CreateAccount(a *models.Account) error
	GetAccountByEmail(email string) (*models.Account, error)
	UpdateAccount(a *models.Account) error
}
