package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
	"github.com/christale-kib/taxiconnect-backend/internal/utils"
)

// TaxiService computes the driver-facing dashboard and records ride
// payments. Driver rank is by payment count, not referrals.
type TaxiService struct {
	store storage.Store
}

func NewTaxiService(store storage.Store) *TaxiService {
	return &TaxiService{store: store}
}

// TaxiDashboard is the driver dashboard response.
type TaxiDashboard struct {
	Name                string  `json:"name"`
	Telephone           string  `json:"telephone"`
	Rank                int     `json:"rank"`
	TotalTransactions   int     `json:"totalTransactions"`
	MonthlyTransactions int     `json:"monthlyTransactions"`
	TotalRevenue        float64 `json:"totalRevenue"`
	MonthlyRevenue      float64 `json:"monthlyRevenue"`
	TotalRecruits       int     `json:"totalRecruits"`
	Note                float64 `json:"note"`
	Plate               string  `json:"immatriculation"`
}

// paymentCounts counts completed payments for every driver. A full
// pass over the population on each call, same as the ambassador rank.
func (s *TaxiService) paymentCounts(statuses []string) ([]EntityCount, error) {
	drivers, err := s.store.GetAllDrivers()
	if err != nil {
		return nil, err
	}
	counts := make([]EntityCount, 0, len(drivers))
	for _, d := range drivers {
		if len(statuses) > 0 && !matchesDriverStatus(d.Status, statuses) {
			continue
		}
		n, err := s.store.CountTransactionsByDriver(d.ID, nil)
		if err != nil {
			return nil, err
		}
		counts = append(counts, EntityCount{ID: d.ID, Name: d.FullName(), Count: n})
	}
	return counts, nil
}

func matchesDriverStatus(status string, statuses []string) bool {
	status = strings.ToUpper(status)
	for _, s := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

// Dashboard assembles the driver dashboard payload.
func (s *TaxiService) Dashboard(driver *models.Driver) (*TaxiDashboard, error) {
	now := time.Now()
	mStart := monthStart(now)

	total, err := s.store.CountTransactionsByDriver(driver.ID, nil)
	if err != nil {
		return nil, err
	}
	monthly, err := s.store.CountTransactionsByDriver(driver.ID, &mStart)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.store.SumTransactionsByDriver(driver.ID, nil)
	if err != nil {
		return nil, err
	}
	monthlyRevenue, err := s.store.SumTransactionsByDriver(driver.ID, &mStart)
	if err != nil {
		return nil, err
	}
	recruits, err := s.store.CountEnrollmentsByReferrer(driver.ID)
	if err != nil {
		return nil, err
	}
	counts, err := s.paymentCounts(nil)
	if err != nil {
		return nil, err
	}

	return &TaxiDashboard{
		Name:                driver.FullName(),
		Telephone:           driver.Phone,
		Rank:                RankByCount(driver.ID, counts),
		TotalTransactions:   total,
		MonthlyTransactions: monthly,
		TotalRevenue:        totalRevenue,
		MonthlyRevenue:      monthlyRevenue,
		TotalRecruits:       recruits,
		Note:                driver.Rating,
		Plate:               driver.Plate,
	}, nil
}

// Leaderboard ranks non-retired drivers by payment count, top 20.
func (s *TaxiService) Leaderboard() ([]LeaderboardEntry, error) {
	counts, err := s.paymentCounts([]string{"ACTIF", "ACTIVE", "INSCRIT"})
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(counts, 20), nil
}

// PeerRecruitItem is one taxi the driver enrolled.
type PeerRecruitItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Plate  string `json:"immat"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// RecentRecruits lists the taxis this driver enrolled, newest first.
func (s *TaxiService) RecentRecruits(driver *models.Driver) ([]PeerRecruitItem, error) {
	enrollments, err := s.store.ListEnrollmentsByReferrer(driver.ID, 10)
	if err != nil {
		return nil, err
	}
	out := make([]PeerRecruitItem, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Recruit == nil {
			continue
		}
		status := e.Recruit.Status
		if status == "" {
			status = models.DriverStatusEnrolled
		}
		out = append(out, PeerRecruitItem{
			ID:     fmt.Sprintf("TAXI-%d", e.Recruit.ID),
			Name:   e.Recruit.FullName(),
			Phone:  e.Recruit.Phone,
			Plate:  e.Recruit.Plate,
			Date:   e.CreatedAt.Format("02/01/2006"),
			Status: status,
		})
	}
	return out, nil
}

// PaymentItem is one row of the driver's payment history.
type PaymentItem struct {
	ID        uint    `json:"id"`
	Passenger string  `json:"passager"`
	Amount    float64 `json:"montant"`
	Status    string  `json:"statut"`
	Date      string  `json:"date"`
	Method    string  `json:"methode"`
	Reference string  `json:"reference"`
}

// RecentPayments lists the driver's latest transactions.
func (s *TaxiService) RecentPayments(driver *models.Driver) ([]PaymentItem, error) {
	txs, err := s.store.ListRecentTransactionsByDriver(driver.ID, 10)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentItem, 0, len(txs))
	for _, tx := range txs {
		passenger := "—"
		if tx.Passenger != nil {
			passenger = tx.Passenger.FullName()
		}
		method := tx.PaymentMethod
		if method == "" {
			method = "—"
		}
		out = append(out, PaymentItem{
			ID:        tx.ID,
			Passenger: passenger,
			Amount:    tx.Amount,
			Status:    tx.Status,
			Date:      tx.CreatedAt.Format("02/01/2006 15:04"),
			Method:    method,
			Reference: tx.Reference,
		})
	}
	return out, nil
}

// CreatePayment records a ride payment initiated by the driver. The
// passenger is matched by phone when known, otherwise the payment
// stays anonymous.
func (s *TaxiService) CreatePayment(driver *models.Driver, req *models.PaymentRequest) (*models.Transaction, error) {
	phone := strings.TrimSpace(req.PassengerPhone)
	if req.Amount <= 0 {
		return nil, validationf("montant", "Montant invalide.")
	}
	if phone == "" {
		return nil, validationf("phone_passager", "Téléphone passager obligatoire.")
	}

	var passengerID *uint
	passenger, err := s.store.FindPassengerByPhone(phone)
	if err == nil {
		passengerID = &passenger.ID
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = "AIRTEL_MONEY"
	}

	tx := &models.Transaction{
		DriverID:         driver.ID,
		PassengerID:      passengerID,
		Amount:           req.Amount,
		CommissionRate:   models.DefaultCommissionRate,
		CommissionAmount: req.Amount * models.DefaultCommissionRate / 100,
		Status:           "PENDING",
		PaymentMethod:    method,
		Reference:        utils.ShortRef("TX"),
	}
	if err := s.store.CreateTransaction(tx); err != nil {
		return nil, err
	}
	return tx, nil
}
