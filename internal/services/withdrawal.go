package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/christale-kib/taxiconnect-backend/internal/config"
	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
	"github.com/christale-kib/taxiconnect-backend/internal/utils"
)

// Commission statuses that count toward the payable balance, and
// withdrawal statuses that reserve it.
var (
	payableCommissionStatuses   = []string{models.CommissionStatusValidated, models.CommissionStatusPaid}
	reservingWithdrawalStatuses = []string{
		models.WithdrawalStatusPending,
		models.WithdrawalStatusInProgress,
		models.WithdrawalStatusPaid,
	}
)

// WithdrawalService checks balances and records payout requests.
type WithdrawalService struct {
	store    storage.Store
	cfg      *config.Config
	notifier *NotifyService
}

func NewWithdrawalService(store storage.Store, cfg *config.Config, notifier *NotifyService) *WithdrawalService {
	return &WithdrawalService{store: store, cfg: cfg, notifier: notifier}
}

// AvailableBalance is the sum of validated and paid commissions minus
// everything already reserved by pending, in-progress or paid
// withdrawals. Decimal arithmetic keeps the comparison exact.
func (s *WithdrawalService) AvailableBalance(amb *models.Ambassador) (decimal.Decimal, error) {
	earned, err := s.store.SumCommissionsByAmbassador(amb.ID, payableCommissionStatuses, nil)
	if err != nil {
		return decimal.Zero, err
	}
	reserved, err := s.store.SumWithdrawalsByEmail(amb.Email, reservingWithdrawalStatuses)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(earned).Sub(decimal.NewFromFloat(reserved)), nil
}

// Create records a withdrawal request and returns its reference. The
// request must meet the minimum and fit inside the available balance
// at creation time.
func (s *WithdrawalService) Create(amb *models.Ambassador, amount float64, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", validationf("phone", "Téléphone obligatoire.")
	}
	requested := decimal.NewFromFloat(amount)
	if requested.LessThanOrEqual(decimal.Zero) {
		return "", validationf("amount", "Montant invalide.")
	}
	minimum := decimal.NewFromFloat(s.cfg.WithdrawalMinimum)
	if requested.LessThan(minimum) {
		return "", validationf("amount", "Montant minimum de retrait : %s XAF.", minimum.String())
	}

	available, err := s.AvailableBalance(amb)
	if err != nil {
		return "", err
	}
	if requested.GreaterThan(available) {
		return "", insufficientBalance(available, requested)
	}

	withdrawal := &models.WithdrawalRequest{
		AmbassadorEmail: amb.Email,
		Amount:          amount,
		Phone:           phone,
		Status:          models.WithdrawalStatusPending,
		Reference:       utils.ShortRef("RET"),
	}
	if err := s.store.CreateWithdrawal(withdrawal); err != nil {
		return "", err
	}

	s.notifier.WithdrawalConfirmation(phone, withdrawal.Reference, amount)
	return withdrawal.Reference, nil
}

// WithdrawalItem is one row of the ambassador's withdrawal history.
type WithdrawalItem struct {
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Phone     string  `json:"phone"`
	Status    string  `json:"status"`
	Date      string  `json:"date"`
}

// History lists the ambassador's withdrawal requests, newest first.
func (s *WithdrawalService) History(amb *models.Ambassador) ([]WithdrawalItem, error) {
	rows, err := s.store.ListWithdrawalsByEmail(amb.Email, 20)
	if err != nil {
		return nil, err
	}
	out := make([]WithdrawalItem, 0, len(rows))
	for _, w := range rows {
		out = append(out, WithdrawalItem{
			Reference: w.Reference,
			Amount:    w.Amount,
			Phone:     w.Phone,
			Status:    w.Status,
			Date:      w.CreatedAt.Format("02/01/2006 15:04"),
		})
	}
	return out, nil
}
