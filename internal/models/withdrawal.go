package models

import "gorm.io/gorm"

// Withdrawal statuses. PENDING/EN_COURS/PAID all reserve the amount
// against the ambassador's available balance.
const (
	WithdrawalStatusPending    = "PENDING"
	WithdrawalStatusInProgress = "EN_COURS"
	WithdrawalStatusPaid       = "PAID"
	WithdrawalStatusRejected   = "REJECTED"
)

// WithdrawalRequest is an ambassador's request to pay out accumulated
// commission. Rows are immutable after creation; status transitions
// are administrative.
type WithdrawalRequest struct {
	gorm.Model

	AmbassadorEmail string  `json:"ambassador_email" gorm:"index"`
	Amount          float64 `json:"amount" gorm:"type:numeric(10,2)"`
	Phone           string  `json:"phone"`
	Status          string  `json:"status" gorm:"default:'PENDING'"`
	Reference       string  `json:"reference" gorm:"uniqueIndex"` // RET-XXXXXXXX
}

func (w *WithdrawalRequest) BeforeCreate(tx *gorm.DB) error {
	if w.Status == "" {
		w.Status = WithdrawalStatusPending
	}
	return nil
}
