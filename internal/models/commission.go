package models

import "gorm.io/gorm"

// Commission types, one per enrollment kind.
const (
	CommissionEnrollDriver    = "ENROLL_DRIVER"
	CommissionEnrollPassenger = "ENROLL_PASSENGER"
	CommissionEnrollTaxi      = "ENROLL_TAXI"
)

// Commission statuses. A commission is created PENDING and moves to
// VALIDATED/PAID by an out-of-band back-office process.
const (
	CommissionStatusPending    = "PENDING"
	CommissionStatusInProgress = "EN_COURS"
	CommissionStatusValidated  = "VALIDATED"
	CommissionStatusPaid       = "PAID"
)

// Commission is a monetary credit recorded against an ambassador for a
// qualifying enrollment.
type Commission struct {
	gorm.Model

	AmbassadorID uint    `json:"ambassador_id" gorm:"index"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount" gorm:"type:numeric(10,2)"`
	RecruitType  string  `json:"recruit_type"` // CHAUFFEUR or PASSAGER
	RecruitID    uint    `json:"recruit_id"`
	Status       string  `json:"status" gorm:"default:'PENDING'"`

	Ambassador *Ambassador `json:"ambassador,omitempty" gorm:"foreignKey:AmbassadorID"`
}

func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.Status == "" {
		c.Status = CommissionStatusPending
	}
	return nil
}
