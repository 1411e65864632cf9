package models

import "gorm.io/gorm"

// DefaultCommissionRate is the platform cut on ride payments, percent.
const DefaultCommissionRate = 10.0

// Transaction is a ride payment initiated by a driver, optionally tied
// to a known passenger.
type Transaction struct {
	gorm.Model

	DriverID         uint    `json:"driver_id" gorm:"index"`
	PassengerID      *uint   `json:"passenger_id"`
	Amount           float64 `json:"amount" gorm:"type:numeric(10,2)"`
	CommissionRate   float64 `json:"commission_rate" gorm:"type:numeric(5,2);default:10"`
	CommissionAmount float64 `json:"commission_amount" gorm:"type:numeric(10,2)"`
	Status           string  `json:"status" gorm:"default:'PENDING'"`
	PaymentMethod    string  `json:"payment_method"`
	Reference        string  `json:"reference" gorm:"uniqueIndex"`

	Driver    *Driver    `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Passenger *Passenger `json:"passenger,omitempty" gorm:"foreignKey:PassengerID"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.CommissionRate == 0 {
		t.CommissionRate = DefaultCommissionRate
	}
	if t.CommissionAmount == 0 {
		t.CommissionAmount = t.Amount * t.CommissionRate / 100
	}
	if t.Status == "" {
		t.Status = "PENDING"
	}
	return nil
}

// PaymentRequest is the payload a driver sends to record a passenger
// payment.
type PaymentRequest struct {
	PassengerPhone string  `json:"phone_passager"`
	Amount         float64 `json:"montant"`
	Method         string  `json:"methode"`
}
