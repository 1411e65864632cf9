package models

import (
	"strings"

	"gorm.io/gorm"
)

// Passenger is a rider referred by an ambassador.
type Passenger struct {
	gorm.Model

	AmbassadorID uint   `json:"ambassador_id" gorm:"index"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone" gorm:"uniqueIndex"`
	Email        string `json:"email"`
	Status       string `json:"status" gorm:"default:'INSCRIT'"`

	Ambassador *Ambassador `json:"ambassador,omitempty" gorm:"foreignKey:AmbassadorID"`
}

func (p *Passenger) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Passenger) IsActive() bool {
	s := strings.ToUpper(p.Status)
	return s == "ACTIF" || s == "ACTIVE"
}
