package models

import (
	"strings"

	"gorm.io/gorm"
)

// Account roles.
const (
	RoleAmbassador = "ba"
	RoleTaxi       = "taxi"
	RoleManager    = "manager"
)

// Account is an authentication principal. The optional AmbassadorID /
// DriverID links are the profile references resolved once at the start
// of each dashboard call; a nil link means the role's profile is
// missing and the caller is sent back to login.
type Account struct {
	gorm.Model

	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	AmbassadorID *uint  `json:"ambassador_id"`
	DriverID     *uint  `json:"driver_id"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	return nil
}

func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaxiRegistration is the driver sign-up payload.
type TaxiRegistration struct {
	FirstName    string `json:"prenom"`
	LastName     string `json:"nom"`
	Email        string `json:"email"`
	Phone        string `json:"telephone"`
	Password     string `json:"password"`
	Plate        string `json:"immatriculation"`
	VehicleModel string `json:"vehicleModel"`
	Zone         string `json:"zone"`
}
