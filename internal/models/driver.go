package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Driver statuses as stored in the fleet database.
const (
	DriverStatusEnrolled = "INSCRIT"
	DriverStatusActive   = "ACTIF"
	DriverStatusInactive = "INACTIF"
)

// Driver is a taxi driver enrolled under an ambassador and attached to
// a station (zone).
type Driver struct {
	gorm.Model

	AmbassadorID uint       `json:"ambassador_id" gorm:"index"`
	StationID    *uint      `json:"station_id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone" gorm:"uniqueIndex"`
	Email        string     `json:"email"`
	Plate        string     `json:"plate" gorm:"uniqueIndex"` // normalized registration number
	VehicleMake  string     `json:"vehicle_make"`
	VehicleModel string     `json:"vehicle_model"`
	VehicleColor string     `json:"vehicle_color"`
	Rating       float64    `json:"rating" gorm:"type:numeric(3,2);default:0"`
	Status       string     `json:"status" gorm:"default:'INSCRIT'"`
	ActivatedAt  *time.Time `json:"activated_at"`

	Ambassador *Ambassador `json:"ambassador,omitempty" gorm:"foreignKey:AmbassadorID"`
	Station    *Station    `json:"station,omitempty" gorm:"foreignKey:StationID"`
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.Status == "" {
		d.Status = DriverStatusEnrolled
	}
	return nil
}

func (d *Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// IsActive reports whether the driver counts toward activation metrics:
// either the status says so or an activation date was recorded.
func (d *Driver) IsActive() bool {
	s := strings.ToUpper(d.Status)
	return s == "ACTIF" || s == "ACTIVE" || d.ActivatedAt != nil
}

// City is the driver's operating city, empty when no station is linked.
func (d *Driver) City() string {
	if d.Station == nil {
		return ""
	}
	if d.Station.City != "" {
		return d.Station.City
	}
	return d.Station.Name
}

// DriverEnrollment is the payload for enrolling a new driver, whether
// by an ambassador or by a peer driver.
type DriverEnrollment struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Zone         string `json:"zone"`
	VehicleNo    string `json:"vehicleNumber"`
	VehicleModel string `json:"vehicleModel"`
}

// PassengerEnrollment is the payload for enrolling a new passenger.
type PassengerEnrollment struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
