package models

import "gorm.io/gorm"

// TaxiEnrollment traces a driver-to-driver referral: a referrer driver
// enrolls a recruit driver. The pair is unique.
type TaxiEnrollment struct {
	gorm.Model

	ReferrerDriverID uint `json:"referrer_driver_id" gorm:"uniqueIndex:idx_taxi_enrollment_pair"`
	RecruitDriverID  uint `json:"recruit_driver_id" gorm:"uniqueIndex:idx_taxi_enrollment_pair"`

	Recruit *Driver `json:"recruit,omitempty" gorm:"foreignKey:RecruitDriverID"`
}
