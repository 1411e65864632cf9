package models

import "gorm.io/gorm"

// Station is a named operating zone drivers are assigned to. One row
// per zone name, created on demand.
type Station struct {
	gorm.Model

	Name     string `json:"name" gorm:"uniqueIndex"`
	City     string `json:"city"`
	District string `json:"district"`
	Active   bool   `json:"active" gorm:"default:true"`
}

// Label renders the station for zone pickers ("Oyo - Oyo" collapses to
// the plain name when city and name match).
func (s *Station) Label() string {
	if s.City != "" && s.City != s.Name {
		return s.Name + " - " + s.City
	}
	return s.Name
}
