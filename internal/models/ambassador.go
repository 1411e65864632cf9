package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Ambassador is a brand ambassador ("BA") who recruits drivers and
// passengers for commission.
type Ambassador struct {
	gorm.Model

	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email" gorm:"uniqueIndex"`
	Phone         string  `json:"phone" gorm:"uniqueIndex"` // unique across BAs
	Level         string  `json:"level" gorm:"default:'Brand Ambassador'"`
	Rank          int     `json:"rank" gorm:"default:0"` // legacy column; read side ranks by referral count
	Streak        int     `json:"streak" gorm:"default:0"`
	MonthlyTarget int     `json:"monthly_target" gorm:"default:100"`
	Status        string  `json:"status" gorm:"default:'ACTIF'"`
	PhotoURL      string  `json:"photo_url"`
	TotalEarned   float64 `json:"total_earned" gorm:"type:numeric(10,2);default:0"`
}

func (a *Ambassador) BeforeCreate(tx *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Level == "" {
		a.Level = "Brand Ambassador"
	}
	if a.Status == "" {
		a.Status = "ACTIF"
	}
	return nil
}

// FullName renders "prenom nom" the way the dashboards display it.
func (a *Ambassador) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// JoinedDays is the tenure used by status classification. Ambassadors
// without a creation date are treated as long-tenured, never as new.
func (a *Ambassador) JoinedDays(now time.Time) int {
	if a.CreatedAt.IsZero() {
		return 999
	}
	return int(now.Sub(a.CreatedAt).Hours() / 24)
}

// AmbassadorRegistration is the BA sign-up payload.
type AmbassadorRegistration struct {
	FirstName string `json:"prenom"`
	LastName  string `json:"nom"`
	Email     string `json:"email"`
	Phone     string `json:"telephone"`
	Password  string `json:"password"`
}
