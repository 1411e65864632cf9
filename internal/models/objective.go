package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CommissionTier is one commission band, ordered by ascending recruit
// threshold.
type CommissionTier struct {
	Name        string  `json:"name"`
	MinRecruits int     `json:"minRecruits"`
	MaxRecruits int     `json:"maxRecruits"`
	Commission  float64 `json:"commission"`
	Color       string  `json:"color"`
}

// DefaultTiers seeds the singleton when no config row exists yet.
func DefaultTiers() []CommissionTier {
	return []CommissionTier{
		{Name: "Bronze", MinRecruits: 1, MaxRecruits: 4, Commission: 5000, Color: "#CD7F32"},
		{Name: "Argent", MinRecruits: 5, MaxRecruits: 9, Commission: 6000, Color: "#C0C0C0"},
		{Name: "Or", MinRecruits: 10, MaxRecruits: 14, Commission: 7500, Color: "#FFD700"},
		{Name: "Diamant", MinRecruits: 15, MaxRecruits: 999, Commission: 10000, Color: "#00BCD4"},
	}
}

// ObjectiveConfig is the singleton row holding recruitment targets and
// commission tiers consumed by classification and alert logic.
type ObjectiveConfig struct {
	gorm.Model

	// Ambassador objectives
	BARecruitsTarget     int    `json:"ba_recruits_target" gorm:"default:12"`
	BAActivationTarget   int    `json:"ba_activation_target" gorm:"default:60"` // percent
	BAMinPassengers      int    `json:"ba_min_passengers" gorm:"default:10"`
	BACommissionRecruit  int    `json:"ba_commission_per_recruit" gorm:"default:5000"`
	BABonusStreak3       int    `json:"ba_bonus_streak3" gorm:"default:3000"`
	BABonusStreak7       int    `json:"ba_bonus_streak7" gorm:"default:8000"`
	BABonusTop           int    `json:"ba_bonus_top" gorm:"default:15000"`
	BAPeriod             string `json:"ba_period" gorm:"default:'mensuel'"`

	// Driver objectives
	DrvMinTripsWeek      int     `json:"drv_min_trips_week" gorm:"default:15"`
	DrvMinRating         float64 `json:"drv_min_rating" gorm:"type:numeric(3,1);default:4"`
	DrvMaxCancelRate     int     `json:"drv_max_cancel_rate" gorm:"default:10"`
	DrvMinOnTimeRate     int     `json:"drv_min_ontime_rate" gorm:"default:85"`
	DrvMinPassengersWeek int     `json:"drv_min_passengers_week" gorm:"default:5"`
	DrvBonusActive       int     `json:"drv_bonus_active" gorm:"default:2000"`
	DrvPeriod            string  `json:"drv_period" gorm:"default:'hebdomadaire'"`

	Tiers datatypes.JSON `json:"tiers" gorm:"type:jsonb"`
}

// TierList decodes the stored tiers, falling back to the defaults when
// the column is empty or unreadable.
func (c *ObjectiveConfig) TierList() []CommissionTier {
	if len(c.Tiers) == 0 {
		return DefaultTiers()
	}
	var tiers []CommissionTier
	if err := json.Unmarshal(c.Tiers, &tiers); err != nil || len(tiers) == 0 {
		return DefaultTiers()
	}
	return tiers
}

// SetTiers encodes and replaces the stored tiers.
func (c *ObjectiveConfig) SetTiers(tiers []CommissionTier) error {
	raw, err := json.Marshal(tiers)
	if err != nil {
		return err
	}
	c.Tiers = datatypes.JSON(raw)
	return nil
}
