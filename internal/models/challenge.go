package models

import (
	"time"

	"gorm.io/gorm"
)

// Challenge is a time-boxed recruitment challenge shown on the BA
// dashboard. Rows are managed by the back office; the API only reads
// the active window.
type Challenge struct {
	gorm.Model

	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Type           string    `json:"type"`
	ObjectiveType  string    `json:"objective_type"`
	ObjectiveValue int       `json:"objective_value"`
	RewardType     string    `json:"reward_type"`
	RewardValue    string    `json:"reward_value"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Active         bool      `json:"active" gorm:"default:true"`
}

// ChallengeParticipation tracks one ambassador's progress in one
// challenge. The pair is unique.
type ChallengeParticipation struct {
	gorm.Model

	AmbassadorID uint `json:"ambassador_id" gorm:"uniqueIndex:idx_challenge_participation_pair"`
	ChallengeID  uint `json:"challenge_id" gorm:"uniqueIndex:idx_challenge_participation_pair"`
	Progression  int  `json:"progression"`
	Completed    bool `json:"completed"`

	CompletedAt *time.Time `json:"completed_at"`
}
