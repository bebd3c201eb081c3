package models

import (
	"time"
)

type RecoveryRequestModel struct {
	ID              string `gorm:"primaryKey"`
	VaultID         string `gorm:"index"`
	InitiatorID     string
	NewOwnerID      string
	Status          string `gorm:"index"`
	RequiredShares  int
	TotalShares     int
	SharesCollected int
	CurePeriodDays  int
	CureExpiresAt   *time.Time
	ExpiresAt       time.Time
	ChallengerID    string
	ChallengeReason string
	ChallengedAt    *time.Time
	AuditLog        string `gorm:"type:jsonb;default:'[]'"`
	ReminderSentAt  *time.Time
	Archived        bool
	ExecutedAt      *time.Time
	Vault           VaultModel `gorm:"foreignKey:VaultID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
