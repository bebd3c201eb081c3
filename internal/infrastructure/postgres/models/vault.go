package models

import (
	"time"
)

type VaultModel struct {
	ID               string `gorm:"primaryKey"`
	OwnerID          string `gorm:"index"`
	Title            string
	Status           string
	SecretCommitment string
	RequiredShares   int
	TotalShares      int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
