package models

import (
	"time"
)

type GuardianModel struct {
	ID                     string `gorm:"primaryKey"`
	VaultID                string `gorm:"index;uniqueIndex:idx_guardian_vault_share,where:share_index > 0"`
	UserID                 string `gorm:"index"`
	DisplayName            string
	ContactEmail           string
	Role                   string
	ShareIndex             int `gorm:"uniqueIndex:idx_guardian_vault_share,where:share_index > 0"`
	CanInitiateRecovery    bool
	CanApproveTransactions bool
	ApprovalWeight         int
	Active                 bool
	VerifiedAt             *time.Time
	DeactivationReason     string
	MetadataJSON           string
	Vault                  VaultModel `gorm:"foreignKey:VaultID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
