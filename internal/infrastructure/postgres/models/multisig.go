package models

import (
	"time"
)

type MultiSigRuleModel struct {
	ID              string `gorm:"primaryKey"`
	VaultID         string `gorm:"index"`
	TriggerType     string
	MinAmount       float64
	MaxAmount       float64
	Logic           string
	RequiredPercent int
	TimeoutHours    int
	Active          bool
	Vault           VaultModel `gorm:"foreignKey:VaultID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ApprovalRequestModel struct {
	ID            string `gorm:"primaryKey"`
	VaultID       string `gorm:"index"`
	TransactionID string `gorm:"uniqueIndex"`
	RuleID        string
	RequestedAt   time.Time
	Rule          MultiSigRuleModel `gorm:"foreignKey:RuleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt     time.Time
}

type ApprovalVoteModel struct {
	ID            string `gorm:"primaryKey"`
	TransactionID string `gorm:"uniqueIndex:idx_approval_tx_guardian"`
	GuardianID    string `gorm:"uniqueIndex:idx_approval_tx_guardian"`
	Approved      bool
	Comments      string
	Guardian      GuardianModel `gorm:"foreignKey:GuardianID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt     time.Time
}
