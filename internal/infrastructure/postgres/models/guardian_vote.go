package models

import (
	"time"
)

type GuardianVoteModel struct {
	ID                string `gorm:"primaryKey"`
	RecoveryRequestID string `gorm:"uniqueIndex:idx_vote_request_guardian_type"`
	GuardianID        string `gorm:"uniqueIndex:idx_vote_request_guardian_type"`
	VoteType          string `gorm:"uniqueIndex:idx_vote_request_guardian_type"`
	SharePayload      string
	Decision          string
	Comments          string
	ExpiresAt         *time.Time
	Expired           bool
	RecoveryRequest   RecoveryRequestModel `gorm:"foreignKey:RecoveryRequestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Guardian          GuardianModel        `gorm:"foreignKey:GuardianID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt         time.Time
}
