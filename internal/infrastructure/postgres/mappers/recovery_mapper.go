package mappers

import (
	"encoding/json"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
)

func ToDomainRecoveryRequest(model *models.RecoveryRequestModel) *domain.RecoveryRequest {
	var auditLog []domain.AuditEntry
	if model.AuditLog != "" {
		// a corrupted audit column must not make the request unreadable
		_ = json.Unmarshal([]byte(model.AuditLog), &auditLog)
	}

	var challenge *domain.ChallengeInfo
	if model.ChallengedAt != nil {
		challenge = &domain.ChallengeInfo{
			ChallengerID: model.ChallengerID,
			Reason:       model.ChallengeReason,
			ChallengedAt: *model.ChallengedAt,
		}
	}

	return &domain.RecoveryRequest{
		ID:              model.ID,
		VaultID:         model.VaultID,
		InitiatorID:     model.InitiatorID,
		NewOwnerID:      model.NewOwnerID,
		Status:          domain.RecoveryStatus(model.Status),
		RequiredShares:  model.RequiredShares,
		TotalShares:     model.TotalShares,
		SharesCollected: model.SharesCollected,
		CurePeriodDays:  model.CurePeriodDays,
		CureExpiresAt:   model.CureExpiresAt,
		ExpiresAt:       model.ExpiresAt,
		Challenge:       challenge,
		AuditLog:        auditLog,
		ReminderSentAt:  model.ReminderSentAt,
		Archived:        model.Archived,
		ExecutedAt:      model.ExecutedAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMRecoveryRequest(request *domain.RecoveryRequest) *models.RecoveryRequestModel {
	auditLog, err := json.Marshal(request.AuditLog)
	if err != nil {
		auditLog = []byte("[]")
	}

	model := &models.RecoveryRequestModel{
		ID:              request.ID,
		VaultID:         request.VaultID,
		InitiatorID:     request.InitiatorID,
		NewOwnerID:      request.NewOwnerID,
		Status:          string(request.Status),
		RequiredShares:  request.RequiredShares,
		TotalShares:     request.TotalShares,
		SharesCollected: request.SharesCollected,
		CurePeriodDays:  request.CurePeriodDays,
		CureExpiresAt:   request.CureExpiresAt,
		ExpiresAt:       request.ExpiresAt,
		AuditLog:        string(auditLog),
		ReminderSentAt:  request.ReminderSentAt,
		Archived:        request.Archived,
		ExecutedAt:      request.ExecutedAt,
		CreatedAt:       request.CreatedAt,
		UpdatedAt:       request.UpdatedAt,
	}

	if request.Challenge != nil {
		challengedAt := request.Challenge.ChallengedAt
		model.ChallengerID = request.Challenge.ChallengerID
		model.ChallengeReason = request.Challenge.Reason
		model.ChallengedAt = &challengedAt
	}

	return model
}
