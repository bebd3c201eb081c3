package mappers

import (
	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
)

func ToDomainGuardian(model *models.GuardianModel) *domain.Guardian {
	return &domain.Guardian{
		ID:                     model.ID,
		VaultID:                model.VaultID,
		UserID:                 model.UserID,
		DisplayName:            model.DisplayName,
		ContactEmail:           model.ContactEmail,
		Role:                   model.Role,
		ShareIndex:             model.ShareIndex,
		CanInitiateRecovery:    model.CanInitiateRecovery,
		CanApproveTransactions: model.CanApproveTransactions,
		ApprovalWeight:         model.ApprovalWeight,
		Active:                 model.Active,
		VerifiedAt:             model.VerifiedAt,
		DeactivationReason:     model.DeactivationReason,
		MetadataJSON:           model.MetadataJSON,
		CreatedAt:              model.CreatedAt,
		UpdatedAt:              model.UpdatedAt,
	}
}

func ToGORMGuardian(guardian *domain.Guardian) *models.GuardianModel {
	return &models.GuardianModel{
		ID:                     guardian.ID,
		VaultID:                guardian.VaultID,
		UserID:                 guardian.UserID,
		DisplayName:            guardian.DisplayName,
		ContactEmail:           guardian.ContactEmail,
		Role:                   guardian.Role,
		ShareIndex:             guardian.ShareIndex,
		CanInitiateRecovery:    guardian.CanInitiateRecovery,
		CanApproveTransactions: guardian.CanApproveTransactions,
		ApprovalWeight:         guardian.ApprovalWeight,
		Active:                 guardian.Active,
		VerifiedAt:             guardian.VerifiedAt,
		DeactivationReason:     guardian.DeactivationReason,
		MetadataJSON:           guardian.MetadataJSON,
		CreatedAt:              guardian.CreatedAt,
		UpdatedAt:              guardian.UpdatedAt,
	}
}
