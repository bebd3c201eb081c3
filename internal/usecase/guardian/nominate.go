package guardian

import (
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/google/uuid"
)

// Nominate registers a guardian candidate against a vault. The record is
// created inactive; the guardian only gains capabilities on activation.
func (uc *DefaultGuardianUsecase) Nominate(input *NominateGuardianInput) (*domain.Guardian, error) {
	vault, err := uc.vaultRepo.GetVaultByID(input.VaultID)
	if err != nil {
		return nil, err
	}
	if vault.OwnerID != input.OwnerID {
		return nil, fmt.Errorf("%w: only the vault owner can nominate guardians", domain.ErrPermissionDenied)
	}

	existing, err := uc.guardianRepo.GetGuardianByVaultAndUser(input.VaultID, input.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Active {
		return nil, fmt.Errorf("%w: user %s is already an active guardian of vault %s", domain.ErrAlreadyExists, input.UserID, input.VaultID)
	}

	weight := input.ApprovalWeight
	if weight <= 0 {
		weight = 1
	}

	guardian := &domain.Guardian{
		ID:                     uuid.New().String(),
		VaultID:                input.VaultID,
		UserID:                 input.UserID,
		DisplayName:            input.DisplayName,
		ContactEmail:           input.ContactEmail,
		Role:                   input.Role,
		CanInitiateRecovery:    input.CanInitiateRecovery,
		CanApproveTransactions: input.CanApproveTransactions,
		ApprovalWeight:         weight,
		Active:                 false,
		MetadataJSON:           input.MetadataJSON,
		CreatedAt:              uc.now(),
		UpdatedAt:              uc.now(),
	}

	if err := uc.guardianRepo.CreateGuardian(guardian); err != nil {
		return nil, err
	}

	return guardian, nil
}
