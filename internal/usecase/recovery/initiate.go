package recovery

import (
	"fmt"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/notifier"
	"github.com/google/uuid"
)

// InitiateRecovery opens a recovery attempt on a protected vault. The
// absolute deadline is fixed at creation and never extended.
func (uc *DefaultRecoveryUsecase) InitiateRecovery(vaultID, guardianID, newOwnerID string, curePeriodDays int) (*domain.RecoveryRequest, error) {
	vault, err := uc.vaultRepo.GetVaultByID(vaultID)
	if err != nil {
		return nil, err
	}
	if !vault.Protected() {
		return nil, fmt.Errorf("%w: vault %s has no guardian protection initialized", domain.ErrPreconditionFailed, vaultID)
	}

	guardian, err := uc.guardianRepo.GetGuardianByID(guardianID)
	if err != nil {
		return nil, err
	}
	if guardian.VaultID != vaultID {
		return nil, fmt.Errorf("%w: guardian %s does not belong to vault %s", domain.ErrPermissionDenied, guardianID, vaultID)
	}
	if !guardian.HasCapability(domain.CapInitiateRecovery) {
		return nil, fmt.Errorf("%w: guardian %s cannot initiate recovery", domain.ErrPermissionDenied, guardianID)
	}
	if newOwnerID == "" {
		return nil, fmt.Errorf("%w: new owner identifier is required", domain.ErrInvalidArgument)
	}

	if curePeriodDays <= 0 {
		curePeriodDays = defaultCurePeriodDays
	}

	now := uc.now()
	request := &domain.RecoveryRequest{
		ID:             uuid.New().String(),
		VaultID:        vaultID,
		InitiatorID:    guardianID,
		NewOwnerID:     newOwnerID,
		Status:         domain.RecoveryInitiated,
		RequiredShares: vault.RequiredShares,
		TotalShares:    vault.TotalShares,
		CurePeriodDays: curePeriodDays,
		ExpiresAt:      now.Add(requestLifetime),
		AuditLog: []domain.AuditEntry{
			uc.auditEntry("recovery_initiated", guardianID, fmt.Sprintf("new owner %s, cure period %d days", newOwnerID, curePeriodDays)),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.recoveryRepo.CreateRecoveryRequest(request); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RecordInitiated(vaultID)
	}
	uc.publishEvent(request, guardianID, "recovery initiated")
	uc.notify(vault.OwnerID, notifier.KindRecoveryInitiated, map[string]string{
		"vault_id":   vaultID,
		"request_id": request.ID,
	})

	return request, nil
}
