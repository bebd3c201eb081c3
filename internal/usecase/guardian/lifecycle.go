package guardian

import (
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
)

func (uc *DefaultGuardianUsecase) Activate(guardianID string) error {
	if _, err := uc.guardianRepo.GetGuardianByID(guardianID); err != nil {
		return err
	}
	return uc.guardianRepo.SetActive(guardianID, true, "")
}

// Deactivate flips the active flag and records the reason. The record is
// never deleted: in-flight recovery requests and the share-index history
// keep referencing it.
func (uc *DefaultGuardianUsecase) Deactivate(guardianID, reason string) error {
	if _, err := uc.guardianRepo.GetGuardianByID(guardianID); err != nil {
		return err
	}
	if err := uc.guardianRepo.SetActive(guardianID, false, reason); err != nil {
		return err
	}
	slog.Info("guardian deactivated", "guardian_id", guardianID, "reason", reason)
	return nil
}

func (uc *DefaultGuardianUsecase) UpdatePermissions(guardianID string, patch domain.GuardianPermissionsPatch) error {
	if patch.ApprovalWeight != nil && *patch.ApprovalWeight <= 0 {
		return fmt.Errorf("%w: approval weight must be positive", domain.ErrInvalidArgument)
	}
	if _, err := uc.guardianRepo.GetGuardianByID(guardianID); err != nil {
		return err
	}
	return uc.guardianRepo.UpdatePermissions(guardianID, patch)
}
