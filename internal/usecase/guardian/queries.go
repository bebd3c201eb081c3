package guardian

import (
	"errors"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
)

// CheckPermission is a pure lookup: no side effects, inactive guardians
// hold no permission.
func (uc *DefaultGuardianUsecase) CheckPermission(userID, vaultID string, capability domain.Capability) (bool, error) {
	guardian, err := uc.guardianRepo.GetGuardianByVaultAndUser(vaultID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return guardian.HasCapability(capability), nil
}

// Statistics aggregates the guardian set of a vault. Used among others to
// validate multi-sig rule feasibility against the total active weight.
func (uc *DefaultGuardianUsecase) Statistics(vaultID string) (*domain.GuardianStatistics, error) {
	if _, err := uc.vaultRepo.GetVaultByID(vaultID); err != nil {
		return nil, err
	}

	guardians, err := uc.guardianRepo.ListGuardiansByVault(vaultID, false)
	if err != nil {
		return nil, err
	}

	stats := &domain.GuardianStatistics{
		ByRole: make(map[string]int),
	}

	for _, guardian := range guardians {
		stats.Total++
		if guardian.Active {
			stats.Active++
			stats.ActiveWeightTotal += guardian.ApprovalWeight
		} else if guardian.DeactivationReason == "" {
			stats.Pending++
		}
		if guardian.Role != "" {
			stats.ByRole[guardian.Role]++
		}
		if guardian.VerifiedAt != nil {
			if stats.OldestVerifiedAt == nil || guardian.VerifiedAt.Before(*stats.OldestVerifiedAt) {
				stats.OldestVerifiedAt = guardian.VerifiedAt
			}
			if stats.NewestVerifiedAt == nil || guardian.VerifiedAt.After(*stats.NewestVerifiedAt) {
				stats.NewestVerifiedAt = guardian.VerifiedAt
			}
		}
	}

	return stats, nil
}
