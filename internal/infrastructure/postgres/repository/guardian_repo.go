package repository

import (
	"errors"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultGuardianRepository struct {
	db *gorm.DB
}

func NewDefaultGuardianRepository(db *gorm.DB) *DefaultGuardianRepository {
	return &DefaultGuardianRepository{db: db}
}

func (r *DefaultGuardianRepository) CreateGuardian(guardian *domain.Guardian) error {
	guardianModel := mappers.ToGORMGuardian(guardian)
	if err := r.db.Create(guardianModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	guardian.ID = guardianModel.ID
	return nil
}

func (r *DefaultGuardianRepository) GetGuardianByID(guardianID string) (*domain.Guardian, error) {
	var guardianModel models.GuardianModel
	if err := r.db.Model(&models.GuardianModel{}).Where("id = ?", guardianID).First(&guardianModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainGuardian(&guardianModel), nil
}

func (r *DefaultGuardianRepository) GetGuardianByVaultAndUser(vaultID, userID string) (*domain.Guardian, error) {
	var guardianModel models.GuardianModel
	if err := r.db.Model(&models.GuardianModel{}).
		Where("vault_id = ?", vaultID).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&guardianModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainGuardian(&guardianModel), nil
}

func (r *DefaultGuardianRepository) ListGuardiansByVault(vaultID string, activeOnly bool) ([]*domain.Guardian, error) {
	query := r.db.Model(&models.GuardianModel{}).Where("vault_id = ?", vaultID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var guardianModels []models.GuardianModel
	if err := query.Order("created_at ASC").Find(&guardianModels).Error; err != nil {
		return nil, err
	}

	guardians := make([]*domain.Guardian, len(guardianModels))
	for i, guardianModel := range guardianModels {
		guardians[i] = mappers.ToDomainGuardian(&guardianModel)
	}

	return guardians, nil
}

func (r *DefaultGuardianRepository) SetActive(guardianID string, active bool, reason string) error {
	updates := map[string]interface{}{
		"active":     active,
		"updated_at": time.Now(),
	}
	if active {
		updates["verified_at"] = time.Now()
		updates["deactivation_reason"] = ""
	} else {
		updates["deactivation_reason"] = reason
	}

	result := r.db.Model(&models.GuardianModel{}).Where("id = ?", guardianID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultGuardianRepository) UpdatePermissions(guardianID string, patch domain.GuardianPermissionsPatch) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if patch.CanInitiateRecovery != nil {
		updates["can_initiate_recovery"] = *patch.CanInitiateRecovery
	}
	if patch.CanApproveTransactions != nil {
		updates["can_approve_transactions"] = *patch.CanApproveTransactions
	}
	if patch.ApprovalWeight != nil {
		updates["approval_weight"] = *patch.ApprovalWeight
	}

	result := r.db.Model(&models.GuardianModel{}).Where("id = ?", guardianID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultGuardianRepository) SetShareIndex(guardianID string, shareIndex int) error {
	result := r.db.Model(&models.GuardianModel{}).
		Where("id = ?", guardianID).
		Updates(map[string]interface{}{
			"share_index": shareIndex,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
