package repository

import (
	"errors"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultVaultRepository struct {
	db *gorm.DB
}

func NewDefaultVaultRepository(db *gorm.DB) *DefaultVaultRepository {
	return &DefaultVaultRepository{db: db}
}

func (r *DefaultVaultRepository) CreateVault(vault *domain.Vault) error {
	vaultModel := mappers.ToGORMVault(vault)
	if err := r.db.Create(vaultModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *DefaultVaultRepository) GetVaultByID(vaultID string) (*domain.Vault, error) {
	var vaultModel models.VaultModel
	if err := r.db.Model(&models.VaultModel{}).Where("id = ?", vaultID).First(&vaultModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainVault(&vaultModel), nil
}

func (r *DefaultVaultRepository) UpdateProtection(vaultID, commitment string, requiredShares, totalShares int) error {
	result := r.db.Model(&models.VaultModel{}).
		Where("id = ?", vaultID).
		Updates(map[string]interface{}{
			"secret_commitment": commitment,
			"required_shares":   requiredShares,
			"total_shares":      totalShares,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultVaultRepository) UpdateOwner(vaultID, newOwnerID string) error {
	result := r.db.Model(&models.VaultModel{}).
		Where("id = ?", vaultID).
		Updates(map[string]interface{}{
			"owner_id":   newOwnerID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
