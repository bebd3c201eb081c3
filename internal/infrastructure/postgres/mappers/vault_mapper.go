package mappers

import (
	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
)

func ToDomainVault(model *models.VaultModel) *domain.Vault {
	return &domain.Vault{
		ID:               model.ID,
		OwnerID:          model.OwnerID,
		Title:            model.Title,
		Status:           domain.VaultStatus(model.Status),
		SecretCommitment: model.SecretCommitment,
		RequiredShares:   model.RequiredShares,
		TotalShares:      model.TotalShares,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMVault(vault *domain.Vault) *models.VaultModel {
	return &models.VaultModel{
		ID:               vault.ID,
		OwnerID:          vault.OwnerID,
		Title:            vault.Title,
		Status:           string(vault.Status),
		SecretCommitment: vault.SecretCommitment,
		RequiredShares:   vault.RequiredShares,
		TotalShares:      vault.TotalShares,
		CreatedAt:        vault.CreatedAt,
		UpdatedAt:        vault.UpdatedAt,
	}
}
