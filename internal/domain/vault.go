package domain

import "time"

type VaultStatus string

const (
	VaultActive    VaultStatus = "ACTIVE"
	VaultSuspended VaultStatus = "SUSPENDED"
)

type Vault struct {
	ID               string
	OwnerID          string
	Title            string
	Status           VaultStatus
	SecretCommitment string
	RequiredShares   int
	TotalShares      int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Protected reports whether guardian protection has been initialized
// for the vault, i.e. a master secret was split and committed.
func (v *Vault) Protected() bool {
	return v.SecretCommitment != "" && v.RequiredShares > 0
}

type VaultRepository interface {
	CreateVault(vault *Vault) error
	GetVaultByID(vaultID string) (*Vault, error)
	UpdateProtection(vaultID, commitment string, requiredShares, totalShares int) error
	UpdateOwner(vaultID, newOwnerID string) error
}
