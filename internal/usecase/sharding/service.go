package sharding

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/hashicorp/vault/shamir"
)

const masterSecretSize = 32

// Service splits a vault's master secret into guardian shares and
// verifies reconstructed candidates against the stored commitment. The
// secret itself is never persisted; only its SHA-256 commitment is.
type Service struct {
	vaultRepo    domain.VaultRepository
	guardianRepo domain.GuardianRepository
}

func NewService(vaultRepo domain.VaultRepository, guardianRepo domain.GuardianRepository) *Service {
	return &Service{
		vaultRepo:    vaultRepo,
		guardianRepo: guardianRepo,
	}
}

// ProtectionResult carries the commitment plus the split shares, keyed by
// guardian. Shares are handed to the caller for out-of-band distribution
// and must not be stored.
type ProtectionResult struct {
	Commitment string
	ShareCount int
	Threshold  int
	Shares     map[string]string
}

// InitializeProtection generates a fresh master secret, splits it into
// one share per guardian with recovery threshold, stores the commitment
// on the vault and records which share index each guardian holds.
func (s *Service) InitializeProtection(vaultID, ownerID string, guardianIDs []string, threshold int) (*ProtectionResult, error) {
	vault, err := s.vaultRepo.GetVaultByID(vaultID)
	if err != nil {
		return nil, err
	}
	if vault.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: only the vault owner can initialize protection", domain.ErrPermissionDenied)
	}
	if len(guardianIDs) < 3 {
		return nil, fmt.Errorf("%w: at least 3 guardians required, got %d", domain.ErrInvalidArgument, len(guardianIDs))
	}
	if threshold < 2 || threshold > len(guardianIDs) {
		return nil, fmt.Errorf("%w: threshold must be between 2 and %d", domain.ErrInvalidArgument, len(guardianIDs))
	}

	guardians := make([]*domain.Guardian, 0, len(guardianIDs))
	for _, guardianID := range guardianIDs {
		guardian, err := s.guardianRepo.GetGuardianByID(guardianID)
		if err != nil {
			return nil, err
		}
		if guardian.VaultID != vaultID {
			return nil, fmt.Errorf("%w: guardian %s does not belong to vault %s", domain.ErrInvalidArgument, guardianID, vaultID)
		}
		if !guardian.Active {
			return nil, fmt.Errorf("%w: guardian %s is not active", domain.ErrPreconditionFailed, guardianID)
		}
		guardians = append(guardians, guardian)
	}

	secret := make([]byte, masterSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate master secret: %w", err)
	}
	defer wipe(secret)

	shares, err := shamir.Split(secret, len(guardians), threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to split master secret: %w", err)
	}

	commitment := Commitment(secret)

	result := &ProtectionResult{
		Commitment: commitment,
		ShareCount: len(shares),
		Threshold:  threshold,
		Shares:     make(map[string]string, len(shares)),
	}

	for i, guardian := range guardians {
		share := shares[i]
		// the x-coordinate the scheme embedded in the trailing byte
		shareIndex := int(share[len(share)-1])
		if err := s.guardianRepo.SetShareIndex(guardian.ID, shareIndex); err != nil {
			return nil, err
		}
		result.Shares[guardian.ID] = hex.EncodeToString(share)
		wipe(share)
	}

	if err := s.vaultRepo.UpdateProtection(vaultID, commitment, threshold, len(guardians)); err != nil {
		return nil, err
	}

	return result, nil
}

// Reconstruct combines the submitted shares and verifies the candidate
// secret against the commitment. A mismatch (too few shares, a corrupted
// share) is domain.ErrReconstruction: the caller keeps collecting.
func (s *Service) Reconstruct(shares [][]byte, commitment string) error {
	if len(shares) < 2 {
		return fmt.Errorf("%w: need at least 2 shares to combine", domain.ErrReconstruction)
	}

	candidate, err := shamir.Combine(shares)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrReconstruction, err)
	}
	defer wipe(candidate)

	if Commitment(candidate) != commitment {
		return fmt.Errorf("%w: candidate secret does not match commitment", domain.ErrReconstruction)
	}

	return nil
}

// Commitment is the one-way hash stored in place of the secret.
func Commitment(secret []byte) string {
	sum := sha256.Sum256(secret)
	return hex.EncodeToString(sum[:])
}

func wipe(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
