package guardian

import (
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
)

type NominateGuardianInput struct {
	VaultID                string
	OwnerID                string
	UserID                 string
	DisplayName            string
	ContactEmail           string
	Role                   string
	CanInitiateRecovery    bool
	CanApproveTransactions bool
	ApprovalWeight         int
	MetadataJSON           string
}

type GuardianUsecase interface {
	Nominate(input *NominateGuardianInput) (*domain.Guardian, error)
	Activate(guardianID string) error
	Deactivate(guardianID, reason string) error
	UpdatePermissions(guardianID string, patch domain.GuardianPermissionsPatch) error
	CheckPermission(userID, vaultID string, capability domain.Capability) (bool, error)
	Statistics(vaultID string) (*domain.GuardianStatistics, error)
}

type DefaultGuardianUsecase struct {
	guardianRepo domain.GuardianRepository
	vaultRepo    domain.VaultRepository
	now          func() time.Time
}

func NewDefaultGuardianUsecase(
	guardianRepo domain.GuardianRepository,
	vaultRepo domain.VaultRepository,
) *DefaultGuardianUsecase {
	return &DefaultGuardianUsecase{
		guardianRepo: guardianRepo,
		vaultRepo:    vaultRepo,
		now:          time.Now,
	}
}
