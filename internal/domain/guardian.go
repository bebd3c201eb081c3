package domain

import "time"

type Capability string

const (
	CapInitiateRecovery    Capability = "INITIATE_RECOVERY"
	CapApproveTransactions Capability = "APPROVE_TRANSACTIONS"
)

type Guardian struct {
	ID                     string
	VaultID                string
	UserID                 string
	DisplayName            string
	ContactEmail           string
	Role                   string
	ShareIndex             int
	CanInitiateRecovery    bool
	CanApproveTransactions bool
	ApprovalWeight         int
	Active                 bool
	VerifiedAt             *time.Time
	DeactivationReason     string
	MetadataJSON           string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// HasCapability is the single permission predicate: an inactive guardian
// holds no capability regardless of its flags.
func (g *Guardian) HasCapability(capability Capability) bool {
	if !g.Active {
		return false
	}
	switch capability {
	case CapInitiateRecovery:
		return g.CanInitiateRecovery
	case CapApproveTransactions:
		return g.CanApproveTransactions
	default:
		return false
	}
}

type GuardianPermissionsPatch struct {
	CanInitiateRecovery    *bool
	CanApproveTransactions *bool
	ApprovalWeight         *int
}

type GuardianStatistics struct {
	Total             int
	Active            int
	Pending           int
	ActiveWeightTotal int
	ByRole            map[string]int
	OldestVerifiedAt  *time.Time
	NewestVerifiedAt  *time.Time
}

type GuardianRepository interface {
	CreateGuardian(guardian *Guardian) error
	GetGuardianByID(guardianID string) (*Guardian, error)
	GetGuardianByVaultAndUser(vaultID, userID string) (*Guardian, error)
	ListGuardiansByVault(vaultID string, activeOnly bool) ([]*Guardian, error)
	SetActive(guardianID string, active bool, reason string) error
	UpdatePermissions(guardianID string, patch GuardianPermissionsPatch) error
	SetShareIndex(guardianID string, shareIndex int) error
}
