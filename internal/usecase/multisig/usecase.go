package multisig

import (
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/metrics"
)

type CreateRuleInput struct {
	VaultID         string
	TriggerType     string
	MinAmount       float64
	MaxAmount       float64
	Logic           domain.ApprovalLogic
	RequiredPercent int
	TimeoutHours    int
}

// Decision is the gateway verdict in front of a risky write operation.
type Decision string

const (
	DecisionAllowed          Decision = "ALLOWED"
	DecisionApprovalRequired Decision = "APPROVAL_REQUIRED"
	DecisionPending          Decision = "PENDING"
	DecisionApproved         Decision = "APPROVED"
	DecisionTimedOut         Decision = "TIMED_OUT"
)

type GatewayResult struct {
	Decision Decision
	Rule     *domain.MultiSigRule
	Status   *domain.ApprovalStatus
}

type MultiSigUsecase interface {
	CreateRule(input *CreateRuleInput) (*domain.MultiSigRule, error)
	FindApplicableRule(vaultID, triggerType string, amount float64) (*domain.MultiSigRule, error)
	RequestApproval(vaultID, transactionID, triggerType string, amount float64) (*domain.ApprovalRequest, error)
	SubmitGuardianApproval(guardianID, transactionID string, approved bool, comments string) error
	EvaluateApprovalStatus(ruleID, transactionID string) (*domain.ApprovalStatus, error)
	CheckTransactionApproval(vaultID, triggerType string, amount float64, transactionID string) (*GatewayResult, error)
}

type DefaultMultiSigUsecase struct {
	multisigRepo domain.MultiSigRepository
	guardianRepo domain.GuardianRepository
	limiter      domain.SubmissionLimiter
	metrics      *metrics.RecoveryMetrics
	now          func() time.Time
}

func NewDefaultMultiSigUsecase(
	multisigRepo domain.MultiSigRepository,
	guardianRepo domain.GuardianRepository,
	limiter domain.SubmissionLimiter,
	recoveryMetrics *metrics.RecoveryMetrics,
) *DefaultMultiSigUsecase {
	return &DefaultMultiSigUsecase{
		multisigRepo: multisigRepo,
		guardianRepo: guardianRepo,
		limiter:      limiter,
		metrics:      recoveryMetrics,
		now:          time.Now,
	}
}
