package multisig

import (
	"errors"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
)

// CheckTransactionApproval is the gateway in front of a risky operation.
// Callers pass the transaction parameters plus the transaction ID once an
// approval context exists; an empty transaction ID asks only whether the
// operation needs approval at all.
func (uc *DefaultMultiSigUsecase) CheckTransactionApproval(vaultID, triggerType string, amount float64, transactionID string) (*GatewayResult, error) {
	rule, err := uc.FindApplicableRule(vaultID, triggerType, amount)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return &GatewayResult{Decision: DecisionAllowed}, nil
	}

	if transactionID == "" {
		return &GatewayResult{Decision: DecisionApprovalRequired, Rule: rule}, nil
	}

	status, err := uc.EvaluateApprovalStatus(rule.ID, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &GatewayResult{Decision: DecisionApprovalRequired, Rule: rule}, nil
		}
		return nil, err
	}

	result := &GatewayResult{Rule: rule, Status: status}
	switch {
	case status.TimedOut:
		// a stale approval context is never treated as valid; the
		// caller must open a fresh one
		result.Decision = DecisionTimedOut
	case status.Approved:
		result.Decision = DecisionApproved
	default:
		result.Decision = DecisionPending
	}

	return result, nil
}
