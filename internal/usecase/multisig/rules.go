package multisig

import (
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/google/uuid"
)

// CreateRule validates the policy against the vault's current guardian
// set: a weighted rule over a vault with no active approval weight could
// never pass and is rejected up front.
func (uc *DefaultMultiSigUsecase) CreateRule(input *CreateRuleInput) (*domain.MultiSigRule, error) {
	if input.Logic != domain.ApprovalLogicAll && input.Logic != domain.ApprovalLogicWeighted {
		return nil, fmt.Errorf("%w: unknown approval logic %q", domain.ErrInvalidArgument, input.Logic)
	}
	if input.Logic == domain.ApprovalLogicWeighted && (input.RequiredPercent < 1 || input.RequiredPercent > 100) {
		return nil, fmt.Errorf("%w: required percent must be within 1..100", domain.ErrInvalidArgument)
	}
	if input.TimeoutHours <= 0 {
		return nil, fmt.Errorf("%w: approval timeout must be positive", domain.ErrInvalidArgument)
	}
	if input.MaxAmount > 0 && input.MaxAmount < input.MinAmount {
		return nil, fmt.Errorf("%w: max amount below min amount", domain.ErrInvalidArgument)
	}

	if input.Logic == domain.ApprovalLogicWeighted {
		guardians, err := uc.guardianRepo.ListGuardiansByVault(input.VaultID, true)
		if err != nil {
			return nil, err
		}
		totalWeight := 0
		for _, guardian := range guardians {
			if guardian.CanApproveTransactions {
				totalWeight += guardian.ApprovalWeight
			}
		}
		if totalWeight == 0 {
			return nil, fmt.Errorf("%w: vault %s has no active approval weight, weighted rule is infeasible", domain.ErrPreconditionFailed, input.VaultID)
		}
	}

	now := uc.now()
	rule := &domain.MultiSigRule{
		ID:              uuid.New().String(),
		VaultID:         input.VaultID,
		TriggerType:     input.TriggerType,
		MinAmount:       input.MinAmount,
		MaxAmount:       input.MaxAmount,
		Logic:           input.Logic,
		RequiredPercent: input.RequiredPercent,
		TimeoutHours:    input.TimeoutHours,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.multisigRepo.CreateRule(rule); err != nil {
		return nil, err
	}

	return rule, nil
}

// FindApplicableRule returns the matching rule, or nil when the
// transaction needs no approval.
func (uc *DefaultMultiSigUsecase) FindApplicableRule(vaultID, triggerType string, amount float64) (*domain.MultiSigRule, error) {
	rule, err := uc.multisigRepo.FindApplicableRule(vaultID, triggerType, amount)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rule, nil
}

// RequestApproval opens an approval context for the transaction if a
// rule applies. Returns nil when no rule matches.
func (uc *DefaultMultiSigUsecase) RequestApproval(vaultID, transactionID, triggerType string, amount float64) (*domain.ApprovalRequest, error) {
	rule, err := uc.FindApplicableRule(vaultID, triggerType, amount)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, nil
	}

	request := &domain.ApprovalRequest{
		ID:            uuid.New().String(),
		VaultID:       vaultID,
		TransactionID: transactionID,
		RuleID:        rule.ID,
		RequestedAt:   uc.now(),
	}

	if err := uc.multisigRepo.CreateApprovalRequest(request); err != nil {
		return nil, err
	}

	return request, nil
}
