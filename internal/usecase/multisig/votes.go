package multisig

import (
	"fmt"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/google/uuid"
)

// SubmitGuardianApproval records one guardian's vote on a transaction.
// One row per (transaction, guardian); duplicates lose at the
// persistence boundary.
func (uc *DefaultMultiSigUsecase) SubmitGuardianApproval(guardianID, transactionID string, approved bool, comments string) error {
	if uc.limiter != nil && !uc.limiter.Allow(guardianID) {
		return fmt.Errorf("%w: guardian %s", domain.ErrRateLimitExceeded, guardianID)
	}

	request, err := uc.multisigRepo.GetApprovalRequestByTransactionID(transactionID)
	if err != nil {
		return err
	}

	guardian, err := uc.guardianRepo.GetGuardianByID(guardianID)
	if err != nil {
		return err
	}
	if guardian.VaultID != request.VaultID {
		return fmt.Errorf("%w: guardian %s does not belong to vault %s", domain.ErrPermissionDenied, guardianID, request.VaultID)
	}
	if !guardian.HasCapability(domain.CapApproveTransactions) {
		return fmt.Errorf("%w: guardian %s cannot approve transactions", domain.ErrPermissionDenied, guardianID)
	}

	vote := &domain.ApprovalVote{
		ID:            uuid.New().String(),
		TransactionID: transactionID,
		GuardianID:    guardianID,
		Approved:      approved,
		Comments:      comments,
		CreatedAt:     uc.now(),
	}

	if err := uc.multisigRepo.CreateApprovalVote(vote); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.RecordApprovalVote(request.VaultID, approved)
	}

	return nil
}

// EvaluateApprovalStatus recomputes the verdict from the stored vote set.
// Weighted quorum: sum of approving weights must reach
// ceil(totalActiveWeight * requiredPercent / 100), integer arithmetic.
func (uc *DefaultMultiSigUsecase) EvaluateApprovalStatus(ruleID, transactionID string) (*domain.ApprovalStatus, error) {
	rule, err := uc.multisigRepo.GetRuleByID(ruleID)
	if err != nil {
		return nil, err
	}
	request, err := uc.multisigRepo.GetApprovalRequestByTransactionID(transactionID)
	if err != nil {
		return nil, err
	}

	votes, err := uc.multisigRepo.ListApprovalVotes(transactionID)
	if err != nil {
		return nil, err
	}

	guardians, err := uc.guardianRepo.ListGuardiansByVault(rule.VaultID, true)
	if err != nil {
		return nil, err
	}

	approvers := make(map[string]bool, len(votes))
	for _, vote := range votes {
		if vote.Approved {
			approvers[vote.GuardianID] = true
		}
	}

	status := &domain.ApprovalStatus{VotesCast: len(votes)}

	totalWeight := 0
	eligible := 0
	approvedAll := true
	for _, guardian := range guardians {
		if !guardian.CanApproveTransactions {
			continue
		}
		eligible++
		totalWeight += guardian.ApprovalWeight
		if approvers[guardian.ID] {
			status.ApprovedWeight += guardian.ApprovalWeight
		} else {
			approvedAll = false
		}
	}

	switch rule.Logic {
	case domain.ApprovalLogicAll:
		status.RequiredWeight = totalWeight
		status.Approved = eligible > 0 && approvedAll
	case domain.ApprovalLogicWeighted:
		status.RequiredWeight = (totalWeight*rule.RequiredPercent + 99) / 100
		status.Approved = status.RequiredWeight > 0 && status.ApprovedWeight >= status.RequiredWeight
	}

	timeout := time.Duration(rule.TimeoutHours) * time.Hour
	status.TimedOut = uc.now().Sub(request.RequestedAt) > timeout

	return status, nil
}
