package recovery

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/notifier"
	"github.com/google/uuid"
)

// SubmitGuardianShard records one guardian's share of the vault secret.
// The vote row is the source of truth: the collected count and every
// reconstruction attempt are recomputed from the persisted vote set, so
// concurrent submissions crossing the threshold collapse to one cure
// transition.
func (uc *DefaultRecoveryUsecase) SubmitGuardianShard(requestID, guardianID, sharePayload string) (*SubmitShardResult, error) {
	if uc.limiter != nil && !uc.limiter.Allow(guardianID) {
		return nil, fmt.Errorf("%w: guardian %s", domain.ErrRateLimitExceeded, guardianID)
	}

	request, err := uc.recoveryRepo.GetRecoveryRequestByID(requestID)
	if err != nil {
		return nil, err
	}

	switch request.Status {
	case domain.RecoveryExpired, domain.RecoveryRejected, domain.RecoveryExecuted:
		return nil, fmt.Errorf("%w: request %s is %s", domain.ErrInvalidState, requestID, request.Status)
	}

	now := uc.now()
	if now.After(request.ExpiresAt) {
		applied, casErr := uc.recoveryRepo.UpdateStatus(
			requestID,
			domain.NonTerminalStatuses(),
			domain.RecoveryExpired,
			domain.RecoveryPatch{},
			uc.auditEntry("recovery_expired", "system", "absolute deadline passed"),
		)
		if casErr != nil {
			return nil, casErr
		}
		if applied && uc.metrics != nil {
			uc.metrics.RecordExpired(request.VaultID)
		}
		return nil, fmt.Errorf("%w: request %s passed its absolute deadline", domain.ErrExpired, requestID)
	}

	guardian, err := uc.guardianRepo.GetGuardianByID(guardianID)
	if err != nil {
		return nil, err
	}
	if guardian.VaultID != request.VaultID {
		return nil, fmt.Errorf("%w: guardian %s does not belong to vault %s", domain.ErrPermissionDenied, guardianID, request.VaultID)
	}
	if !guardian.Active {
		return nil, fmt.Errorf("%w: guardian %s is not active", domain.ErrPermissionDenied, guardianID)
	}
	if _, err := hex.DecodeString(sharePayload); err != nil {
		return nil, fmt.Errorf("%w: share payload is not valid hex", domain.ErrInvalidArgument)
	}

	vote := &domain.GuardianVote{
		ID:                uuid.New().String(),
		RecoveryRequestID: requestID,
		GuardianID:        guardianID,
		VoteType:          domain.VoteShardSubmission,
		SharePayload:      sharePayload,
		CreatedAt:         now,
	}
	// uniqueness constraint makes the duplicate loser deterministic
	if err := uc.voteRepo.CreateVote(vote); err != nil {
		return nil, err
	}

	if request.Status == domain.RecoveryInitiated {
		if _, err := uc.recoveryRepo.UpdateStatus(
			requestID,
			[]domain.RecoveryStatus{domain.RecoveryInitiated},
			domain.RecoveryCollectingShards,
			domain.RecoveryPatch{},
			uc.auditEntry("shard_collection_started", guardianID, "first shard received"),
		); err != nil {
			return nil, err
		}
	}

	collected, err := uc.voteRepo.CountVotesByRequest(requestID, domain.VoteShardSubmission)
	if err != nil {
		return nil, err
	}
	if err := uc.recoveryRepo.SetSharesCollected(requestID, int(collected)); err != nil {
		return nil, err
	}
	if err := uc.recoveryRepo.AppendAudit(requestID, uc.auditEntry(
		"shard_submitted", guardianID,
		fmt.Sprintf("%d of %d shares collected", collected, request.RequiredShares),
	)); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RecordShardSubmitted(request.VaultID)
	}

	result := &SubmitShardResult{
		RequestID:       requestID,
		Status:          domain.RecoveryCollectingShards,
		SharesCollected: int(collected),
		RequiredShares:  request.RequiredShares,
	}

	if int(collected) < request.RequiredShares {
		return result, nil
	}

	if err := uc.attemptReconstruction(request, guardianID); err != nil {
		// the shard stays recorded; the request stays open for more or
		// replacement shares
		return result, err
	}

	result.Status = domain.RecoveryCurePeriod
	return result, nil
}

// attemptReconstruction recombines every shard on file, verifies the
// candidate against the vault commitment and enters the cure period.
// The transition is a compare-and-set: the losing side of a concurrent
// double trigger is a no-op.
func (uc *DefaultRecoveryUsecase) attemptReconstruction(request *domain.RecoveryRequest, actor string) error {
	vault, err := uc.vaultRepo.GetVaultByID(request.VaultID)
	if err != nil {
		return err
	}

	votes, err := uc.voteRepo.ListVotesByRequest(request.ID, domain.VoteShardSubmission)
	if err != nil {
		return err
	}

	shares := make([][]byte, 0, len(votes))
	for _, vote := range votes {
		share, decodeErr := hex.DecodeString(vote.SharePayload)
		if decodeErr != nil {
			slog.Warn("skipping undecodable share payload", "request_id", request.ID, "vote_id", vote.ID)
			continue
		}
		shares = append(shares, share)
	}

	err = uc.sharding.Reconstruct(shares, vault.SecretCommitment)
	if uc.metrics != nil {
		uc.metrics.RecordReconstruction(request.VaultID, err == nil)
	}
	if err != nil {
		if appendErr := uc.recoveryRepo.AppendAudit(request.ID, uc.auditEntry(
			"reconstruction_failed", "system", err.Error(),
		)); appendErr != nil {
			slog.Error("failed to audit reconstruction failure", "request_id", request.ID, "error", appendErr.Error())
		}
		return err
	}

	cureExpiresAt := uc.now().Add(time.Duration(request.CurePeriodDays) * 24 * time.Hour)
	applied, err := uc.recoveryRepo.UpdateStatus(
		request.ID,
		[]domain.RecoveryStatus{domain.RecoveryCollectingShards, domain.RecoveryInitiated},
		domain.RecoveryCurePeriod,
		domain.RecoveryPatch{CureExpiresAt: &cureExpiresAt},
		uc.auditEntry("cure_period_entered", actor, fmt.Sprintf("secret reconstructed, cure ends %s", cureExpiresAt.Format(time.RFC3339))),
	)
	if err != nil {
		return err
	}
	if !applied {
		// a concurrent submission already won the transition
		return nil
	}

	request.Status = domain.RecoveryCurePeriod
	uc.publishEvent(request, actor, "cure period entered")
	uc.notify(vault.OwnerID, notifier.KindRecoveryCureEntered, map[string]string{
		"vault_id":        request.VaultID,
		"request_id":      request.ID,
		"cure_expires_at": cureExpiresAt.Format(time.RFC3339),
	})

	return nil
}
