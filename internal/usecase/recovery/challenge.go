package recovery

import (
	"fmt"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/notifier"
)

// ChallengeRecovery halts a recovery inside the cure window. A challenged
// request never returns to approval through this service; resolution is
// an external dispute process, and the only exits are reject or expiry.
func (uc *DefaultRecoveryUsecase) ChallengeRecovery(requestID, challengerID, reason string) error {
	request, err := uc.recoveryRepo.GetRecoveryRequestByID(requestID)
	if err != nil {
		return err
	}

	challenge := &domain.ChallengeInfo{
		ChallengerID: challengerID,
		Reason:       reason,
		ChallengedAt: uc.now(),
	}

	applied, err := uc.recoveryRepo.UpdateStatus(
		requestID,
		[]domain.RecoveryStatus{domain.RecoveryCurePeriod},
		domain.RecoveryChallenged,
		domain.RecoveryPatch{Challenge: challenge},
		uc.auditEntry("recovery_challenged", challengerID, reason),
	)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("%w: request %s is %s, challenges are only valid during the cure period", domain.ErrInvalidState, requestID, request.Status)
	}

	request.Status = domain.RecoveryChallenged
	if uc.metrics != nil {
		uc.metrics.RecordChallenged(request.VaultID)
	}
	uc.publishEvent(request, challengerID, "recovery challenged: "+reason)
	uc.notify(request.InitiatorID, notifier.KindRecoveryChallenged, map[string]string{
		"request_id": requestID,
		"reason":     reason,
	})

	return nil
}
