package recovery

import (
	"fmt"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/notifier"
)

// RejectRecovery closes a recovery from any non-terminal state.
func (uc *DefaultRecoveryUsecase) RejectRecovery(requestID, reason string) error {
	request, err := uc.recoveryRepo.GetRecoveryRequestByID(requestID)
	if err != nil {
		return err
	}
	if request.Status.Terminal() {
		return fmt.Errorf("%w: request %s is already %s", domain.ErrInvalidState, requestID, request.Status)
	}

	applied, err := uc.recoveryRepo.UpdateStatus(
		requestID,
		domain.NonTerminalStatuses(),
		domain.RecoveryRejected,
		domain.RecoveryPatch{},
		uc.auditEntry("recovery_rejected", "system", reason),
	)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("%w: request %s reached a terminal state concurrently", domain.ErrInvalidState, requestID)
	}

	request.Status = domain.RecoveryRejected
	if uc.metrics != nil {
		uc.metrics.RecordRejected(request.VaultID)
	}
	uc.publishEvent(request, "system", "recovery rejected: "+reason)
	uc.notify(request.InitiatorID, notifier.KindRecoveryRejected, map[string]string{
		"request_id": requestID,
		"reason":     reason,
	})

	return nil
}
