package recovery

import (
	"fmt"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
)

// ApproveRecovery marks an unchallenged cure period as complete. Silence
// during the cure window is consent: the only preconditions are the
// cure_period status and an elapsed cure deadline.
func (uc *DefaultRecoveryUsecase) ApproveRecovery(requestID string) error {
	request, err := uc.recoveryRepo.GetRecoveryRequestByID(requestID)
	if err != nil {
		return err
	}

	if request.Status != domain.RecoveryCurePeriod {
		return fmt.Errorf("%w: request %s is %s, approval requires an elapsed cure period", domain.ErrInvalidState, requestID, request.Status)
	}
	if request.CureExpiresAt == nil || uc.now().Before(*request.CureExpiresAt) {
		return fmt.Errorf("%w: cure period of request %s has not elapsed yet", domain.ErrInvalidState, requestID)
	}

	applied, err := uc.recoveryRepo.UpdateStatus(
		requestID,
		[]domain.RecoveryStatus{domain.RecoveryCurePeriod},
		domain.RecoveryApproved,
		domain.RecoveryPatch{},
		uc.auditEntry("recovery_approved", "system", "cure period elapsed without challenge"),
	)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("%w: request %s left the cure period concurrently", domain.ErrInvalidState, requestID)
	}

	request.Status = domain.RecoveryApproved
	uc.publishEvent(request, "system", "recovery approved")

	return nil
}
