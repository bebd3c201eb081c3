package recovery

import (
	"fmt"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/notifier"
)

// ExecuteRecovery transfers vault ownership to the recovery target. The
// one irreversible step of the protocol: the APPROVED -> EXECUTED
// transition and the ownership transfer commit atomically, and a second
// caller gets ErrInvalidState rather than a second transfer.
func (uc *DefaultRecoveryUsecase) ExecuteRecovery(requestID, executorID string) error {
	request, err := uc.recoveryRepo.GetRecoveryRequestByID(requestID)
	if err != nil {
		return err
	}

	if request.Status != domain.RecoveryApproved {
		return fmt.Errorf("%w: request %s is %s, execution requires approval", domain.ErrInvalidState, requestID, request.Status)
	}

	exists, err := uc.accounts.AccountExists(request.NewOwnerID)
	if err != nil {
		return fmt.Errorf("failed to resolve new owner account: %w", err)
	}
	if !exists {
		// the request stays APPROVED; execution can be retried once the
		// account exists
		return fmt.Errorf("%w: new owner account %s does not exist", domain.ErrPreconditionFailed, request.NewOwnerID)
	}

	executedAt := uc.now()
	applied, err := uc.recoveryRepo.ExecuteTransfer(
		requestID,
		request.VaultID,
		request.NewOwnerID,
		executedAt,
		uc.auditEntry("recovery_executed", executorID, fmt.Sprintf("vault ownership transferred to %s", request.NewOwnerID)),
	)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("%w: request %s was executed or left approval concurrently", domain.ErrInvalidState, requestID)
	}

	request.Status = domain.RecoveryExecuted
	if uc.metrics != nil {
		uc.metrics.RecordExecuted(request.VaultID)
	}
	uc.publishEvent(request, executorID, "recovery executed")
	uc.notify(request.NewOwnerID, notifier.KindRecoveryExecuted, map[string]string{
		"vault_id":   request.VaultID,
		"request_id": requestID,
	})

	return nil
}
