package recovery

import (
	"github.com/LavaJover/shvark-recovery-service/internal/domain"
)

func (uc *DefaultRecoveryUsecase) GetRecoveryRequestByID(requestID string) (*domain.RecoveryRequest, error) {
	return uc.recoveryRepo.GetRecoveryRequestByID(requestID)
}

func (uc *DefaultRecoveryUsecase) ListRecoveryRequests(filter domain.RecoveryFilter) ([]*domain.RecoveryRequest, int64, error) {
	return uc.recoveryRepo.ListRecoveryRequests(filter)
}
