package recovery

import (
	"fmt"
	"log"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/notifier"
)

const (
	reminderAfter = 24 * time.Hour
	archiveAfter  = 90 * 24 * time.Hour
)

// ExpireOverdueRequests moves every request past its absolute deadline to
// EXPIRED. Each item is handled independently: one failure is logged and
// the pass continues.
func (uc *DefaultRecoveryUsecase) ExpireOverdueRequests(now time.Time) (int, error) {
	requests, err := uc.recoveryRepo.FindExpired(now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, request := range requests {
		applied, err := uc.recoveryRepo.UpdateStatus(
			request.ID,
			domain.NonTerminalStatuses(),
			domain.RecoveryExpired,
			domain.RecoveryPatch{},
			uc.auditEntry("recovery_expired", "system", "absolute deadline passed"),
		)
		if err != nil {
			log.Printf("failed to expire recovery request %s: %v\n", request.ID, err)
			continue
		}
		if !applied {
			continue
		}
		expired++
		request.Status = domain.RecoveryExpired
		if uc.metrics != nil {
			uc.metrics.RecordExpired(request.VaultID)
		}
		uc.publishEvent(request, "system", "recovery expired")
		uc.notify(request.InitiatorID, notifier.KindRecoveryExpired, map[string]string{
			"request_id": request.ID,
		})
	}

	return expired, nil
}

// AutoApproveCuredRequests approves every request whose cure window
// elapsed without a challenge.
func (uc *DefaultRecoveryUsecase) AutoApproveCuredRequests(now time.Time) (int, error) {
	requests, err := uc.recoveryRepo.FindCureElapsed(now)
	if err != nil {
		return 0, err
	}

	approved := 0
	for _, request := range requests {
		applied, err := uc.recoveryRepo.UpdateStatus(
			request.ID,
			[]domain.RecoveryStatus{domain.RecoveryCurePeriod},
			domain.RecoveryApproved,
			domain.RecoveryPatch{},
			uc.auditEntry("recovery_approved", "system", "cure period elapsed without challenge"),
		)
		if err != nil {
			log.Printf("failed to auto-approve recovery request %s: %v\n", request.ID, err)
			continue
		}
		if !applied {
			continue
		}
		approved++
		request.Status = domain.RecoveryApproved
		uc.publishEvent(request, "system", "recovery auto-approved")
	}

	return approved, nil
}

// FlagExpiredVotes marks individually expired votes. Rows are flagged,
// never deleted.
func (uc *DefaultRecoveryUsecase) FlagExpiredVotes(now time.Time) (int, error) {
	votes, err := uc.voteRepo.FindExpiredVotes(now)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, vote := range votes {
		if err := uc.voteRepo.MarkVoteExpired(vote.ID); err != nil {
			log.Printf("failed to flag expired vote %s: %v\n", vote.ID, err)
			continue
		}
		flagged++
	}

	return flagged, nil
}

// SendPendingReminders emits one reminder signal per stalled request
// older than 24 hours. The sent marker keeps re-runs from re-emitting.
func (uc *DefaultRecoveryUsecase) SendPendingReminders(now time.Time) (int, error) {
	requests, err := uc.recoveryRepo.FindStale(now.Add(-reminderAfter))
	if err != nil {
		return 0, err
	}

	reminded := 0
	for _, request := range requests {
		uc.notify(request.InitiatorID, notifier.KindRecoveryReminder, map[string]string{
			"request_id":       request.ID,
			"shares_collected": formatCount(request.SharesCollected),
			"required_shares":  formatCount(request.RequiredShares),
		})
		if err := uc.recoveryRepo.SetReminderSent(request.ID, now); err != nil {
			log.Printf("failed to mark reminder sent for request %s: %v\n", request.ID, err)
			continue
		}
		reminded++
	}

	return reminded, nil
}

// ArchiveCompletedRequests flags terminal requests completed more than 90
// days ago. Flagged, never deleted: the audit trail is retained.
func (uc *DefaultRecoveryUsecase) ArchiveCompletedRequests(now time.Time) (int, error) {
	requests, err := uc.recoveryRepo.FindArchivable(now.Add(-archiveAfter))
	if err != nil {
		return 0, err
	}

	archived := 0
	for _, request := range requests {
		if err := uc.recoveryRepo.MarkArchived(request.ID); err != nil {
			log.Printf("failed to archive recovery request %s: %v\n", request.ID, err)
			continue
		}
		archived++
	}

	return archived, nil
}

func formatCount(n int) string {
	return fmt.Sprintf("%d", n)
}
