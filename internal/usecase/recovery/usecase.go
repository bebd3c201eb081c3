package recovery

import (
	"log"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-recovery-service/internal/usecase/sharding"
	"github.com/jaevor/go-nanoid"
)

const (
	// absolute lifetime of a recovery request, fixed at creation
	requestLifetime = 30 * 24 * time.Hour

	defaultCurePeriodDays = 7
)

type SubmitShardResult struct {
	RequestID       string
	Status          domain.RecoveryStatus
	SharesCollected int
	RequiredShares  int
}

type RecoveryUsecase interface {
	InitiateRecovery(vaultID, guardianID, newOwnerID string, curePeriodDays int) (*domain.RecoveryRequest, error)
	SubmitGuardianShard(requestID, guardianID, sharePayload string) (*SubmitShardResult, error)
	ChallengeRecovery(requestID, challengerID, reason string) error
	ApproveRecovery(requestID string) error
	ExecuteRecovery(requestID, executorID string) error
	RejectRecovery(requestID, reason string) error
	GetRecoveryRequestByID(requestID string) (*domain.RecoveryRequest, error)
	ListRecoveryRequests(filter domain.RecoveryFilter) ([]*domain.RecoveryRequest, int64, error)

	ExpireOverdueRequests(now time.Time) (int, error)
	AutoApproveCuredRequests(now time.Time) (int, error)
	FlagExpiredVotes(now time.Time) (int, error)
	SendPendingReminders(now time.Time) (int, error)
	ArchiveCompletedRequests(now time.Time) (int, error)
}

type DefaultRecoveryUsecase struct {
	recoveryRepo domain.RecoveryRepository
	voteRepo     domain.VoteRepository
	guardianRepo domain.GuardianRepository
	vaultRepo    domain.VaultRepository
	sharding     *sharding.Service
	accounts     domain.AccountProvider
	publisher    domain.RecoveryEventPublisher
	notifier     domain.Notifier
	limiter      domain.SubmissionLimiter
	metrics      *metrics.RecoveryMetrics
	now          func() time.Time
	newEntryID   func() string
}

func NewDefaultRecoveryUsecase(
	recoveryRepo domain.RecoveryRepository,
	voteRepo domain.VoteRepository,
	guardianRepo domain.GuardianRepository,
	vaultRepo domain.VaultRepository,
	shardingService *sharding.Service,
	accounts domain.AccountProvider,
	publisher domain.RecoveryEventPublisher,
	notifier domain.Notifier,
	limiter domain.SubmissionLimiter,
	recoveryMetrics *metrics.RecoveryMetrics,
) *DefaultRecoveryUsecase {
	entryIDGenerator, err := nanoid.Standard(15)
	if err != nil {
		log.Fatalf("failed to init nanoid generator: %v", err)
	}

	return &DefaultRecoveryUsecase{
		recoveryRepo: recoveryRepo,
		voteRepo:     voteRepo,
		guardianRepo: guardianRepo,
		vaultRepo:    vaultRepo,
		sharding:     shardingService,
		accounts:     accounts,
		publisher:    publisher,
		notifier:     notifier,
		limiter:      limiter,
		metrics:      recoveryMetrics,
		now:          time.Now,
		newEntryID:   entryIDGenerator,
	}
}

func (uc *DefaultRecoveryUsecase) auditEntry(action, actor, details string) domain.AuditEntry {
	return domain.AuditEntry{
		ID:        uc.newEntryID(),
		Timestamp: uc.now(),
		Action:    action,
		Actor:     actor,
		Details:   details,
	}
}

func (uc *DefaultRecoveryUsecase) publishEvent(request *domain.RecoveryRequest, actor, details string) {
	if uc.publisher == nil {
		return
	}
	event := domain.RecoveryEvent{
		EventID:   uc.newEntryID(),
		VaultID:   request.VaultID,
		RequestID: request.ID,
		Status:    string(request.Status),
		Actor:     actor,
		Details:   details,
		Timestamp: uc.now(),
	}
	go func() {
		if err := uc.publisher.PublishRecoveryEvent(event); err != nil {
			slog.Error("failed to publish recovery event", "request_id", event.RequestID, "error", err.Error())
		}
	}()
}

func (uc *DefaultRecoveryUsecase) notify(targetUserID, kind string, payload map[string]string) {
	if uc.notifier == nil || targetUserID == "" {
		return
	}
	if err := uc.notifier.Notify(domain.Notification{
		TargetUserID: targetUserID,
		Kind:         kind,
		Payload:      payload,
	}); err != nil {
		slog.Error("failed to emit notification", "kind", kind, "target", targetUserID, "error", err.Error())
	}
}
