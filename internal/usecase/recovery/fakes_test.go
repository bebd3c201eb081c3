package recovery

import (
	"fmt"
	"sync"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
)

// In-memory fakes implementing the repository ports, with the same CAS
// and uniqueness semantics as the postgres implementations.

type memVaultRepo struct {
	mu     sync.Mutex
	vaults map[string]*domain.Vault
}

func newMemVaultRepo() *memVaultRepo {
	return &memVaultRepo{vaults: make(map[string]*domain.Vault)}
}

func (r *memVaultRepo) CreateVault(vault *domain.Vault) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vaults[vault.ID]; ok {
		return domain.ErrAlreadyExists
	}
	copied := *vault
	r.vaults[vault.ID] = &copied
	return nil
}

func (r *memVaultRepo) GetVaultByID(vaultID string) (*domain.Vault, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vault, ok := r.vaults[vaultID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *vault
	return &copied, nil
}

func (r *memVaultRepo) UpdateProtection(vaultID, commitment string, requiredShares, totalShares int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vault, ok := r.vaults[vaultID]
	if !ok {
		return domain.ErrNotFound
	}
	vault.SecretCommitment = commitment
	vault.RequiredShares = requiredShares
	vault.TotalShares = totalShares
	return nil
}

func (r *memVaultRepo) UpdateOwner(vaultID, newOwnerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vault, ok := r.vaults[vaultID]
	if !ok {
		return domain.ErrNotFound
	}
	vault.OwnerID = newOwnerID
	return nil
}

type memGuardianRepo struct {
	mu        sync.Mutex
	guardians map[string]*domain.Guardian
}

func newMemGuardianRepo() *memGuardianRepo {
	return &memGuardianRepo{guardians: make(map[string]*domain.Guardian)}
}

func (r *memGuardianRepo) CreateGuardian(guardian *domain.Guardian) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.guardians[guardian.ID]; ok {
		return domain.ErrAlreadyExists
	}
	copied := *guardian
	r.guardians[guardian.ID] = &copied
	return nil
}

func (r *memGuardianRepo) GetGuardianByID(guardianID string) (*domain.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	guardian, ok := r.guardians[guardianID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *guardian
	return &copied, nil
}

func (r *memGuardianRepo) GetGuardianByVaultAndUser(vaultID, userID string) (*domain.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, guardian := range r.guardians {
		if guardian.VaultID == vaultID && guardian.UserID == userID {
			copied := *guardian
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memGuardianRepo) ListGuardiansByVault(vaultID string, activeOnly bool) ([]*domain.Guardian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Guardian
	for _, guardian := range r.guardians {
		if guardian.VaultID != vaultID {
			continue
		}
		if activeOnly && !guardian.Active {
			continue
		}
		copied := *guardian
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memGuardianRepo) SetActive(guardianID string, active bool, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	guardian, ok := r.guardians[guardianID]
	if !ok {
		return domain.ErrNotFound
	}
	guardian.Active = active
	guardian.DeactivationReason = reason
	return nil
}

func (r *memGuardianRepo) UpdatePermissions(guardianID string, patch domain.GuardianPermissionsPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	guardian, ok := r.guardians[guardianID]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.CanInitiateRecovery != nil {
		guardian.CanInitiateRecovery = *patch.CanInitiateRecovery
	}
	if patch.CanApproveTransactions != nil {
		guardian.CanApproveTransactions = *patch.CanApproveTransactions
	}
	if patch.ApprovalWeight != nil {
		guardian.ApprovalWeight = *patch.ApprovalWeight
	}
	return nil
}

func (r *memGuardianRepo) SetShareIndex(guardianID string, shareIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	guardian, ok := r.guardians[guardianID]
	if !ok {
		return domain.ErrNotFound
	}
	guardian.ShareIndex = shareIndex
	return nil
}

type memVoteRepo struct {
	mu    sync.Mutex
	votes []*domain.GuardianVote
	seen  map[string]bool
}

func newMemVoteRepo() *memVoteRepo {
	return &memVoteRepo{seen: make(map[string]bool)}
}

func voteKey(requestID, guardianID string, voteType domain.VoteType) string {
	return fmt.Sprintf("%s|%s|%s", requestID, guardianID, voteType)
}

func (r *memVoteRepo) CreateVote(vote *domain.GuardianVote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := voteKey(vote.RecoveryRequestID, vote.GuardianID, vote.VoteType)
	if r.seen[key] {
		return domain.ErrAlreadySubmitted
	}
	r.seen[key] = true
	copied := *vote
	r.votes = append(r.votes, &copied)
	return nil
}

func (r *memVoteRepo) ListVotesByRequest(requestID string, voteType domain.VoteType) ([]*domain.GuardianVote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.GuardianVote
	for _, vote := range r.votes {
		if vote.RecoveryRequestID == requestID && vote.VoteType == voteType {
			copied := *vote
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memVoteRepo) CountVotesByRequest(requestID string, voteType domain.VoteType) (int64, error) {
	votes, _ := r.ListVotesByRequest(requestID, voteType)
	return int64(len(votes)), nil
}

func (r *memVoteRepo) FindExpiredVotes(now time.Time) ([]*domain.GuardianVote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.GuardianVote
	for _, vote := range r.votes {
		if !vote.Expired && vote.ExpiresAt != nil && vote.ExpiresAt.Before(now) {
			copied := *vote
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memVoteRepo) MarkVoteExpired(voteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, vote := range r.votes {
		if vote.ID == voteID {
			vote.Expired = true
			return nil
		}
	}
	return domain.ErrNotFound
}

type memRecoveryRepo struct {
	mu       sync.Mutex
	requests map[string]*domain.RecoveryRequest
	vaults   *memVaultRepo
}

func newMemRecoveryRepo(vaults *memVaultRepo) *memRecoveryRepo {
	return &memRecoveryRepo{
		requests: make(map[string]*domain.RecoveryRequest),
		vaults:   vaults,
	}
}

func (r *memRecoveryRepo) CreateRecoveryRequest(request *domain.RecoveryRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *memRecoveryRepo) GetRecoveryRequestByID(requestID string) (*domain.RecoveryRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *memRecoveryRepo) ListRecoveryRequests(filter domain.RecoveryFilter) ([]*domain.RecoveryRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.RecoveryRequest
	for _, request := range r.requests {
		if filter.VaultID != "" && request.VaultID != filter.VaultID {
			continue
		}
		if filter.Status != nil && request.Status != *filter.Status {
			continue
		}
		copied := *request
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

func (r *memRecoveryRepo) UpdateStatus(
	requestID string,
	allowedFrom []domain.RecoveryStatus,
	to domain.RecoveryStatus,
	patch domain.RecoveryPatch,
	entry domain.AuditEntry,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return false, domain.ErrNotFound
	}

	allowed := false
	for _, status := range allowedFrom {
		if request.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return false, nil
	}

	request.Status = to
	request.AuditLog = append(request.AuditLog, entry)
	if patch.CureExpiresAt != nil {
		request.CureExpiresAt = patch.CureExpiresAt
	}
	if patch.Challenge != nil {
		request.Challenge = patch.Challenge
	}
	if patch.SharesCollected != nil {
		request.SharesCollected = *patch.SharesCollected
	}
	if patch.ExecutedAt != nil {
		request.ExecutedAt = patch.ExecutedAt
	}
	request.UpdatedAt = entry.Timestamp
	return true, nil
}

func (r *memRecoveryRepo) AppendAudit(requestID string, entry domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return domain.ErrNotFound
	}
	request.AuditLog = append(request.AuditLog, entry)
	return nil
}

func (r *memRecoveryRepo) SetSharesCollected(requestID string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return domain.ErrNotFound
	}
	request.SharesCollected = count
	return nil
}

func (r *memRecoveryRepo) SetReminderSent(requestID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return domain.ErrNotFound
	}
	request.ReminderSentAt = &at
	return nil
}

func (r *memRecoveryRepo) MarkArchived(requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return domain.ErrNotFound
	}
	request.Archived = true
	return nil
}

func (r *memRecoveryRepo) ExecuteTransfer(
	requestID, vaultID, newOwnerID string,
	executedAt time.Time,
	entry domain.AuditEntry,
) (bool, error) {
	r.mu.Lock()
	request, ok := r.requests[requestID]
	if !ok {
		r.mu.Unlock()
		return false, domain.ErrNotFound
	}
	if request.Status != domain.RecoveryApproved {
		r.mu.Unlock()
		return false, nil
	}
	request.Status = domain.RecoveryExecuted
	request.ExecutedAt = &executedAt
	request.AuditLog = append(request.AuditLog, entry)
	request.UpdatedAt = executedAt
	r.mu.Unlock()

	if err := r.vaults.UpdateOwner(vaultID, newOwnerID); err != nil {
		return false, err
	}
	return true, nil
}

func (r *memRecoveryRepo) FindExpired(now time.Time) ([]*domain.RecoveryRequest, error) {
	return r.find(func(request *domain.RecoveryRequest) bool {
		switch request.Status {
		case domain.RecoveryInitiated, domain.RecoveryCollectingShards, domain.RecoveryCurePeriod:
			return request.ExpiresAt.Before(now)
		}
		return false
	})
}

func (r *memRecoveryRepo) FindCureElapsed(now time.Time) ([]*domain.RecoveryRequest, error) {
	return r.find(func(request *domain.RecoveryRequest) bool {
		return request.Status == domain.RecoveryCurePeriod &&
			request.CureExpiresAt != nil && request.CureExpiresAt.Before(now)
	})
}

func (r *memRecoveryRepo) FindStale(createdBefore time.Time) ([]*domain.RecoveryRequest, error) {
	return r.find(func(request *domain.RecoveryRequest) bool {
		if request.Status != domain.RecoveryInitiated && request.Status != domain.RecoveryCollectingShards {
			return false
		}
		return request.CreatedAt.Before(createdBefore) && request.ReminderSentAt == nil
	})
}

func (r *memRecoveryRepo) FindArchivable(completedBefore time.Time) ([]*domain.RecoveryRequest, error) {
	return r.find(func(request *domain.RecoveryRequest) bool {
		return request.Status.Terminal() && !request.Archived && request.UpdatedAt.Before(completedBefore)
	})
}

func (r *memRecoveryRepo) find(match func(*domain.RecoveryRequest) bool) ([]*domain.RecoveryRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.RecoveryRequest
	for _, request := range r.requests {
		if match(request) {
			copied := *request
			result = append(result, &copied)
		}
	}
	return result, nil
}

type stubAccounts struct {
	exists bool
	err    error
}

func (s *stubAccounts) AccountExists(userID string) (bool, error) {
	return s.exists, s.err
}

type memPublisher struct {
	mu     sync.Mutex
	events []domain.RecoveryEvent
}

func (p *memPublisher) PublishRecoveryEvent(event domain.RecoveryEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type memNotifier struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func (n *memNotifier) Notify(notification domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
	return nil
}

func (n *memNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	result := make([]string, len(n.notifications))
	for i, notification := range n.notifications {
		result[i] = notification.Kind
	}
	return result
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(guardianID string) bool { return true }

type denyLimiter struct{}

func (denyLimiter) Allow(guardianID string) bool { return false }
