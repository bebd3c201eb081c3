package domain

import "time"

type RecoveryStatus string

const (
	RecoveryInitiated        RecoveryStatus = "INITIATED"
	RecoveryCollectingShards RecoveryStatus = "COLLECTING_SHARDS"
	RecoveryCurePeriod       RecoveryStatus = "CURE_PERIOD"
	RecoveryChallenged       RecoveryStatus = "CHALLENGED"
	RecoveryApproved         RecoveryStatus = "APPROVED"
	RecoveryExecuted         RecoveryStatus = "EXECUTED"
	RecoveryRejected         RecoveryStatus = "REJECTED"
	RecoveryExpired          RecoveryStatus = "EXPIRED"
)

func (s RecoveryStatus) Terminal() bool {
	return s == RecoveryExecuted || s == RecoveryRejected || s == RecoveryExpired
}

// NonTerminalStatuses lists every status the housekeeping expiry pass
// may transition to EXPIRED.
func NonTerminalStatuses() []RecoveryStatus {
	return []RecoveryStatus{
		RecoveryInitiated,
		RecoveryCollectingShards,
		RecoveryCurePeriod,
		RecoveryChallenged,
		RecoveryApproved,
	}
}

type AuditEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Details   string    `json:"details"`
}

type ChallengeInfo struct {
	ChallengerID string
	Reason       string
	ChallengedAt time.Time
}

type RecoveryRequest struct {
	ID              string
	VaultID         string
	InitiatorID     string
	NewOwnerID      string
	Status          RecoveryStatus
	RequiredShares  int
	TotalShares     int
	SharesCollected int
	CurePeriodDays  int
	CureExpiresAt   *time.Time
	ExpiresAt       time.Time
	Challenge       *ChallengeInfo
	AuditLog        []AuditEntry
	ReminderSentAt  *time.Time
	Archived        bool
	ExecutedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecoveryPatch carries the optional fields a conditional status update
// may set alongside the transition itself.
type RecoveryPatch struct {
	CureExpiresAt   *time.Time
	Challenge       *ChallengeInfo
	SharesCollected *int
	ExecutedAt      *time.Time
}

type RecoveryFilter struct {
	VaultID string
	Status  *RecoveryStatus
	Page    int
	Limit   int
}

type RecoveryRepository interface {
	CreateRecoveryRequest(request *RecoveryRequest) error
	GetRecoveryRequestByID(requestID string) (*RecoveryRequest, error)
	ListRecoveryRequests(filter RecoveryFilter) ([]*RecoveryRequest, int64, error)

	// UpdateStatus performs a compare-and-set transition: the update applies
	// only if the current status is one of allowedFrom, and the audit entry
	// is appended in the same transaction. Returns false when the request
	// was not in an allowed status.
	UpdateStatus(requestID string, allowedFrom []RecoveryStatus, to RecoveryStatus, patch RecoveryPatch, entry AuditEntry) (bool, error)

	// AppendAudit appends an entry to the request's audit log under a row
	// lock, without changing status.
	AppendAudit(requestID string, entry AuditEntry) error

	SetSharesCollected(requestID string, count int) error
	SetReminderSent(requestID string, at time.Time) error
	MarkArchived(requestID string) error

	// ExecuteTransfer atomically moves an APPROVED request to EXECUTED and
	// transfers vault ownership in the same transaction. Returns false when
	// the request was not APPROVED, so a concurrent second executor loses.
	ExecuteTransfer(requestID, vaultID, newOwnerID string, executedAt time.Time, entry AuditEntry) (bool, error)

	FindExpired(now time.Time) ([]*RecoveryRequest, error)
	FindCureElapsed(now time.Time) ([]*RecoveryRequest, error)
	FindStale(createdBefore time.Time) ([]*RecoveryRequest, error)
	FindArchivable(completedBefore time.Time) ([]*RecoveryRequest, error)
}
