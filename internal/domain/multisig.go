package domain

import "time"

type ApprovalLogic string

const (
	ApprovalLogicAll      ApprovalLogic = "ALL"
	ApprovalLogicWeighted ApprovalLogic = "WEIGHTED"
)

// MultiSigRule is a per-vault policy gating a single risky transaction
// type within an amount range. Independent of vault recovery.
type MultiSigRule struct {
	ID              string
	VaultID         string
	TriggerType     string
	MinAmount       float64
	MaxAmount       float64
	Logic           ApprovalLogic
	RequiredPercent int
	TimeoutHours    int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Covers reports whether the rule applies to the given amount. A zero
// MaxAmount means no upper bound.
func (r *MultiSigRule) Covers(amount float64) bool {
	if amount < r.MinAmount {
		return false
	}
	if r.MaxAmount > 0 && amount > r.MaxAmount {
		return false
	}
	return true
}

// ApprovalRequest is the per-transaction approval context. It lives only
// as long as the transaction it gates.
type ApprovalRequest struct {
	ID            string
	VaultID       string
	TransactionID string
	RuleID        string
	RequestedAt   time.Time
}

type ApprovalVote struct {
	ID            string
	TransactionID string
	GuardianID    string
	Approved      bool
	Comments      string
	CreatedAt     time.Time
}

type ApprovalStatus struct {
	Approved       bool
	TimedOut       bool
	ApprovedWeight int
	RequiredWeight int
	VotesCast      int
}

type MultiSigRepository interface {
	CreateRule(rule *MultiSigRule) error
	GetRuleByID(ruleID string) (*MultiSigRule, error)
	ListRulesByVault(vaultID string) ([]*MultiSigRule, error)
	FindApplicableRule(vaultID, triggerType string, amount float64) (*MultiSigRule, error)

	CreateApprovalRequest(request *ApprovalRequest) error
	GetApprovalRequestByTransactionID(transactionID string) (*ApprovalRequest, error)

	// CreateApprovalVote inserts the vote; a duplicate (transaction,
	// guardian) returns ErrAlreadySubmitted.
	CreateApprovalVote(vote *ApprovalVote) error
	ListApprovalVotes(transactionID string) ([]*ApprovalVote, error)
}
