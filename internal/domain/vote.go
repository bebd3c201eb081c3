package domain

import "time"

type VoteType string

const (
	VoteShardSubmission VoteType = "SHARD_SUBMISSION"
	VoteApproval        VoteType = "APPROVAL_VOTE"
)

// GuardianVote is one guardian action against a recovery request. A
// guardian gets at most one row per (request, vote type); the persistence
// layer enforces the uniqueness.
type GuardianVote struct {
	ID                string
	RecoveryRequestID string
	GuardianID        string
	VoteType          VoteType
	SharePayload      string
	Decision          string
	Comments          string
	ExpiresAt         *time.Time
	Expired           bool
	CreatedAt         time.Time
}

type VoteRepository interface {
	// CreateVote inserts the vote; a duplicate (request, guardian, vote type)
	// returns ErrAlreadySubmitted.
	CreateVote(vote *GuardianVote) error
	ListVotesByRequest(requestID string, voteType VoteType) ([]*GuardianVote, error)
	CountVotesByRequest(requestID string, voteType VoteType) (int64, error)
	FindExpiredVotes(now time.Time) ([]*GuardianVote, error)
	MarkVoteExpired(voteID string) error
}
