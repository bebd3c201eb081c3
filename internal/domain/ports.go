package domain

import "time"

// RecoveryEvent is published to the message broker on every recovery
// lifecycle transition.
type RecoveryEvent struct {
	EventID   string    `json:"event_id"`
	VaultID   string    `json:"vault_id"`
	RequestID string    `json:"request_id"`
	Status    string    `json:"status"`
	Actor     string    `json:"actor"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

type RecoveryEventPublisher interface {
	PublishRecoveryEvent(event RecoveryEvent) error
}

// Notification is the structured signal handed to the external delivery
// collaborator. The core never performs delivery itself.
type Notification struct {
	TargetUserID string            `json:"target_user_id"`
	Kind         string            `json:"kind"`
	Payload      map[string]string `json:"payload"`
}

type Notifier interface {
	Notify(notification Notification) error
}

// SubmissionLimiter is the best-effort per-guardian rate limit consulted
// before shard and approval submissions. It is not a correctness
// mechanism; the vote uniqueness constraint is.
type SubmissionLimiter interface {
	Allow(guardianID string) bool
}

// AccountProvider resolves user account identifiers against the external
// account service.
type AccountProvider interface {
	AccountExists(userID string) (bool, error)
}
