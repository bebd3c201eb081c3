package notifier

// Notification kinds emitted by the recovery core. Delivery (email, push)
// is handled by the consumer of the callback.
const (
	KindRecoveryInitiated   = "recovery_initiated"
	KindRecoveryCureEntered = "recovery_cure_entered"
	KindRecoveryChallenged  = "recovery_challenged"
	KindRecoveryExecuted    = "recovery_executed"
	KindRecoveryRejected    = "recovery_rejected"
	KindRecoveryExpired     = "recovery_expired"
	KindRecoveryReminder    = "recovery_reminder"
	KindApprovalRequested   = "approval_requested"
)
