package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RecoveryMetrics holds all recovery protocol metrics
type RecoveryMetrics struct {
	RecoveriesInitiatedTotal prometheus.CounterVec
	RecoveriesExecutedTotal  prometheus.CounterVec
	RecoveriesRejectedTotal  prometheus.CounterVec
	RecoveriesExpiredTotal   prometheus.CounterVec
	RecoveriesChallengedTotal prometheus.CounterVec

	ShardsSubmittedTotal          prometheus.CounterVec
	ReconstructionAttemptsTotal   prometheus.CounterVec
	ReconstructionFailuresTotal   prometheus.CounterVec

	ApprovalVotesTotal prometheus.CounterVec

	SweepDuration   prometheus.HistogramVec
	SweepErrorsTotal prometheus.CounterVec

	ErrorsTotal prometheus.CounterVec
}

func NewRecoveryMetrics() *RecoveryMetrics {
	return &RecoveryMetrics{
		RecoveriesInitiatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recoveries_initiated_total",
				Help: "Total recovery requests initiated",
			},
			[]string{"vault_id"},
		),

		RecoveriesExecutedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recoveries_executed_total",
				Help: "Total recoveries executed (ownership transferred)",
			},
			[]string{"vault_id"},
		),

		RecoveriesRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recoveries_rejected_total",
				Help: "Total recovery requests rejected",
			},
			[]string{"vault_id"},
		),

		RecoveriesExpiredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recoveries_expired_total",
				Help: "Total recovery requests expired by the housekeeping sweep",
			},
			[]string{"vault_id"},
		),

		RecoveriesChallengedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recoveries_challenged_total",
				Help: "Total recovery requests challenged during the cure period",
			},
			[]string{"vault_id"},
		),

		ShardsSubmittedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recovery_shards_submitted_total",
				Help: "Total guardian shard submissions accepted",
			},
			[]string{"vault_id"},
		),

		ReconstructionAttemptsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recovery_reconstruction_attempts_total",
				Help: "Total secret reconstruction attempts",
			},
			[]string{"vault_id"},
		),

		ReconstructionFailuresTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recovery_reconstruction_failures_total",
				Help: "Total reconstruction attempts failing the commitment check",
			},
			[]string{"vault_id"},
		),

		ApprovalVotesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multisig_approval_votes_total",
				Help: "Total multi-sig approval votes recorded",
			},
			[]string{"vault_id", "decision"},
		),

		SweepDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "housekeeping_sweep_duration_seconds",
				Help:    "Duration of a full housekeeping sweep",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{},
		),

		SweepErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "housekeeping_sweep_errors_total",
				Help: "Per-item failures inside the housekeeping sweep",
			},
			[]string{"task"},
		),

		ErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recovery_errors_total",
				Help: "Total errors by operation and type",
			},
			[]string{"operation", "error_type"},
		),
	}
}

func (m *RecoveryMetrics) RecordInitiated(vaultID string) {
	m.RecoveriesInitiatedTotal.WithLabelValues(vaultID).Inc()
}

func (m *RecoveryMetrics) RecordExecuted(vaultID string) {
	m.RecoveriesExecutedTotal.WithLabelValues(vaultID).Inc()
}

func (m *RecoveryMetrics) RecordRejected(vaultID string) {
	m.RecoveriesRejectedTotal.WithLabelValues(vaultID).Inc()
}

func (m *RecoveryMetrics) RecordExpired(vaultID string) {
	m.RecoveriesExpiredTotal.WithLabelValues(vaultID).Inc()
}

func (m *RecoveryMetrics) RecordChallenged(vaultID string) {
	m.RecoveriesChallengedTotal.WithLabelValues(vaultID).Inc()
}

func (m *RecoveryMetrics) RecordShardSubmitted(vaultID string) {
	m.ShardsSubmittedTotal.WithLabelValues(vaultID).Inc()
}

func (m *RecoveryMetrics) RecordReconstruction(vaultID string, ok bool) {
	m.ReconstructionAttemptsTotal.WithLabelValues(vaultID).Inc()
	if !ok {
		m.ReconstructionFailuresTotal.WithLabelValues(vaultID).Inc()
	}
}

func (m *RecoveryMetrics) RecordApprovalVote(vaultID string, approved bool) {
	decision := "reject"
	if approved {
		decision = "approve"
	}
	m.ApprovalVotesTotal.WithLabelValues(vaultID, decision).Inc()
}

func (m *RecoveryMetrics) RecordSweepDuration(seconds float64) {
	m.SweepDuration.WithLabelValues().Observe(seconds)
}

func (m *RecoveryMetrics) RecordSweepError(task string) {
	m.SweepErrorsTotal.WithLabelValues(task).Inc()
}

func (m *RecoveryMetrics) RecordError(operation, errorType string) {
	m.ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}
