package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/config"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-recovery-service/internal/usecase/recovery"
)

// BackgroundTasks runs the periodic housekeeping sweep over recovery
// requests and guardian votes.
type BackgroundTasks struct {
	recoveryUC recovery.RecoveryUsecase
	metrics    *metrics.RecoveryMetrics
	log        *slog.Logger

	sweepInterval time.Duration
	archiveHour   int

	// day of year of the last archival pass, so archival runs at most
	// once per day even with short sweep intervals
	lastArchiveDay int
}

func NewBackgroundTasks(
	recoveryUC recovery.RecoveryUsecase,
	recoveryMetrics *metrics.RecoveryMetrics,
	log *slog.Logger,
	cfg config.Scheduler,
) *BackgroundTasks {
	return &BackgroundTasks{
		recoveryUC:     recoveryUC,
		metrics:        recoveryMetrics,
		log:            log,
		sweepInterval:  time.Duration(cfg.SweepIntervalSeconds) * time.Second,
		archiveHour:    cfg.ArchiveHour,
		lastArchiveDay: -1,
	}
}

// StartAll launches the sweep loop. It returns immediately; the loop
// stops when ctx is cancelled.
func (t *BackgroundTasks) StartAll(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(t.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				t.log.Info("housekeeping sweep stopped")
				return
			case <-ticker.C:
				t.RunSweep(ctx, time.Now())
			}
		}
	}()
}

// RunSweep executes one full housekeeping pass. Task failures are
// counted and logged; one failing task never blocks the rest.
func (t *BackgroundTasks) RunSweep(ctx context.Context, now time.Time) {
	started := time.Now()

	t.runTask("expire_overdue", func() (int, error) {
		return t.recoveryUC.ExpireOverdueRequests(now)
	})
	t.runTask("auto_approve_cured", func() (int, error) {
		return t.recoveryUC.AutoApproveCuredRequests(now)
	})
	t.runTask("flag_expired_votes", func() (int, error) {
		return t.recoveryUC.FlagExpiredVotes(now)
	})
	t.runTask("send_reminders", func() (int, error) {
		return t.recoveryUC.SendPendingReminders(now)
	})

	if now.Hour() == t.archiveHour && now.YearDay() != t.lastArchiveDay {
		t.runTask("archive_completed", func() (int, error) {
			return t.recoveryUC.ArchiveCompletedRequests(now)
		})
		t.lastArchiveDay = now.YearDay()
	}

	if t.metrics != nil {
		t.metrics.RecordSweepDuration(time.Since(started).Seconds())
	}
}

func (t *BackgroundTasks) runTask(name string, task func() (int, error)) {
	processed, err := task()
	if err != nil {
		t.log.Error("housekeeping task failed", "task", name, "error", err)
		if t.metrics != nil {
			t.metrics.RecordSweepError(name)
		}
		return
	}
	if processed > 0 {
		t.log.Info("housekeeping task done", "task", name, "processed", processed)
	}
}
