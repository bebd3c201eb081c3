package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultRecoveryRepository struct {
	db *gorm.DB
}

func NewDefaultRecoveryRepository(db *gorm.DB) *DefaultRecoveryRepository {
	return &DefaultRecoveryRepository{db: db}
}

func (r *DefaultRecoveryRepository) CreateRecoveryRequest(request *domain.RecoveryRequest) error {
	requestModel := mappers.ToGORMRecoveryRequest(request)
	if err := r.db.Create(requestModel).Error; err != nil {
		return err
	}
	request.ID = requestModel.ID
	return nil
}

func (r *DefaultRecoveryRepository) GetRecoveryRequestByID(requestID string) (*domain.RecoveryRequest, error) {
	var requestModel models.RecoveryRequestModel
	if err := r.db.Model(&models.RecoveryRequestModel{}).Where("id = ?", requestID).First(&requestModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainRecoveryRequest(&requestModel), nil
}

func (r *DefaultRecoveryRepository) ListRecoveryRequests(filter domain.RecoveryFilter) ([]*domain.RecoveryRequest, int64, error) {
	query := r.db.Model(&models.RecoveryRequestModel{})
	if filter.VaultID != "" {
		query = query.Where("vault_id = ?", filter.VaultID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	query = query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit)

	var requestModels []models.RecoveryRequestModel
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find recovery requests: %w", err)
	}

	requests := make([]*domain.RecoveryRequest, len(requestModels))
	for i, requestModel := range requestModels {
		requests[i] = mappers.ToDomainRecoveryRequest(&requestModel)
	}

	return requests, total, nil
}

// UpdateStatus locks the request row, re-checks the current status against
// allowedFrom, appends the audit entry and applies the transition in one
// transaction. Concurrent callers racing the same transition see applied=false.
func (r *DefaultRecoveryRepository) UpdateStatus(
	requestID string,
	allowedFrom []domain.RecoveryStatus,
	to domain.RecoveryStatus,
	patch domain.RecoveryPatch,
	entry domain.AuditEntry,
) (bool, error) {
	applied := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		requestModel, err := lockRecoveryRequest(tx, requestID)
		if err != nil {
			return err
		}

		if !statusAllowed(domain.RecoveryStatus(requestModel.Status), allowedFrom) {
			return nil
		}

		auditLog, err := appendAuditJSON(requestModel.AuditLog, entry)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":     string(to),
			"audit_log":  auditLog,
			"updated_at": time.Now(),
		}
		if patch.CureExpiresAt != nil {
			updates["cure_expires_at"] = *patch.CureExpiresAt
		}
		if patch.Challenge != nil {
			updates["challenger_id"] = patch.Challenge.ChallengerID
			updates["challenge_reason"] = patch.Challenge.Reason
			updates["challenged_at"] = patch.Challenge.ChallengedAt
		}
		if patch.SharesCollected != nil {
			updates["shares_collected"] = *patch.SharesCollected
		}
		if patch.ExecutedAt != nil {
			updates["executed_at"] = *patch.ExecutedAt
		}

		if err := tx.Model(&models.RecoveryRequestModel{}).Where("id = ?", requestID).Updates(updates).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})

	return applied, err
}

func (r *DefaultRecoveryRepository) AppendAudit(requestID string, entry domain.AuditEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		requestModel, err := lockRecoveryRequest(tx, requestID)
		if err != nil {
			return err
		}

		auditLog, err := appendAuditJSON(requestModel.AuditLog, entry)
		if err != nil {
			return err
		}

		return tx.Model(&models.RecoveryRequestModel{}).
			Where("id = ?", requestID).
			Updates(map[string]interface{}{
				"audit_log":  auditLog,
				"updated_at": time.Now(),
			}).Error
	})
}

func (r *DefaultRecoveryRepository) SetSharesCollected(requestID string, count int) error {
	result := r.db.Model(&models.RecoveryRequestModel{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"shares_collected": count,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultRecoveryRepository) SetReminderSent(requestID string, at time.Time) error {
	return r.db.Model(&models.RecoveryRequestModel{}).
		Where("id = ?", requestID).
		Update("reminder_sent_at", at).Error
}

func (r *DefaultRecoveryRepository) MarkArchived(requestID string) error {
	return r.db.Model(&models.RecoveryRequestModel{}).
		Where("id = ?", requestID).
		Update("archived", true).Error
}

// ExecuteTransfer is the single effectful step of the protocol: status
// moves APPROVED -> EXECUTED and vault ownership transfers in the same
// transaction. A second concurrent caller finds the row no longer
// APPROVED and gets applied=false.
func (r *DefaultRecoveryRepository) ExecuteTransfer(
	requestID, vaultID, newOwnerID string,
	executedAt time.Time,
	entry domain.AuditEntry,
) (bool, error) {
	applied := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		requestModel, err := lockRecoveryRequest(tx, requestID)
		if err != nil {
			return err
		}

		if domain.RecoveryStatus(requestModel.Status) != domain.RecoveryApproved {
			return nil
		}

		auditLog, err := appendAuditJSON(requestModel.AuditLog, entry)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.RecoveryRequestModel{}).
			Where("id = ?", requestID).
			Updates(map[string]interface{}{
				"status":      string(domain.RecoveryExecuted),
				"executed_at": executedAt,
				"audit_log":   auditLog,
				"updated_at":  time.Now(),
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.VaultModel{}).
			Where("id = ?", vaultID).
			Updates(map[string]interface{}{
				"owner_id":   newOwnerID,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})

	return applied, err
}

func (r *DefaultRecoveryRepository) FindExpired(now time.Time) ([]*domain.RecoveryRequest, error) {
	return r.findRequests(r.db.
		Where("status IN ?", []string{
			string(domain.RecoveryInitiated),
			string(domain.RecoveryCollectingShards),
			string(domain.RecoveryCurePeriod),
		}).
		Where("expires_at < ?", now))
}

func (r *DefaultRecoveryRepository) FindCureElapsed(now time.Time) ([]*domain.RecoveryRequest, error) {
	return r.findRequests(r.db.
		Where("status = ?", string(domain.RecoveryCurePeriod)).
		Where("cure_expires_at IS NOT NULL").
		Where("cure_expires_at < ?", now))
}

func (r *DefaultRecoveryRepository) FindStale(createdBefore time.Time) ([]*domain.RecoveryRequest, error) {
	return r.findRequests(r.db.
		Where("status IN ?", []string{
			string(domain.RecoveryInitiated),
			string(domain.RecoveryCollectingShards),
		}).
		Where("created_at < ?", createdBefore).
		Where("reminder_sent_at IS NULL"))
}

func (r *DefaultRecoveryRepository) FindArchivable(completedBefore time.Time) ([]*domain.RecoveryRequest, error) {
	return r.findRequests(r.db.
		Where("status IN ?", []string{
			string(domain.RecoveryExecuted),
			string(domain.RecoveryRejected),
			string(domain.RecoveryExpired),
		}).
		Where("archived = ?", false).
		Where("updated_at < ?", completedBefore))
}

func (r *DefaultRecoveryRepository) findRequests(query *gorm.DB) ([]*domain.RecoveryRequest, error) {
	var requestModels []models.RecoveryRequestModel
	if err := query.Model(&models.RecoveryRequestModel{}).Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*domain.RecoveryRequest, len(requestModels))
	for i, requestModel := range requestModels {
		requests[i] = mappers.ToDomainRecoveryRequest(&requestModel)
	}

	return requests, nil
}

func lockRecoveryRequest(tx *gorm.DB, requestID string) (*models.RecoveryRequestModel, error) {
	var requestModel models.RecoveryRequestModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", requestID).
		First(&requestModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &requestModel, nil
}

func statusAllowed(current domain.RecoveryStatus, allowedFrom []domain.RecoveryStatus) bool {
	for _, status := range allowedFrom {
		if current == status {
			return true
		}
	}
	return false
}

func appendAuditJSON(auditLog string, entry domain.AuditEntry) (string, error) {
	var entries []domain.AuditEntry
	if auditLog != "" {
		if err := json.Unmarshal([]byte(auditLog), &entries); err != nil {
			return "", fmt.Errorf("corrupted audit log: %w", err)
		}
	}
	entries = append(entries, entry)

	raw, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
