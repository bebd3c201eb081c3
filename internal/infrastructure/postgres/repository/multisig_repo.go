package repository

import (
	"errors"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultMultiSigRepository struct {
	db *gorm.DB
}

func NewDefaultMultiSigRepository(db *gorm.DB) *DefaultMultiSigRepository {
	return &DefaultMultiSigRepository{db: db}
}

func (r *DefaultMultiSigRepository) CreateRule(rule *domain.MultiSigRule) error {
	ruleModel := mappers.ToGORMRule(rule)
	if err := r.db.Create(ruleModel).Error; err != nil {
		return err
	}
	rule.ID = ruleModel.ID
	return nil
}

func (r *DefaultMultiSigRepository) GetRuleByID(ruleID string) (*domain.MultiSigRule, error) {
	var ruleModel models.MultiSigRuleModel
	if err := r.db.Model(&models.MultiSigRuleModel{}).Where("id = ?", ruleID).First(&ruleModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainRule(&ruleModel), nil
}

func (r *DefaultMultiSigRepository) ListRulesByVault(vaultID string) ([]*domain.MultiSigRule, error) {
	var ruleModels []models.MultiSigRuleModel
	if err := r.db.Model(&models.MultiSigRuleModel{}).
		Where("vault_id = ?", vaultID).
		Order("created_at ASC").
		Find(&ruleModels).Error; err != nil {
		return nil, err
	}

	rules := make([]*domain.MultiSigRule, len(ruleModels))
	for i, ruleModel := range ruleModels {
		rules[i] = mappers.ToDomainRule(&ruleModel)
	}

	return rules, nil
}

func (r *DefaultMultiSigRepository) FindApplicableRule(vaultID, triggerType string, amount float64) (*domain.MultiSigRule, error) {
	var ruleModel models.MultiSigRuleModel
	if err := r.db.Model(&models.MultiSigRuleModel{}).
		Where("vault_id = ?", vaultID).
		Where("trigger_type = ?", triggerType).
		Where("active = ?", true).
		Where("min_amount <= ?", amount).
		Where("max_amount = 0 OR max_amount >= ?", amount).
		Order("min_amount DESC").
		First(&ruleModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainRule(&ruleModel), nil
}

func (r *DefaultMultiSigRepository) CreateApprovalRequest(request *domain.ApprovalRequest) error {
	requestModel := mappers.ToGORMApprovalRequest(request)
	if err := r.db.Create(requestModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	request.ID = requestModel.ID
	return nil
}

func (r *DefaultMultiSigRepository) GetApprovalRequestByTransactionID(transactionID string) (*domain.ApprovalRequest, error) {
	var requestModel models.ApprovalRequestModel
	if err := r.db.Model(&models.ApprovalRequestModel{}).
		Where("transaction_id = ?", transactionID).
		First(&requestModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainApprovalRequest(&requestModel), nil
}

func (r *DefaultMultiSigRepository) CreateApprovalVote(vote *domain.ApprovalVote) error {
	voteModel := mappers.ToGORMApprovalVote(vote)
	if err := r.db.Create(voteModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadySubmitted
		}
		return err
	}
	vote.ID = voteModel.ID
	return nil
}

func (r *DefaultMultiSigRepository) ListApprovalVotes(transactionID string) ([]*domain.ApprovalVote, error) {
	var voteModels []models.ApprovalVoteModel
	if err := r.db.Model(&models.ApprovalVoteModel{}).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&voteModels).Error; err != nil {
		return nil, err
	}

	votes := make([]*domain.ApprovalVote, len(voteModels))
	for i, voteModel := range voteModels {
		votes[i] = mappers.ToDomainApprovalVote(&voteModel)
	}

	return votes, nil
}
