package mappers

import (
	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
)

func ToDomainRule(model *models.MultiSigRuleModel) *domain.MultiSigRule {
	return &domain.MultiSigRule{
		ID:              model.ID,
		VaultID:         model.VaultID,
		TriggerType:     model.TriggerType,
		MinAmount:       model.MinAmount,
		MaxAmount:       model.MaxAmount,
		Logic:           domain.ApprovalLogic(model.Logic),
		RequiredPercent: model.RequiredPercent,
		TimeoutHours:    model.TimeoutHours,
		Active:          model.Active,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMRule(rule *domain.MultiSigRule) *models.MultiSigRuleModel {
	return &models.MultiSigRuleModel{
		ID:              rule.ID,
		VaultID:         rule.VaultID,
		TriggerType:     rule.TriggerType,
		MinAmount:       rule.MinAmount,
		MaxAmount:       rule.MaxAmount,
		Logic:           string(rule.Logic),
		RequiredPercent: rule.RequiredPercent,
		TimeoutHours:    rule.TimeoutHours,
		Active:          rule.Active,
		CreatedAt:       rule.CreatedAt,
		UpdatedAt:       rule.UpdatedAt,
	}
}

func ToDomainApprovalRequest(model *models.ApprovalRequestModel) *domain.ApprovalRequest {
	return &domain.ApprovalRequest{
		ID:            model.ID,
		VaultID:       model.VaultID,
		TransactionID: model.TransactionID,
		RuleID:        model.RuleID,
		RequestedAt:   model.RequestedAt,
	}
}

func ToGORMApprovalRequest(request *domain.ApprovalRequest) *models.ApprovalRequestModel {
	return &models.ApprovalRequestModel{
		ID:            request.ID,
		VaultID:       request.VaultID,
		TransactionID: request.TransactionID,
		RuleID:        request.RuleID,
		RequestedAt:   request.RequestedAt,
	}
}

func ToDomainApprovalVote(model *models.ApprovalVoteModel) *domain.ApprovalVote {
	return &domain.ApprovalVote{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		GuardianID:    model.GuardianID,
		Approved:      model.Approved,
		Comments:      model.Comments,
		CreatedAt:     model.CreatedAt,
	}
}

func ToGORMApprovalVote(vote *domain.ApprovalVote) *models.ApprovalVoteModel {
	return &models.ApprovalVoteModel{
		ID:            vote.ID,
		TransactionID: vote.TransactionID,
		GuardianID:    vote.GuardianID,
		Approved:      vote.Approved,
		Comments:      vote.Comments,
		CreatedAt:     vote.CreatedAt,
	}
}
