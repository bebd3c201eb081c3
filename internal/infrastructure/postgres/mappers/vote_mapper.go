package mappers

import (
	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
)

func ToDomainVote(model *models.GuardianVoteModel) *domain.GuardianVote {
	return &domain.GuardianVote{
		ID:                model.ID,
		RecoveryRequestID: model.RecoveryRequestID,
		GuardianID:        model.GuardianID,
		VoteType:          domain.VoteType(model.VoteType),
		SharePayload:      model.SharePayload,
		Decision:          model.Decision,
		Comments:          model.Comments,
		ExpiresAt:         model.ExpiresAt,
		Expired:           model.Expired,
		CreatedAt:         model.CreatedAt,
	}
}

func ToGORMVote(vote *domain.GuardianVote) *models.GuardianVoteModel {
	return &models.GuardianVoteModel{
		ID:                vote.ID,
		RecoveryRequestID: vote.RecoveryRequestID,
		GuardianID:        vote.GuardianID,
		VoteType:          string(vote.VoteType),
		SharePayload:      vote.SharePayload,
		Decision:          vote.Decision,
		Comments:          vote.Comments,
		ExpiresAt:         vote.ExpiresAt,
		Expired:           vote.Expired,
		CreatedAt:         vote.CreatedAt,
	}
}
