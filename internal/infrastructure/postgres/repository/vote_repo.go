package repository

import (
	"errors"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultVoteRepository struct {
	db *gorm.DB
}

func NewDefaultVoteRepository(db *gorm.DB) *DefaultVoteRepository {
	return &DefaultVoteRepository{db: db}
}

// CreateVote relies on the composite unique index over (recovery_request_id,
// guardian_id, vote_type): concurrent duplicates from the same guardian
// produce exactly one row, the rest get ErrAlreadySubmitted.
func (r *DefaultVoteRepository) CreateVote(vote *domain.GuardianVote) error {
	voteModel := mappers.ToGORMVote(vote)
	if err := r.db.Create(voteModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadySubmitted
		}
		return err
	}
	vote.ID = voteModel.ID
	return nil
}

func (r *DefaultVoteRepository) ListVotesByRequest(requestID string, voteType domain.VoteType) ([]*domain.GuardianVote, error) {
	var voteModels []models.GuardianVoteModel
	if err := r.db.Model(&models.GuardianVoteModel{}).
		Where("recovery_request_id = ?", requestID).
		Where("vote_type = ?", string(voteType)).
		Order("created_at ASC").
		Find(&voteModels).Error; err != nil {
		return nil, err
	}

	votes := make([]*domain.GuardianVote, len(voteModels))
	for i, voteModel := range voteModels {
		votes[i] = mappers.ToDomainVote(&voteModel)
	}

	return votes, nil
}

func (r *DefaultVoteRepository) CountVotesByRequest(requestID string, voteType domain.VoteType) (int64, error) {
	var count int64
	if err := r.db.Model(&models.GuardianVoteModel{}).
		Where("recovery_request_id = ?", requestID).
		Where("vote_type = ?", string(voteType)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DefaultVoteRepository) FindExpiredVotes(now time.Time) ([]*domain.GuardianVote, error) {
	var voteModels []models.GuardianVoteModel
	if err := r.db.Model(&models.GuardianVoteModel{}).
		Where("expired = ?", false).
		Where("expires_at IS NOT NULL").
		Where("expires_at < ?", now).
		Find(&voteModels).Error; err != nil {
		return nil, err
	}

	votes := make([]*domain.GuardianVote, len(voteModels))
	for i, voteModel := range voteModels {
		votes[i] = mappers.ToDomainVote(&voteModel)
	}

	return votes, nil
}

func (r *DefaultVoteRepository) MarkVoteExpired(voteID string) error {
	return r.db.Model(&models.GuardianVoteModel{}).
		Where("id = ?", voteID).
		Update("expired", true).Error
}
