package repository

import (
	"Neuron/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthorProfileRepo interface {
	Upsert(ctx context.Context, profile *model.AuthorDailyProfile) error
	GetByAuthorRange(ctx context.Context, authorID string, from, to time.Time) ([]*model.AuthorDailyProfile, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.AuthorDailyProfile, error)
}

type authorProfileRepoImpl struct {
	db *gorm.DB
}

func NewAuthorProfileRepository(db *gorm.DB) AuthorProfileRepo {
	return &authorProfileRepoImpl{db: db}
}

// Upsert 按 (profile_date, author_id) 整行覆盖
func (r *authorProfileRepoImpl) Upsert(ctx context.Context, profile *model.AuthorDailyProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile_date"}, {Name: "author_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tweet_count", "original_count", "reply_count", "retweet_count", "quote_count",
			"total_engagement", "avg_engagement",
			"active_hours", "peak_hour", "posting_velocity",
			"viral_tweets", "themes_engaged", "computed_at",
		}),
	}).Create(profile).Error
}

func (r *authorProfileRepoImpl) GetByAuthorRange(ctx context.Context, authorID string, from, to time.Time) ([]*model.AuthorDailyProfile, error) {
	profiles := make([]*model.AuthorDailyProfile, 0)
	result := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Where("profile_date >= ? AND profile_date <= ?", from, to).
		Order("profile_date ASC").
		Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}
	return profiles, nil
}

func (r *authorProfileRepoImpl) GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.AuthorDailyProfile, error) {
	profiles := make([]*model.AuthorDailyProfile, 0)
	result := r.db.WithContext(ctx).
		Where("profile_date >= ? AND profile_date <= ?", from, to).
		Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}
	return profiles, nil
}
