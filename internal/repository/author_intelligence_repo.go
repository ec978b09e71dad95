package repository

import (
	"Neuron/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 排名查询允许的得分列，防止拼接任意列名
var intelScoreColumns = map[string]struct{}{
	"influence_score":     {},
	"coordination_risk":   {},
	"authority_score":     {},
	"monitoring_priority": {},
}

type AuthorIntelligenceRepo interface {
	Upsert(ctx context.Context, intel *model.AuthorIntelligence) error
	Get(ctx context.Context, authorID string, analysisDate time.Time, period int) (*model.AuthorIntelligence, error)
	TopByScore(ctx context.Context, scoreColumn string, analysisDate time.Time, period, limit int) ([]*model.AuthorIntelligence, error)
}

type authorIntelligenceRepoImpl struct {
	db *gorm.DB
}

func NewAuthorIntelligenceRepository(db *gorm.DB) AuthorIntelligenceRepo {
	return &authorIntelligenceRepoImpl{db: db}
}

// Upsert 按 (analysis_date, author_id, analysis_period) 整行覆盖
func (r *authorIntelligenceRepoImpl) Upsert(ctx context.Context, intel *model.AuthorIntelligence) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "analysis_date"}, {Name: "author_id"}, {Name: "analysis_period"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"tweet_count", "influence_score", "authority_score", "coordination_risk",
			"betweenness_centrality", "network_reach", "cross_reference_rate",
			"semantic_diversity", "hashtag_coordination", "amplification_factor",
			"monitoring_priority", "computed_at",
		}),
	}).Create(intel).Error
}

func (r *authorIntelligenceRepoImpl) Get(ctx context.Context, authorID string, analysisDate time.Time, period int) (*model.AuthorIntelligence, error) {
	var intel model.AuthorIntelligence
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND analysis_date = ? AND analysis_period = ?", authorID, analysisDate, period).
		First(&intel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &intel, nil
}

func (r *authorIntelligenceRepoImpl) TopByScore(ctx context.Context, scoreColumn string, analysisDate time.Time, period, limit int) ([]*model.AuthorIntelligence, error) {
	if _, ok := intelScoreColumns[scoreColumn]; !ok {
		return nil, fmt.Errorf("unsupported score column: %s", scoreColumn)
	}
	intels := make([]*model.AuthorIntelligence, 0, limit)
	result := r.db.WithContext(ctx).
		Where("analysis_date = ? AND analysis_period = ?", analysisDate, period).
		Order(scoreColumn + " DESC").
		Limit(limit).
		Find(&intels)
	if result.Error != nil {
		return nil, result.Error
	}
	return intels, nil
}
