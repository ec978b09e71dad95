package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CollectionRepo 推文归属关系的只读查询
type CollectionRepo interface {
	GetAuthorThemeCodesByDay(ctx context.Context, authorID string, day time.Time) ([]string, error)
	GetThemeCodesByAuthorsBetween(ctx context.Context, from, to time.Time) (map[string][]string, error)
}

type collectionRepoImpl struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepo {
	return &collectionRepoImpl{db: db}
}

func (r *collectionRepoImpl) GetAuthorThemeCodesByDay(ctx context.Context, authorID string, day time.Time) ([]string, error) {
	codes := make([]string, 0)
	result := r.db.WithContext(ctx).
		Table("collections AS c").
		Distinct("c.theme_code").
		Joins("JOIN tweets_deduplicated AS t ON t.tweet_id = c.tweet_id").
		Where("t.author_id = ?", authorID).
		Where("t.created_at >= ? AND t.created_at < ?", day, day.AddDate(0, 0, 1)).
		Pluck("c.theme_code", &codes)
	if result.Error != nil {
		return nil, result.Error
	}
	return codes, nil
}

// GetThemeCodesByAuthorsBetween 一次查询取回窗口内所有 作者→主题 映射，
// 供情报层计算跨主题广度，避免按作者逐个回库
func (r *collectionRepoImpl) GetThemeCodesByAuthorsBetween(ctx context.Context, from, to time.Time) (map[string][]string, error) {
	type row struct {
		AuthorID  string
		ThemeCode string
	}
	rows := make([]row, 0)
	result := r.db.WithContext(ctx).
		Table("collections AS c").
		Select("DISTINCT t.author_id, c.theme_code").
		Joins("JOIN tweets_deduplicated AS t ON t.tweet_id = c.tweet_id").
		Where("t.created_at >= ? AND t.created_at < ?", from, to).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	codes := make(map[string][]string, len(rows))
	for _, v := range rows {
		codes[v.AuthorID] = append(codes[v.AuthorID], v.ThemeCode)
	}
	return codes, nil
}
