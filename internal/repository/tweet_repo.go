package repository

import (
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"context"
	"time"

	"gorm.io/gorm"
)

// TweetRepo 原始推文库的只读适配层。所有写入都发生在采集管道，
// 这里只允许按实体归属或作者切片读取
type TweetRepo interface {
	GetEntityTweetsByDay(ctx context.Context, entityType, entityID string, day time.Time) ([]*model.Tweet, error)
	GetEntityAuthorIDsBetween(ctx context.Context, entityType, entityID string, from, to time.Time) ([]string, error)
	GetActiveAuthorIDsByDay(ctx context.Context, day time.Time) ([]string, error)
	GetAuthorTweetsByDay(ctx context.Context, authorID string, day time.Time) ([]*model.Tweet, error)
	GetTweetsBetween(ctx context.Context, from, to time.Time) ([]*model.Tweet, error)
}

type tweetRepoImpl struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepo {
	return &tweetRepoImpl{db: db}
}

// entityJoin 按实体类型拼出推文与归属关系的连接条件
func (r *tweetRepoImpl) entityJoin(entityType, entityID string) (string, interface{}) {
	if entityType == consts.EntityTypeProject {
		return "c.project_id = ?", entityID
	}
	return "c.theme_code = ?", entityID
}

func (r *tweetRepoImpl) GetEntityTweetsByDay(ctx context.Context, entityType, entityID string, day time.Time) ([]*model.Tweet, error) {
	cond, arg := r.entityJoin(entityType, entityID)
	tweets := make([]*model.Tweet, 0)
	result := r.db.WithContext(ctx).
		Table("tweets_deduplicated AS t").
		Select("DISTINCT t.*").
		Joins("JOIN collections AS c ON c.tweet_id = t.tweet_id").
		Where(cond, arg).
		Where("t.created_at >= ? AND t.created_at < ?", day, day.AddDate(0, 0, 1)).
		Find(&tweets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tweets, nil
}

func (r *tweetRepoImpl) GetEntityAuthorIDsBetween(ctx context.Context, entityType, entityID string, from, to time.Time) ([]string, error) {
	cond, arg := r.entityJoin(entityType, entityID)
	authorIDs := make([]string, 0)
	result := r.db.WithContext(ctx).
		Table("tweets_deduplicated AS t").
		Distinct("t.author_id").
		Joins("JOIN collections AS c ON c.tweet_id = t.tweet_id").
		Where(cond, arg).
		Where("t.created_at >= ? AND t.created_at < ?", from, to).
		Pluck("t.author_id", &authorIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return authorIDs, nil
}

func (r *tweetRepoImpl) GetActiveAuthorIDsByDay(ctx context.Context, day time.Time) ([]string, error) {
	authorIDs := make([]string, 0)
	result := r.db.WithContext(ctx).
		Model(&model.Tweet{}).
		Distinct("author_id").
		Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1)).
		Where("author_id <> ''").
		Pluck("author_id", &authorIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return authorIDs, nil
}

func (r *tweetRepoImpl) GetAuthorTweetsByDay(ctx context.Context, authorID string, day time.Time) ([]*model.Tweet, error) {
	tweets := make([]*model.Tweet, 0)
	result := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1)).
		Order("created_at ASC").
		Find(&tweets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tweets, nil
}

// GetTweetsBetween 拉取窗口内全部推文，供协同检测做单遍扫描。
// 只取评分需要的列，避免把正文等大字段拖进内存
func (r *tweetRepoImpl) GetTweetsBetween(ctx context.Context, from, to time.Time) ([]*model.Tweet, error) {
	tweets := make([]*model.Tweet, 0)
	result := r.db.WithContext(ctx).
		Select("tweet_id", "author_id", "tweet_type", "created_at",
			"retweet_count", "reply_count", "like_count", "quote_count",
			"bookmark_count", "view_count",
			"in_reply_to_user_id", "quoted_tweet_id", "retweeted_tweet_id",
			"hashtags", "urls").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&tweets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tweets, nil
}
