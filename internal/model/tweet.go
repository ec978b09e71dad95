package model

import (
	"time"
)

// Tweet 去重后的原始推文，由采集管道独占写入，本服务只读
type Tweet struct {
	TweetID        string    `gorm:"primaryKey;column:tweet_id" json:"tweet_id"`
	AuthorID       string    `gorm:"index:idx_author_created" json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	TweetType      string    `json:"tweet_type"` // original / reply / retweet / quote
	Lang           string    `json:"lang"`
	TextLength     int       `json:"text_length"`
	CreatedAt      time.Time `gorm:"index:idx_author_created;index:idx_created" json:"created_at"`

	// 互动计数
	RetweetCount  int   `gorm:"not null;default:0" json:"retweet_count"`
	ReplyCount    int   `gorm:"not null;default:0" json:"reply_count"`
	LikeCount     int   `gorm:"not null;default:0" json:"like_count"`
	QuoteCount    int   `gorm:"not null;default:0" json:"quote_count"`
	BookmarkCount int   `gorm:"not null;default:0" json:"bookmark_count"`
	ViewCount     int64 `gorm:"not null;default:0" json:"view_count"`

	// 引用关系
	InReplyToID      string `json:"in_reply_to_id"`
	InReplyToUserID  string `json:"in_reply_to_user_id"`
	QuotedTweetID    string `json:"quoted_tweet_id"`
	RetweetedTweetID string `json:"retweeted_tweet_id"`

	// 实体
	Hashtags StringList `gorm:"type:json" json:"hashtags"`
	URLs     StringList `gorm:"type:json" json:"urls"`
	HasMedia bool       `json:"has_media"`

	FetchedAt time.Time `json:"fetched_at"`
}

func (Tweet) TableName() string {
	return "tweets_deduplicated"
}

// IsOriginal 是否原创推文（非回复/转推/引用）
func (t *Tweet) IsOriginal() bool {
	return t.TweetType == "" || t.TweetType == "original"
}
