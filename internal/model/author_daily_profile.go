package model

import "time"

// AuthorDailyProfile 作者单日行为画像，(profile_date, author_id) 上恰好一行，
// 重算整行覆盖。刻意保持窄表，宽表方案已被废弃
type AuthorDailyProfile struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	ProfileDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_author_date" json:"profile_date"`
	AuthorID    string    `gorm:"not null;size:64;uniqueIndex:idx_author_date" json:"author_id"`

	TweetCount    int `gorm:"not null;default:0" json:"tweet_count"`
	OriginalCount int `gorm:"not null;default:0" json:"original_count"`
	ReplyCount    int `gorm:"not null;default:0" json:"reply_count"`
	RetweetCount  int `gorm:"not null;default:0" json:"retweet_count"`
	QuoteCount    int `gorm:"not null;default:0" json:"quote_count"`

	TotalEngagement int64   `gorm:"not null;default:0" json:"total_engagement"`
	AvgEngagement   float64 `gorm:"not null;default:0" json:"avg_engagement"`

	ActiveHours     int     `gorm:"not null;default:0" json:"active_hours"`
	PeakHour        int     `gorm:"not null;default:0" json:"peak_hour"`
	PostingVelocity float64 `gorm:"not null;default:0" json:"posting_velocity"`

	ViralTweets   int `gorm:"not null;default:0" json:"viral_tweets"`
	ThemesEngaged int `gorm:"not null;default:0" json:"themes_engaged"`

	ComputedAt time.Time `gorm:"not null" json:"computed_at"`
}

func (AuthorDailyProfile) TableName() string {
	return "author_daily_profiles"
}
