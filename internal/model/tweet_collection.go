package model

import "time"

// TweetCollection 推文与项目/主题的归属关系，由采集管道维护，本服务只读
type TweetCollection struct {
	TweetID   string `gorm:"primaryKey;column:tweet_id" json:"tweet_id"`
	ProjectID uint64 `gorm:"primaryKey" json:"project_id"`
	ThemeCode string `gorm:"primaryKey" json:"theme_code"`
	ThemeName string `gorm:"not null" json:"theme_name"`

	FirstCollectedAt time.Time `json:"first_collected_at"`
	LastCollectedAt  time.Time `json:"last_collected_at"`
}

func (TweetCollection) TableName() string {
	return "collections"
}
