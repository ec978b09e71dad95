package model

import "time"

// UserProfile 作者档案快照，由采集管道维护，本服务只读
type UserProfile struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"not null;uniqueIndex" json:"user_id"`
	Username       string    `gorm:"not null" json:"username"`
	DisplayName    string    `json:"display_name"`
	Verified       bool      `json:"verified"`
	FollowersCount int       `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount int       `gorm:"not null;default:0" json:"following_count"`
	StatusesCount  int       `gorm:"not null;default:0" json:"statuses_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
