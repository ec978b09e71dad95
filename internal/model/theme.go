package model

import "time"

type Theme struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	ProjectID   uint64    `gorm:"not null;index" json:"project_id"`
	Name        string    `gorm:"not null" json:"name"`
	Code        string    `gorm:"not null;uniqueIndex" json:"code"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	IsActive    bool      `gorm:"not null;default:1" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Theme) TableName() string {
	return "themes"
}
