package model

import "time"

// TierRun 各计算层级的运行台账。(tier, run_date, period) 上恰好一行，
// 既是调度状态机，也是滚动窗口依赖检查的依据
type TierRun struct {
	ID      uint64    `gorm:"primaryKey" json:"id"`
	Tier    string    `gorm:"not null;size:32;uniqueIndex:idx_tier_run" json:"tier"`
	RunDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_tier_run" json:"run_date"`
	Period  int       `gorm:"not null;default:0;uniqueIndex:idx_tier_run" json:"period"`

	Status      string `gorm:"not null;size:16" json:"status"` // running / succeeded / failed
	ItemsTotal  int    `gorm:"not null;default:0" json:"items_total"`
	ItemsFailed int    `gorm:"not null;default:0" json:"items_failed"`
	Error       string `gorm:"type:text" json:"error,omitempty"`

	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (TierRun) TableName() string {
	return "tier_runs"
}
