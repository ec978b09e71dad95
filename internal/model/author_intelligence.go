package model

import "time"

// AuthorIntelligence 作者周期情报画像，(analysis_date, author_id, analysis_period)
// 上恰好一行。所有得分只依赖窗口内的推文与档案，可无状态重算
type AuthorIntelligence struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	AnalysisDate   time.Time `gorm:"type:date;not null;uniqueIndex:idx_intel_key" json:"analysis_date"`
	AuthorID       string    `gorm:"not null;size:64;uniqueIndex:idx_intel_key" json:"author_id"`
	AnalysisPeriod int       `gorm:"not null;uniqueIndex:idx_intel_key" json:"analysis_period"` // 7 / 30 / 90

	TweetCount int `gorm:"not null;default:0" json:"tweet_count"`

	InfluenceScore        float64 `gorm:"not null;default:0;index" json:"influence_score"`
	AuthorityScore        float64 `gorm:"not null;default:0" json:"authority_score"`
	CoordinationRisk      float64 `gorm:"not null;default:0;index" json:"coordination_risk"`
	BetweennessCentrality float64 `gorm:"not null;default:0" json:"betweenness_centrality"`
	NetworkReach          int     `gorm:"not null;default:0" json:"network_reach"`
	CrossReferenceRate    float64 `gorm:"not null;default:0" json:"cross_reference_rate"`
	SemanticDiversity     float64 `gorm:"not null;default:0" json:"semantic_diversity"`
	HashtagCoordination   float64 `gorm:"not null;default:0" json:"hashtag_coordination"`
	AmplificationFactor   float64 `gorm:"not null;default:0" json:"amplification_factor"`
	MonitoringPriority    float64 `gorm:"not null;default:0;index" json:"monitoring_priority"`

	ComputedAt time.Time `gorm:"not null" json:"computed_at"`
}

func (AuthorIntelligence) TableName() string {
	return "author_intelligence"
}
