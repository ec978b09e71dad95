package dto

import "time"

// AuthorDailyQuery 作者日画像区间查询参数
type AuthorDailyQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// AuthorIntelQuery 作者情报查询参数
type AuthorIntelQuery struct {
	Date   string `form:"date" binding:"required"`
	Period int    `form:"period,default=7"`
}

// AuthorTopQuery 作者排名查询参数
type AuthorTopQuery struct {
	Score  string `form:"score,default=monitoring_priority"`
	Date   string `form:"date" binding:"required"`
	Period int    `form:"period,default=7"`
	Limit  int    `form:"limit,default=10"`
}

// AuthorDailyDTO 作者单日行为画像返回体
type AuthorDailyDTO struct {
	ProfileDate     time.Time `json:"profile_date"`
	AuthorID        string    `json:"author_id"`
	TweetCount      int       `json:"tweet_count"`
	OriginalCount   int       `json:"original_count"`
	ReplyCount      int       `json:"reply_count"`
	RetweetCount    int       `json:"retweet_count"`
	QuoteCount      int       `json:"quote_count"`
	TotalEngagement int64     `json:"total_engagement"`
	AvgEngagement   float64   `json:"avg_engagement"`
	ActiveHours     int       `json:"active_hours"`
	PeakHour        int       `json:"peak_hour"`
	PostingVelocity float64   `json:"posting_velocity"`
	ViralTweets     int       `json:"viral_tweets"`
	ThemesEngaged   int       `json:"themes_engaged"`
}

// AuthorIntelligenceDTO 作者情报画像返回体
type AuthorIntelligenceDTO struct {
	AnalysisDate          time.Time `json:"analysis_date"`
	AuthorID              string    `json:"author_id"`
	AnalysisPeriod        int       `json:"analysis_period"`
	TweetCount            int       `json:"tweet_count"`
	InfluenceScore        float64   `json:"influence_score"`
	AuthorityScore        float64   `json:"authority_score"`
	CoordinationRisk      float64   `json:"coordination_risk"`
	BetweennessCentrality float64   `json:"betweenness_centrality"`
	NetworkReach          int       `json:"network_reach"`
	CrossReferenceRate    float64   `json:"cross_reference_rate"`
	SemanticDiversity     float64   `json:"semantic_diversity"`
	HashtagCoordination   float64   `json:"hashtag_coordination"`
	AmplificationFactor   float64   `json:"amplification_factor"`
	MonitoringPriority    float64   `json:"monitoring_priority"`
	ComputedAt            time.Time `json:"computed_at"`
}
