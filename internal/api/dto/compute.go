package dto

// ComputeDayDTO 单日重算请求
type ComputeDayDTO struct {
	Date string `json:"date" binding:"required" validate:"datetime=2006-01-02"`
}

// ComputeIntelligenceDTO 情报层重算请求。MinTweets 为 0 时取配置默认门槛
type ComputeIntelligenceDTO struct {
	Date      string `json:"date" binding:"required" validate:"datetime=2006-01-02"`
	Period    int    `json:"period" binding:"required" validate:"oneof=7 30 90"`
	MinTweets int    `json:"min_tweets" validate:"gte=0"`
}

// BackfillDTO 区间回填请求
type BackfillDTO struct {
	From string `json:"from" binding:"required" validate:"datetime=2006-01-02"`
	To   string `json:"to" binding:"required" validate:"datetime=2006-01-02"`
}
