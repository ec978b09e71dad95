package consts

// 实体类型
const (
	EntityTypeProject = "project"
	EntityTypeTheme   = "theme"
)

// 推文类型
const (
	TweetTypeOriginal = "original"
	TweetTypeReply    = "reply"
	TweetTypeRetweet  = "retweet"
	TweetTypeQuote    = "quote"
)

// 计算层级
const (
	TierDailyEntity    = "daily_entity"
	TierRollingEntity  = "rolling_entity"
	TierAuthorBehavior = "author_behavior"
	TierIntelligence   = "intelligence"
)

// 层级运行状态
const (
	TierStatusRunning   = "running"
	TierStatusSucceeded = "succeeded"
	TierStatusFailed    = "failed"
)

// 实体日指标名
const (
	MetricTweetCount        = "tweet_count"
	MetricUniqueAuthors     = "unique_authors"
	MetricNewAuthors        = "new_authors"
	MetricTotalEngagement   = "total_engagement"
	MetricRetweetSum        = "retweet_sum"
	MetricReplySum          = "reply_sum"
	MetricLikeSum           = "like_sum"
	MetricQuoteSum          = "quote_sum"
	MetricBookmarkSum       = "bookmark_sum"
	MetricViewSum           = "view_sum"
	MetricAvgVirality       = "avg_virality"
	MetricMaxVirality       = "max_virality"
	MetricViralTweets       = "viral_tweets"
	MetricHighlyViralTweets = "highly_viral_tweets"
	MetricHourlyActivity    = "hourly_activity"
	MetricTweetCount7dAvg   = "tweet_count_7d_avg"
	MetricEngagement7dAvg   = "engagement_7d_avg"
)

// 指标单位
const (
	UnitCount     = "count"
	UnitScore     = "score"
	UnitHistogram = "histogram"
)

// 分析窗口（天）
var IntelligencePeriods = []int{7, 30, 90}
