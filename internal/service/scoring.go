package service

import (
	"Neuron/internal/api/config"
)

// 评分全部是纯函数：固定输入与固定配置必然产生相同输出。
// 归一化因子作为显式参数传入，不读任何全局状态

// EngagementCounters 单条推文的互动计数，缺省按 0 处理
type EngagementCounters struct {
	Retweets  int
	Replies   int
	Likes     int
	Quotes    int
	Bookmarks int
	Views     int64
}

// ViralityScore 互动计数的加权传播得分
func ViralityScore(cfg *config.ScoringConfig, c EngagementCounters) float64 {
	return cfg.RetweetWeight*float64(c.Retweets) +
		cfg.QuoteWeight*float64(c.Quotes) +
		cfg.ReplyWeight*float64(c.Replies) +
		cfg.LikeWeight*float64(c.Likes) +
		cfg.BookmarkWeight*float64(c.Bookmarks) +
		cfg.ViewWeight*float64(c.Views)
}

// IsViral / IsHighlyViral 阈值分类
func IsViral(cfg *config.ScoringConfig, score float64) bool {
	return score > cfg.ViralThreshold
}

func IsHighlyViral(cfg *config.ScoringConfig, score float64) bool {
	return score > cfg.HighlyViralThreshold
}

// CoordinationExposure 作者窗口内命中协同集合的推文计数
type CoordinationExposure struct {
	TotalTweets        int
	CoordinatedLink    int
	CoordinatedHashtag int
	CoordinatedTiming  int
}

// CoordinationRiskScore 协同风险 = 三类命中占比的加权和，夹在 [0,1]
func CoordinationRiskScore(cfg *config.ScoringConfig, e CoordinationExposure) float64 {
	if e.TotalTweets == 0 {
		return 0
	}
	total := float64(e.TotalTweets)
	score := cfg.CoordLinkWeight*(float64(e.CoordinatedLink)/total) +
		cfg.CoordHashtagWeight*(float64(e.CoordinatedHashtag)/total) +
		cfg.CoordTimingWeight*(float64(e.CoordinatedTiming)/total)
	return clamp01(score)
}

// InfluenceInputs 影响力得分的原始输入
type InfluenceInputs struct {
	TweetCount       int
	OriginalTweets   int
	RetweetsReceived int64
	RepliesReceived  int64
	TotalEngagement  int64
	Followers        int
	NetworkReach     int
	ThemesEngaged    int
}

// InfluenceScore 加权合成影响力，各分量先按配置除数归一再加权，夹在 [0,1]
func InfluenceScore(cfg *config.ScoringConfig, in InfluenceInputs) float64 {
	if in.TweetCount == 0 {
		return 0
	}

	amplification := clamp01(AmplificationFactor(in.RetweetsReceived, in.OriginalTweets) / cfg.AmplificationNorm)

	followers := in.Followers
	if followers < 1 {
		followers = 1
	}
	engagementRate := clamp01(float64(in.TotalEngagement) / (float64(in.TweetCount) * float64(followers)))

	replyGen := clamp01(float64(in.RepliesReceived) / float64(in.TweetCount) / cfg.ReplyGenNorm)
	reach := clamp01(float64(in.NetworkReach) / cfg.NetworkReachNorm)
	breadth := clamp01(float64(in.ThemesEngaged) / cfg.CrossContextNorm)

	score := cfg.AmplificationWeight*amplification +
		cfg.EngagementWeight*engagementRate +
		cfg.ReplyGenWeight*replyGen +
		cfg.NetworkReachWeight*reach +
		cfg.CrossContextWeight*breadth
	return clamp01(score)
}

// AmplificationFactor 每条原创获得的转推数，无原创时为 0
func AmplificationFactor(retweetsReceived int64, originalTweets int) float64 {
	if originalTweets == 0 {
		return 0
	}
	return float64(retweetsReceived) / float64(originalTweets)
}

// AuthorityScore 粉丝/关注比，封顶防止零关注账号失真
func AuthorityScore(cfg *config.ScoringConfig, followers, following int) float64 {
	if following < 1 {
		following = 1
	}
	ratio := float64(followers) / float64(following)
	if ratio > cfg.AuthorityCap {
		return cfg.AuthorityCap
	}
	return ratio
}

// BetweennessApprox 介数中心性近似值：(去重回复对象数 + 去重转推来源数) / (2·总推文数)。
// 只是近似指标，不是真实的图介数
func BetweennessApprox(replyTargets, retweetSources, totalTweets int) float64 {
	if totalTweets == 0 {
		return 0
	}
	v := float64(replyTargets+retweetSources) / (2 * float64(totalTweets))
	return clamp01(v)
}

// MonitoringPriority 监控优先级决策规则，自上而下首条命中即返回。
// 规则顺序是策略本身：风险信号优先于原始影响力，调整顺序会改变多规则
// 命中作者的结果
func MonitoringPriority(cfg *config.ScoringConfig, risk, influence, amplification, betweenness float64) float64 {
	switch {
	case risk > cfg.PriorityRiskCutoff:
		return 1.0
	case influence > cfg.PriorityInfluenceCutoff:
		return 0.9
	case amplification > cfg.PriorityAmplificationCutoff:
		return 0.8
	case betweenness > cfg.PriorityBetweennessCutoff:
		return 0.7
	default:
		return clamp01(influence + 0.5*risk)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
