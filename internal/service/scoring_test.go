package service

import (
	"Neuron/internal/api/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScoringConfig() *config.ScoringConfig {
	return &config.ScoringConfig{
		RetweetWeight:  3.0,
		QuoteWeight:    2.5,
		ReplyWeight:    2.0,
		LikeWeight:     1.0,
		BookmarkWeight: 1.5,
		ViewWeight:     0.001,

		ViralThreshold:       200.0,
		HighlyViralThreshold: 1000.0,

		SharedLinkMinAuthors:    5,
		SharedHashtagMinAuthors: 10,
		TimingBucketMinAuthors:  3,
		TimingBucketSeconds:     300,

		CoordLinkWeight:    0.4,
		CoordHashtagWeight: 0.3,
		CoordTimingWeight:  0.3,

		AmplificationWeight: 0.3,
		EngagementWeight:    0.25,
		ReplyGenWeight:      0.2,
		NetworkReachWeight:  0.15,
		CrossContextWeight:  0.1,
		AmplificationNorm:   50.0,
		ReplyGenNorm:        10.0,
		NetworkReachNorm:    100.0,
		CrossContextNorm:    5.0,
		AuthorityCap:        10.0,

		PriorityRiskCutoff:          0.7,
		PriorityInfluenceCutoff:     0.8,
		PriorityAmplificationCutoff: 20.0,
		PriorityBetweennessCutoff:   0.6,
	}
}

func TestViralityScore(t *testing.T) {
	cfg := testScoringConfig()

	// 5*3.0 + 2*2.5 + 3*2.0 + 5*1.0 + 1*1.5 = 32.5
	counters := EngagementCounters{Retweets: 5, Quotes: 2, Replies: 3, Likes: 5, Bookmarks: 1}
	require.InDelta(t, 32.5, ViralityScore(cfg, counters), 1e-9)

	// deterministic: same inputs, same output
	require.Equal(t, ViralityScore(cfg, counters), ViralityScore(cfg, counters))

	// views carry very little weight
	require.InDelta(t, 1.0, ViralityScore(cfg, EngagementCounters{Views: 1000}), 1e-9)

	require.Zero(t, ViralityScore(cfg, EngagementCounters{}))
}

func TestViralityClassification(t *testing.T) {
	cfg := testScoringConfig()

	assert.False(t, IsViral(cfg, 200.0)) // strict greater-than
	assert.True(t, IsViral(cfg, 200.5))
	assert.False(t, IsHighlyViral(cfg, 1000.0))
	assert.True(t, IsHighlyViral(cfg, 1000.5))
}

func TestCoordinationRiskScore(t *testing.T) {
	cfg := testScoringConfig()

	// 0.4*(3/50) + 0.3*(2/50) + 0.3*(4/50) = 0.06
	risk := CoordinationRiskScore(cfg, CoordinationExposure{
		TotalTweets:        50,
		CoordinatedLink:    3,
		CoordinatedHashtag: 2,
		CoordinatedTiming:  4,
	})
	require.InDelta(t, 0.06, risk, 1e-9)

	require.Zero(t, CoordinationRiskScore(cfg, CoordinationExposure{}))

	// fully coordinated stays clamped at 1
	full := CoordinationRiskScore(cfg, CoordinationExposure{
		TotalTweets:        10,
		CoordinatedLink:    10,
		CoordinatedHashtag: 10,
		CoordinatedTiming:  10,
	})
	require.LessOrEqual(t, full, 1.0)
}

func TestInfluenceScoreBounds(t *testing.T) {
	cfg := testScoringConfig()

	require.Zero(t, InfluenceScore(cfg, InfluenceInputs{}))

	// zero followers must not divide by zero
	score := InfluenceScore(cfg, InfluenceInputs{
		TweetCount:      10,
		OriginalTweets:  5,
		TotalEngagement: 100,
	})
	require.GreaterOrEqual(t, score, 0.0)
	require.LessOrEqual(t, score, 1.0)

	// extreme inputs still land in [0,1]
	extreme := InfluenceScore(cfg, InfluenceInputs{
		TweetCount:       1000,
		OriginalTweets:   1000,
		RetweetsReceived: 1_000_000,
		RepliesReceived:  1_000_000,
		TotalEngagement:  10_000_000,
		Followers:        1,
		NetworkReach:     100_000,
		ThemesEngaged:    500,
	})
	require.LessOrEqual(t, extreme, 1.0)
}

func TestAmplificationFactor(t *testing.T) {
	require.Zero(t, AmplificationFactor(100, 0))
	require.InDelta(t, 25.0, AmplificationFactor(100, 4), 1e-9)
}

func TestAuthorityScore(t *testing.T) {
	cfg := testScoringConfig()

	require.InDelta(t, 2.0, AuthorityScore(cfg, 200, 100), 1e-9)
	// capped so zero-following accounts do not dominate
	require.InDelta(t, 10.0, AuthorityScore(cfg, 1_000_000, 10), 1e-9)
	require.InDelta(t, 10.0, AuthorityScore(cfg, 50, 0), 1e-9)
}

func TestBetweennessApprox(t *testing.T) {
	require.Zero(t, BetweennessApprox(5, 5, 0))
	require.InDelta(t, 0.5, BetweennessApprox(5, 5, 10), 1e-9)
	require.InDelta(t, 1.0, BetweennessApprox(50, 50, 10), 1e-9) // capped
}

func TestMonitoringPriorityRuleOrder(t *testing.T) {
	cfg := testScoringConfig()

	// risk rule wins even when the influence rule would also match
	require.InDelta(t, 1.0, MonitoringPriority(cfg, 0.8, 0.9, 0, 0), 1e-9)
	require.InDelta(t, 0.9, MonitoringPriority(cfg, 0.5, 0.9, 25, 0.7), 1e-9)
	require.InDelta(t, 0.8, MonitoringPriority(cfg, 0.5, 0.5, 25, 0.7), 1e-9)
	require.InDelta(t, 0.7, MonitoringPriority(cfg, 0.5, 0.5, 10, 0.7), 1e-9)

	// fallback: influence + risk/2, clamped
	require.InDelta(t, 0.45, MonitoringPriority(cfg, 0.3, 0.3, 0, 0), 1e-9)
	require.InDelta(t, 1.0, MonitoringPriority(cfg, 0.7, 0.8, 0, 0), 1e-9)
}
