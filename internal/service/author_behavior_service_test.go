package service

import (
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func typedTweet(id, tweetType string, hour int, likes int) *model.Tweet {
	return &model.Tweet{
		TweetID:   id,
		AuthorID:  "a1",
		TweetType: tweetType,
		CreatedAt: testDay().Add(time.Duration(hour) * time.Hour),
		LikeCount: likes,
	}
}

func TestBuildAuthorDayProfileCounts(t *testing.T) {
	tweets := []*model.Tweet{
		typedTweet("t1", consts.TweetTypeOriginal, 9, 10),
		typedTweet("t2", consts.TweetTypeReply, 9, 0),
		typedTweet("t3", consts.TweetTypeRetweet, 9, 0),
		typedTweet("t4", consts.TweetTypeQuote, 14, 2),
		typedTweet("t5", "", 14, 0), // empty type counts as original
	}
	profile := BuildAuthorDayProfile(testScoringConfig(), "a1", testDay(), tweets)

	require.Equal(t, 5, profile.TweetCount)
	require.Equal(t, 2, profile.OriginalCount)
	require.Equal(t, 1, profile.ReplyCount)
	require.Equal(t, 1, profile.RetweetCount)
	require.Equal(t, 1, profile.QuoteCount)
	require.EqualValues(t, 12, profile.TotalEngagement)
	require.InDelta(t, 12.0/5, profile.AvgEngagement, 1e-9)
	require.Equal(t, 2, profile.ActiveHours)
	require.Equal(t, 9, profile.PeakHour)
	require.InDelta(t, 2.5, profile.PostingVelocity, 1e-9)
}

func TestBuildAuthorDayProfilePeakHourTieBreak(t *testing.T) {
	// hours 4 and 20 tie: the smaller hour wins
	tweets := []*model.Tweet{
		typedTweet("t1", consts.TweetTypeOriginal, 20, 0),
		typedTweet("t2", consts.TweetTypeOriginal, 4, 0),
	}
	profile := BuildAuthorDayProfile(testScoringConfig(), "a1", testDay(), tweets)
	require.Equal(t, 4, profile.PeakHour)
}

func TestBuildAuthorDayProfileViralTweets(t *testing.T) {
	tweets := []*model.Tweet{
		{TweetID: "t1", AuthorID: "a1", CreatedAt: testDay(), RetweetCount: 100}, // 300 > 200
		{TweetID: "t2", AuthorID: "a1", CreatedAt: testDay(), LikeCount: 5},
	}
	profile := BuildAuthorDayProfile(testScoringConfig(), "a1", testDay(), tweets)
	require.Equal(t, 1, profile.ViralTweets)
}

func TestComputeDayFiltersMalformedAuthorIDs(t *testing.T) {
	day := testDay()
	longID := strings.Repeat("x", 65)
	tweetRepo := &fakeTweetRepo{
		activeAuthors: map[string][]string{
			day.Format(time.DateOnly): {"a1", longID},
		},
		authorTweets: map[string][]*model.Tweet{
			dayKey("a1", day): {typedTweet("t1", consts.TweetTypeOriginal, 8, 1)},
		},
	}
	profileRepo := newFakeAuthorProfileRepo()
	svc := NewAuthorBehaviorService(
		tweetRepo,
		&fakeCollectionRepo{authorDayThemes: map[string][]string{dayKey("a1", day): {"th1", "th2"}}},
		profileRepo,
		NewTierRunService(newFakeTierRunRepo(), 2),
		testScoringConfig(),
		testComputeConfig(),
	)

	summary, err := svc.ComputeDay(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, 1, summary.ItemsTotal) // malformed id filtered, not failed
	require.Zero(t, summary.ItemsFailed)

	require.Len(t, profileRepo.profiles, 1)
	profile := profileRepo.profiles[day.Format(time.DateOnly)+":a1"]
	require.NotNil(t, profile)
	require.Equal(t, 2, profile.ThemesEngaged)
}
