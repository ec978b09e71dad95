package service

import (
	"Neuron/internal/api/config"
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"Neuron/internal/repository"
	"context"
	"sync"
	"time"

	log "log/slog"

	"golang.org/x/sync/errgroup"
)

// AuthorBehaviorService 作者单日行为画像
type AuthorBehaviorService interface {
	ComputeDay(ctx context.Context, day time.Time) (*TierSummary, error)
}

type authorBehaviorServiceImpl struct {
	tweetRepo      repository.TweetRepo
	collectionRepo repository.CollectionRepo
	profileRepo    repository.AuthorProfileRepo
	tierRunSvc     TierRunService
	scoring        *config.ScoringConfig
	compute        *config.ComputeConfig
}

func NewAuthorBehaviorService(
	tweetRepo repository.TweetRepo,
	collectionRepo repository.CollectionRepo,
	profileRepo repository.AuthorProfileRepo,
	tierRunSvc TierRunService,
	scoring *config.ScoringConfig,
	compute *config.ComputeConfig,
) AuthorBehaviorService {
	return &authorBehaviorServiceImpl{
		tweetRepo:      tweetRepo,
		collectionRepo: collectionRepo,
		profileRepo:    profileRepo,
		tierRunSvc:     tierRunSvc,
		scoring:        scoring,
		compute:        compute,
	}
}

// ComputeDay 为当天每个有发帖的作者写一行画像。畸形作者 id 是数据质量问题，
// 过滤计数后跳过，不算失败
func (s *authorBehaviorServiceImpl) ComputeDay(ctx context.Context, day time.Time) (*TierSummary, error) {
	day = getMidnight(day)
	run, err := s.tierRunSvc.Begin(ctx, consts.TierAuthorBehavior, day, 0)
	if err != nil {
		return nil, err
	}

	authorIDs, err := s.tweetRepo.GetActiveAuthorIDsByDay(ctx, day)
	if err != nil {
		s.tierRunSvc.Finish(ctx, run, 0, 0, err)
		return nil, err
	}

	valid := make([]string, 0, len(authorIDs))
	filtered := 0
	for _, id := range authorIDs {
		if len(id) == 0 || len(id) > s.compute.AuthorIDMaxLen {
			filtered++
			continue
		}
		valid = append(valid, id)
	}
	if filtered > 0 {
		log.DebugContext(ctx, "filtered malformed author ids", "count", filtered, "date", day.Format(time.DateOnly))
	}

	var mu sync.Mutex
	failed := 0
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(s.compute.Parallelism)
	for _, authorID := range valid {
		group.Go(func() error {
			if err := s.computeAuthorDay(gctx, authorID, day); err != nil {
				log.ErrorContext(gctx, "compute author day error", "author_id", authorID, "err", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()

	s.tierRunSvc.Finish(ctx, run, len(valid), failed, nil)
	return &TierSummary{
		Tier:        consts.TierAuthorBehavior,
		RunDate:     day,
		ItemsTotal:  len(valid),
		ItemsFailed: failed,
	}, nil
}

func (s *authorBehaviorServiceImpl) computeAuthorDay(ctx context.Context, authorID string, day time.Time) error {
	tweets, err := s.tweetRepo.GetAuthorTweetsByDay(ctx, authorID, day)
	if err != nil {
		return err
	}
	if len(tweets) == 0 {
		return nil
	}

	profile := BuildAuthorDayProfile(s.scoring, authorID, day, tweets)

	themes, err := s.collectionRepo.GetAuthorThemeCodesByDay(ctx, authorID, day)
	if err != nil {
		return err
	}
	profile.ThemesEngaged = len(themes)

	return s.profileRepo.Upsert(ctx, profile)
}

// BuildAuthorDayProfile 从一天的推文切片算出行为画像，纯函数。
// 峰值小时取众数，并列时取较小的小时；发帖速率按活跃小时数摊，零活跃小时时为 0
func BuildAuthorDayProfile(scoring *config.ScoringConfig, authorID string, day time.Time, tweets []*model.Tweet) *model.AuthorDailyProfile {
	profile := &model.AuthorDailyProfile{
		ProfileDate: day,
		AuthorID:    authorID,
		TweetCount:  len(tweets),
		ComputedAt:  time.Now(),
	}

	var hourCounts [24]int
	var totalEngagement int64
	for _, t := range tweets {
		switch t.TweetType {
		case consts.TweetTypeReply:
			profile.ReplyCount++
		case consts.TweetTypeRetweet:
			profile.RetweetCount++
		case consts.TweetTypeQuote:
			profile.QuoteCount++
		default:
			profile.OriginalCount++
		}

		engagement := int64(t.RetweetCount + t.ReplyCount + t.LikeCount + t.QuoteCount + t.BookmarkCount)
		totalEngagement += engagement

		score := ViralityScore(scoring, EngagementCounters{
			Retweets: t.RetweetCount, Replies: t.ReplyCount, Likes: t.LikeCount,
			Quotes: t.QuoteCount, Bookmarks: t.BookmarkCount, Views: t.ViewCount,
		})
		if IsViral(scoring, score) {
			profile.ViralTweets++
		}

		hourCounts[t.CreatedAt.Hour()]++
	}

	profile.TotalEngagement = totalEngagement
	if len(tweets) > 0 {
		profile.AvgEngagement = float64(totalEngagement) / float64(len(tweets))
	}

	peakHour := 0
	peakCount := 0
	activeHours := 0
	for h := 0; h < 24; h++ {
		if hourCounts[h] > 0 {
			activeHours++
		}
		if hourCounts[h] > peakCount {
			peakCount = hourCounts[h]
			peakHour = h
		}
	}
	profile.ActiveHours = activeHours
	profile.PeakHour = peakHour
	if activeHours > 0 {
		profile.PostingVelocity = float64(len(tweets)) / float64(activeHours)
	}

	return profile
}
