package service

import (
	"Neuron/internal/api/config"
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"Neuron/internal/pkg/util"
	"Neuron/internal/repository"
	"context"
	"strconv"
	"sync"
	"time"

	log "log/slog"

	"golang.org/x/sync/errgroup"
)

// DayStatus 回填批次里单天的结果
type DayStatus struct {
	Date    time.Time `json:"date"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// DailyMetricService 实体日指标聚合与 7 天滚动均值
type DailyMetricService interface {
	ComputeDay(ctx context.Context, day time.Time) (*TierSummary, error)
	ComputeRolling(ctx context.Context, day time.Time) (*TierSummary, error)
	Backfill(ctx context.Context, from, to time.Time) ([]*DayStatus, error)
}

type dailyMetricServiceImpl struct {
	tweetRepo   repository.TweetRepo
	projectRepo repository.ProjectRepo
	themeRepo   repository.ThemeRepo
	metricRepo  repository.EntityMetricRepo
	tierRunSvc  TierRunService
	scoring     *config.ScoringConfig
	compute     *config.ComputeConfig
}

func NewDailyMetricService(
	tweetRepo repository.TweetRepo,
	projectRepo repository.ProjectRepo,
	themeRepo repository.ThemeRepo,
	metricRepo repository.EntityMetricRepo,
	tierRunSvc TierRunService,
	scoring *config.ScoringConfig,
	compute *config.ComputeConfig,
) DailyMetricService {
	return &dailyMetricServiceImpl{
		tweetRepo:   tweetRepo,
		projectRepo: projectRepo,
		themeRepo:   themeRepo,
		metricRepo:  metricRepo,
		tierRunSvc:  tierRunSvc,
		scoring:     scoring,
		compute:     compute,
	}
}

type entityRef struct {
	entityType string
	entityID   string
}

func (s *dailyMetricServiceImpl) listEntities(ctx context.Context) ([]entityRef, error) {
	projects, err := s.projectRepo.GetActiveProjects(ctx)
	if err != nil {
		return nil, err
	}
	themes, err := s.themeRepo.GetActiveThemes(ctx)
	if err != nil {
		return nil, err
	}
	entities := make([]entityRef, 0, len(projects)+len(themes))
	for _, p := range projects {
		entities = append(entities, entityRef{consts.EntityTypeProject, strconv.FormatUint(p.ID, 10)})
	}
	for _, t := range themes {
		entities = append(entities, entityRef{consts.EntityTypeTheme, t.Code})
	}
	return entities, nil
}

// ComputeDay 聚合一天内所有活跃实体的指标。单个实体失败只计数不中断，
// 整批幂等：同一天重算得到同一组行
func (s *dailyMetricServiceImpl) ComputeDay(ctx context.Context, day time.Time) (*TierSummary, error) {
	day = getMidnight(day)
	run, err := s.tierRunSvc.Begin(ctx, consts.TierDailyEntity, day, 0)
	if err != nil {
		return nil, err
	}

	entities, err := s.listEntities(ctx)
	if err != nil {
		s.tierRunSvc.Finish(ctx, run, 0, 0, err)
		return nil, err
	}

	var mu sync.Mutex
	failed := 0
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(s.compute.Parallelism)
	for _, e := range entities {
		group.Go(func() error {
			if err := s.computeEntityDay(gctx, e, day); err != nil {
				log.ErrorContext(gctx, "compute entity day error",
					"entity_type", e.entityType, "entity_id", e.entityID, "err", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()

	s.tierRunSvc.Finish(ctx, run, len(entities), failed, nil)
	return &TierSummary{
		Tier:        consts.TierDailyEntity,
		RunDate:     day,
		ItemsTotal:  len(entities),
		ItemsFailed: failed,
	}, nil
}

func (s *dailyMetricServiceImpl) computeEntityDay(ctx context.Context, e entityRef, day time.Time) error {
	tweets, err := s.tweetRepo.GetEntityTweetsByDay(ctx, e.entityType, e.entityID, day)
	if err != nil {
		return err
	}

	var (
		retweetSum, replySum, likeSum, quoteSum, bookmarkSum int64
		viewSum, totalEngagement                             int64
		viralityTotal, maxVirality                           float64
		viralCount, highlyViralCount                         int
		hourCount                                            [24]int64
		hourEngagement                                       [24]int64
		hourVirality                                         [24]float64
	)
	authorSet := make(map[string]struct{}, len(tweets))

	for _, t := range tweets {
		retweetSum += int64(t.RetweetCount)
		replySum += int64(t.ReplyCount)
		likeSum += int64(t.LikeCount)
		quoteSum += int64(t.QuoteCount)
		bookmarkSum += int64(t.BookmarkCount)
		viewSum += t.ViewCount
		engagement := int64(t.RetweetCount + t.ReplyCount + t.LikeCount + t.QuoteCount + t.BookmarkCount)
		totalEngagement += engagement

		score := ViralityScore(s.scoring, EngagementCounters{
			Retweets: t.RetweetCount, Replies: t.ReplyCount, Likes: t.LikeCount,
			Quotes: t.QuoteCount, Bookmarks: t.BookmarkCount, Views: t.ViewCount,
		})
		viralityTotal += score
		if score > maxVirality {
			maxVirality = score
		}
		if IsHighlyViral(s.scoring, score) {
			highlyViralCount++
		}
		if IsViral(s.scoring, score) {
			viralCount++
		}

		hour := t.CreatedAt.Hour()
		hourCount[hour]++
		hourEngagement[hour] += engagement
		hourVirality[hour] += score

		if t.AuthorID != "" {
			authorSet[t.AuthorID] = struct{}{}
		}
	}

	newAuthors, err := s.countNewAuthors(ctx, e, day, authorSet)
	if err != nil {
		return err
	}

	now := time.Now()
	point := func(name, unit string) *model.EntityMetric {
		return &model.EntityMetric{
			MetricTime: day, MetricName: name,
			EntityType: e.entityType, EntityID: e.entityID,
			Unit: unit, ComputedAt: now,
		}
	}
	intPoint := func(name string, v int64) *model.EntityMetric {
		p := point(name, consts.UnitCount)
		p.ValueInt = util.PtrInt64(v)
		return p
	}
	floatPoint := func(name string, v float64) *model.EntityMetric {
		p := point(name, consts.UnitScore)
		p.ValueFloat = util.PtrFloat64(v)
		return p
	}

	avgVirality := 0.0
	if len(tweets) > 0 {
		avgVirality = viralityTotal / float64(len(tweets))
	}

	metrics := []*model.EntityMetric{
		intPoint(consts.MetricTweetCount, int64(len(tweets))),
		intPoint(consts.MetricUniqueAuthors, int64(len(authorSet))),
		intPoint(consts.MetricNewAuthors, int64(newAuthors)),
		intPoint(consts.MetricTotalEngagement, totalEngagement),
		intPoint(consts.MetricRetweetSum, retweetSum),
		intPoint(consts.MetricReplySum, replySum),
		intPoint(consts.MetricLikeSum, likeSum),
		intPoint(consts.MetricQuoteSum, quoteSum),
		intPoint(consts.MetricBookmarkSum, bookmarkSum),
		intPoint(consts.MetricViewSum, viewSum),
		floatPoint(consts.MetricAvgVirality, avgVirality),
		floatPoint(consts.MetricMaxVirality, maxVirality),
		intPoint(consts.MetricViralTweets, int64(viralCount)),
		intPoint(consts.MetricHighlyViralTweets, int64(highlyViralCount)),
	}

	if len(tweets) > 0 {
		metrics = append(metrics, s.hourlyHistogram(e, day, now, hourCount, hourEngagement, hourVirality))
	}

	return s.metricRepo.UpsertBatch(ctx, metrics)
}

// countNewAuthors 当天活跃且在往前 NewAuthorWindow 天内对同一实体零活动的作者数
func (s *dailyMetricServiceImpl) countNewAuthors(ctx context.Context, e entityRef, day time.Time, todayAuthors map[string]struct{}) (int, error) {
	if len(todayAuthors) == 0 {
		return 0, nil
	}
	windowStart := day.AddDate(0, 0, -s.compute.NewAuthorWindow)
	prior, err := s.tweetRepo.GetEntityAuthorIDsBetween(ctx, e.entityType, e.entityID, windowStart, day)
	if err != nil {
		return 0, err
	}
	priorSet := make(map[string]struct{}, len(prior))
	for _, id := range prior {
		priorSet[id] = struct{}{}
	}
	newAuthors := 0
	for id := range todayAuthors {
		if _, seen := priorSet[id]; !seen {
			newAuthors++
		}
	}
	return newAuthors, nil
}

// hourlyHistogram 24 桶的小时活跃直方图，峰值小时并列时取较小的小时
func (s *dailyMetricServiceImpl) hourlyHistogram(e entityRef, day, now time.Time, count, engagement [24]int64, virality [24]float64) *model.EntityMetric {
	counts := make([]interface{}, 24)
	engagements := make([]interface{}, 24)
	avgViralities := make([]interface{}, 24)
	peakHour := 0
	var peakCount int64
	for h := 0; h < 24; h++ {
		counts[h] = count[h]
		engagements[h] = engagement[h]
		avg := 0.0
		if count[h] > 0 {
			avg = virality[h] / float64(count[h])
		}
		avgViralities[h] = avg
		if count[h] > peakCount {
			peakCount = count[h]
			peakHour = h
		}
	}
	return &model.EntityMetric{
		MetricTime: day, MetricName: consts.MetricHourlyActivity,
		EntityType: e.entityType, EntityID: e.entityID,
		Unit: consts.UnitHistogram, ComputedAt: now,
		ValueJSON: model.JSONMap{
			"tweet_count":  counts,
			"engagement":   engagements,
			"avg_virality": avgViralities,
			"peak_hour":    peakHour,
		},
	}
}

// ComputeRolling 写入 7 天滚动均值，要求窗口内每天的日层都已成功
func (s *dailyMetricServiceImpl) ComputeRolling(ctx context.Context, day time.Time) (*TierSummary, error) {
	day = getMidnight(day)
	ready, err := s.tierRunSvc.IsWindowReady(ctx, consts.TierDailyEntity, day, 7, 0)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, ErrWindowNotReady
	}

	run, err := s.tierRunSvc.Begin(ctx, consts.TierRollingEntity, day, 0)
	if err != nil {
		return nil, err
	}

	entities, err := s.listEntities(ctx)
	if err != nil {
		s.tierRunSvc.Finish(ctx, run, 0, 0, err)
		return nil, err
	}

	var mu sync.Mutex
	failed := 0
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(s.compute.Parallelism)
	for _, e := range entities {
		group.Go(func() error {
			if err := s.computeEntityRolling(gctx, e, day); err != nil {
				log.ErrorContext(gctx, "compute entity rolling error",
					"entity_type", e.entityType, "entity_id", e.entityID, "err", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()

	s.tierRunSvc.Finish(ctx, run, len(entities), failed, nil)
	return &TierSummary{
		Tier:        consts.TierRollingEntity,
		RunDate:     day,
		ItemsTotal:  len(entities),
		ItemsFailed: failed,
	}, nil
}

func (s *dailyMetricServiceImpl) computeEntityRolling(ctx context.Context, e entityRef, day time.Time) error {
	from := day.AddDate(0, 0, -6)

	tweetAvg, err := s.rollingAverage(ctx, e, consts.MetricTweetCount, from, day)
	if err != nil {
		return err
	}
	engagementAvg, err := s.rollingAverage(ctx, e, consts.MetricTotalEngagement, from, day)
	if err != nil {
		return err
	}

	now := time.Now()
	metrics := []*model.EntityMetric{
		{
			MetricTime: day, MetricName: consts.MetricTweetCount7dAvg,
			EntityType: e.entityType, EntityID: e.entityID,
			ValueFloat: util.PtrFloat64(tweetAvg),
			Unit:       consts.UnitScore, ComputedAt: now,
		},
		{
			MetricTime: day, MetricName: consts.MetricEngagement7dAvg,
			EntityType: e.entityType, EntityID: e.entityID,
			ValueFloat: util.PtrFloat64(engagementAvg),
			Unit:       consts.UnitScore, ComputedAt: now,
		},
	}
	return s.metricRepo.UpsertBatch(ctx, metrics)
}

// rollingAverage 除数固定为 7 天窗口长度，缺失天按 0 计入
func (s *dailyMetricServiceImpl) rollingAverage(ctx context.Context, e entityRef, metricName string, from, to time.Time) (float64, error) {
	points, err := s.metricRepo.QueryRange(ctx, metricName, e.entityType, e.entityID, from, to)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, p := range points {
		if p.ValueInt != nil {
			sum += float64(*p.ValueInt)
		} else if p.ValueFloat != nil {
			sum += *p.ValueFloat
		}
	}
	return sum / 7, nil
}

// Backfill 按天顺序回填，单天失败记录后继续
func (s *dailyMetricServiceImpl) Backfill(ctx context.Context, from, to time.Time) ([]*DayStatus, error) {
	from = getMidnight(from)
	to = getMidnight(to)
	if to.Before(from) {
		return nil, ErrParamInvalid
	}

	statuses := make([]*DayStatus, 0)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		status := &DayStatus{Date: day}
		summary, err := s.ComputeDay(ctx, day)
		if err != nil {
			status.Error = err.Error()
		} else {
			status.Success = summary.ItemsFailed == 0
			if summary.ItemsFailed > 0 {
				status.Error = strconv.Itoa(summary.ItemsFailed) + " entities failed"
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
