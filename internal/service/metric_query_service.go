package service

import (
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"Neuron/internal/pkg/redis"
	"Neuron/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// MetricQueryService 读路径。区间与排名查询走 redis 读穿缓存，
// 点查区分"没算过"（ErrMetricNotComputed）和"算过但没有数据"（nil）
type MetricQueryService interface {
	GetEntityRange(ctx context.Context, entityType, entityID, metricName string, from, to time.Time) ([]*model.EntityMetric, error)
	GetEntityPoint(ctx context.Context, entityType, entityID, metricName string, t time.Time) (*model.EntityMetric, error)
	TopEntities(ctx context.Context, entityType, metricName string, t time.Time, limit int) ([]*model.EntityMetric, error)
	GetAuthorDailyRange(ctx context.Context, authorID string, from, to time.Time) ([]*model.AuthorDailyProfile, error)
	GetAuthorIntelligence(ctx context.Context, authorID string, analysisDate time.Time, period int) (*model.AuthorIntelligence, error)
	TopAuthors(ctx context.Context, scoreColumn string, analysisDate time.Time, period, limit int) ([]*model.AuthorIntelligence, error)
}

type metricQueryServiceImpl struct {
	metricRepo  repository.EntityMetricRepo
	profileRepo repository.AuthorProfileRepo
	intelRepo   repository.AuthorIntelligenceRepo
	tierRunSvc  TierRunService
}

func NewMetricQueryService(
	metricRepo repository.EntityMetricRepo,
	profileRepo repository.AuthorProfileRepo,
	intelRepo repository.AuthorIntelligenceRepo,
	tierRunSvc TierRunService,
) MetricQueryService {
	return &metricQueryServiceImpl{
		metricRepo:  metricRepo,
		profileRepo: profileRepo,
		intelRepo:   intelRepo,
		tierRunSvc:  tierRunSvc,
	}
}

func validEntityType(entityType string) bool {
	return entityType == consts.EntityTypeProject || entityType == consts.EntityTypeTheme
}

func (s *metricQueryServiceImpl) GetEntityRange(ctx context.Context, entityType, entityID, metricName string, from, to time.Time) ([]*model.EntityMetric, error) {
	if !validEntityType(entityType) || entityID == "" {
		return nil, ErrParamInvalid
	}
	key := consts.EntityMetricsRangeKey + entityType + ":" + entityID + ":" + metricName + ":" +
		from.Format(time.DateOnly) + ":" + to.Format(time.DateOnly)
	return getCachedList(ctx, key, func() ([]*model.EntityMetric, error) {
		return s.metricRepo.QueryRange(ctx, metricName, entityType, entityID, getMidnight(from), getMidnight(to))
	})
}

func (s *metricQueryServiceImpl) GetEntityPoint(ctx context.Context, entityType, entityID, metricName string, t time.Time) (*model.EntityMetric, error) {
	if !validEntityType(entityType) || entityID == "" || metricName == "" {
		return nil, ErrParamInvalid
	}
	day := getMidnight(t)
	point, err := s.metricRepo.GetPoint(ctx, metricName, entityType, entityID, day)
	if err != nil {
		return nil, err
	}
	if point != nil {
		return point, nil
	}

	// 点缺失时查台账：这一天的日层没成功跑过就是"没算"，不是"没有数据"
	tier := consts.TierDailyEntity
	if metricName == consts.MetricTweetCount7dAvg || metricName == consts.MetricEngagement7dAvg {
		tier = consts.TierRollingEntity
	}
	succeeded, err := s.tierRunSvc.IsSucceeded(ctx, tier, day, 0)
	if err != nil {
		return nil, err
	}
	if !succeeded {
		return nil, ErrMetricNotComputed
	}
	return nil, nil
}

func (s *metricQueryServiceImpl) TopEntities(ctx context.Context, entityType, metricName string, t time.Time, limit int) ([]*model.EntityMetric, error) {
	if !validEntityType(entityType) || metricName == "" || limit <= 0 {
		return nil, ErrParamInvalid
	}
	day := getMidnight(t)
	key := consts.EntityMetricsTopKey + entityType + ":" + metricName + ":" +
		day.Format(time.DateOnly) + ":" + strconv.Itoa(limit)
	return getCachedList(ctx, key, func() ([]*model.EntityMetric, error) {
		return s.metricRepo.TopEntities(ctx, metricName, entityType, day, limit)
	})
}

func (s *metricQueryServiceImpl) GetAuthorDailyRange(ctx context.Context, authorID string, from, to time.Time) ([]*model.AuthorDailyProfile, error) {
	if authorID == "" {
		return nil, ErrParamInvalid
	}
	key := consts.AuthorDailyRangeKey + authorID + ":" +
		from.Format(time.DateOnly) + ":" + to.Format(time.DateOnly)
	return getCachedList(ctx, key, func() ([]*model.AuthorDailyProfile, error) {
		return s.profileRepo.GetByAuthorRange(ctx, authorID, getMidnight(from), getMidnight(to))
	})
}

func (s *metricQueryServiceImpl) GetAuthorIntelligence(ctx context.Context, authorID string, analysisDate time.Time, period int) (*model.AuthorIntelligence, error) {
	if authorID == "" {
		return nil, ErrParamInvalid
	}
	if !supportedPeriod(period) {
		return nil, ErrUnsupportedPeriod
	}
	day := getMidnight(analysisDate)
	intel, err := s.intelRepo.Get(ctx, authorID, day, period)
	if err != nil {
		return nil, err
	}
	if intel != nil {
		return intel, nil
	}
	succeeded, err := s.tierRunSvc.IsSucceeded(ctx, consts.TierIntelligence, day, period)
	if err != nil {
		return nil, err
	}
	if !succeeded {
		return nil, ErrMetricNotComputed
	}
	// 窗口算过但该作者没达到推文量门槛
	return nil, ErrAuthorNotFound
}

func (s *metricQueryServiceImpl) TopAuthors(ctx context.Context, scoreColumn string, analysisDate time.Time, period, limit int) ([]*model.AuthorIntelligence, error) {
	if limit <= 0 {
		return nil, ErrParamInvalid
	}
	if !supportedPeriod(period) {
		return nil, ErrUnsupportedPeriod
	}
	day := getMidnight(analysisDate)
	key := consts.AuthorTopKey + scoreColumn + ":" + day.Format(time.DateOnly) + ":" +
		strconv.Itoa(period) + ":" + strconv.Itoa(limit)
	return getCachedList(ctx, key, func() ([]*model.AuthorIntelligence, error) {
		return s.intelRepo.TopByScore(ctx, scoreColumn, day, period, limit)
	})
}

// getCachedList 列表读穿缓存：命中按行反序列化，未命中回库后整列表缓存，
// 次日零点前 5 分钟过期
func getCachedList[T any](ctx context.Context, key string, fetchFromDB func() ([]*T, error)) ([]*T, error) {
	list, err := redis.GetList(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(list) != 0 {
		items := make([]*T, 0, len(list))
		for _, v := range list {
			var item *T
			if err := json.Unmarshal([]byte(v), &item); err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}

	items, err := fetchFromDB()
	if err != nil {
		return nil, err
	}
	cacheList(ctx, key, items)
	return items, nil
}

func cacheList[T any](ctx context.Context, key string, items []*T) {
	if len(items) == 0 {
		return
	}
	payload := make([]string, 0, len(items))
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return
		}
		payload = append(payload, string(b))
	}
	expiration := cacheExpiration(time.Now())
	if expiration < 0 {
		return
	}
	_ = redis.SetListWithExpiration(ctx, key, payload, expiration)
}
