package service

import (
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"Neuron/internal/pkg/redis"
	"Neuron/internal/repository"
	"context"
	"time"
)

// TierSummary 单次层级运行的结果摘要
type TierSummary struct {
	Tier        string    `json:"tier"`
	RunDate     time.Time `json:"run_date"`
	Period      int       `json:"period,omitempty"`
	ItemsTotal  int       `json:"items_total"`
	ItemsFailed int       `json:"items_failed"`
}

// TierRunService 计算层级的运行台账。Begin/Finish 维护状态机，
// IsWindowReady 供滚动层做依赖检查，AllowRecompute 限制手动重算频率
type TierRunService interface {
	Begin(ctx context.Context, tier string, runDate time.Time, period int) (*model.TierRun, error)
	Finish(ctx context.Context, run *model.TierRun, itemsTotal, itemsFailed int, runErr error)
	IsWindowReady(ctx context.Context, tier string, endDate time.Time, days, period int) (bool, error)
	IsSucceeded(ctx context.Context, tier string, runDate time.Time, period int) (bool, error)
	AllowRecompute(ctx context.Context, tier string) error
}

type tierRunServiceImpl struct {
	tierRunRepo        repository.TierRunRepo
	recomputePerMinute int
}

func NewTierRunService(tierRunRepo repository.TierRunRepo, recomputePerMinute int) TierRunService {
	return &tierRunServiceImpl{
		tierRunRepo:        tierRunRepo,
		recomputePerMinute: recomputePerMinute,
	}
}

// Begin 将 (tier, run_date, period) 置为 running。已在运行中的不允许并发进入
func (s *tierRunServiceImpl) Begin(ctx context.Context, tier string, runDate time.Time, period int) (*model.TierRun, error) {
	runDate = getMidnight(runDate)
	existing, err := s.tierRunRepo.Get(ctx, tier, runDate, period)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == consts.TierStatusRunning {
		return nil, ErrTierAlreadyRunning
	}

	now := time.Now()
	run := &model.TierRun{
		Tier:      tier,
		RunDate:   runDate,
		Period:    period,
		Status:    consts.TierStatusRunning,
		StartedAt: &now,
	}
	if err := s.tierRunRepo.Upsert(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// Finish 收尾状态转移。失败的运行保留在台账里，下个调度周期重试
func (s *tierRunServiceImpl) Finish(ctx context.Context, run *model.TierRun, itemsTotal, itemsFailed int, runErr error) {
	now := time.Now()
	run.ItemsTotal = itemsTotal
	run.ItemsFailed = itemsFailed
	run.FinishedAt = &now
	if runErr != nil {
		run.Status = consts.TierStatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = consts.TierStatusSucceeded
		run.Error = ""
	}
	_ = s.tierRunRepo.Upsert(ctx, run)
}

// IsWindowReady 检查 endDate 往前 days 天是否每天都成功运行过
func (s *tierRunServiceImpl) IsWindowReady(ctx context.Context, tier string, endDate time.Time, days, period int) (bool, error) {
	endDate = getMidnight(endDate)
	from := endDate.AddDate(0, 0, -(days - 1))
	count, err := s.tierRunRepo.CountSucceededBetween(ctx, tier, from, endDate, period)
	if err != nil {
		return false, err
	}
	return count >= int64(days), nil
}

func (s *tierRunServiceImpl) IsSucceeded(ctx context.Context, tier string, runDate time.Time, period int) (bool, error) {
	run, err := s.tierRunRepo.Get(ctx, tier, getMidnight(runDate), period)
	if err != nil {
		return false, err
	}
	return run != nil && run.Status == consts.TierStatusSucceeded, nil
}

// AllowRecompute 手动重算的频率限制，redis INCR 按分钟窗口计数
func (s *tierRunServiceImpl) AllowRecompute(ctx context.Context, tier string) error {
	key := consts.RecomputeRateKey + tier + ":" + time.Now().Format("200601021504")
	count, err := redis.IncrWithExpiration(ctx, key, time.Minute*2)
	if err != nil {
		return err
	}
	if count > int64(s.recomputePerMinute) {
		return ErrRecomputeRateLimited
	}
	return nil
}
