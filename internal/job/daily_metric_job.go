package job

import (
	"Neuron/internal/pkg/consts"
	"Neuron/internal/pkg/logger"
	"Neuron/internal/pkg/redis"
	"Neuron/internal/service"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// DailyMetricJob 每日实体聚合。日层成功后顺带尝试滚动层，
// 窗口不满足时留给下个调度周期
type DailyMetricJob struct {
	dailyMetricSvc service.DailyMetricService
}

func NewDailyMetricJob(dailyMetricSvc service.DailyMetricService) *DailyMetricJob {
	return &DailyMetricJob{dailyMetricSvc: dailyMetricSvc}
}

func (s *DailyMetricJob) Run() {
	traceID := "job-daily-entity-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lock, err := redis.TryLock(ctx, consts.DailyEntityJobLock, traceID, time.Minute*30, 1)
	if err != nil || !lock {
		return
	}
	defer redis.UnLock(ctx, consts.DailyEntityJobLock, traceID)

	yesterday := time.Now().AddDate(0, 0, -1)
	summary, err := s.dailyMetricSvc.ComputeDay(ctx, yesterday)
	if err != nil {
		log.ErrorContext(ctx, "daily entity aggregation error", "err", err)
		return
	}
	log.InfoContext(ctx, "daily entity aggregation done",
		"date", summary.RunDate.Format(time.DateOnly),
		"entities", summary.ItemsTotal, "failed", summary.ItemsFailed)

	rolling, err := s.dailyMetricSvc.ComputeRolling(ctx, yesterday)
	if err != nil {
		if errors.Is(err, service.ErrWindowNotReady) {
			log.InfoContext(ctx, "rolling window not ready, retry next tick")
		} else {
			log.ErrorContext(ctx, "rolling aggregation error", "err", err)
		}
	} else {
		log.InfoContext(ctx, "rolling aggregation done",
			"entities", rolling.ItemsTotal, "failed", rolling.ItemsFailed)
	}

	invalidateEntityCaches(ctx)
}

// invalidateEntityCaches 消费 CDC 脏集合，按实体删除读缓存。
// rename 后处理，避免和消费者并发写同一个集合
func invalidateEntityCaches(ctx context.Context) {
	processingKey := consts.EntityDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.EntityDirtyKey, processingKey); err != nil {
		return
	}

	dirty, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get entity dirty set error", "err", err)
		return
	}

	for _, member := range dirty {
		if err := redis.DeleteByPrefix(ctx, consts.EntityMetricsRangeKey+member+":"); err != nil {
			log.ErrorContext(ctx, "invalidate entity cache error", "entity", member, "err", err)
		}
	}
	if len(dirty) > 0 {
		if err := redis.DeleteByPrefix(ctx, consts.EntityMetricsTopKey); err != nil {
			log.ErrorContext(ctx, "invalidate top cache error", "err", err)
		}
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete entity dirty set error", "err", err)
	}
}
