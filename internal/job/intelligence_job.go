package job

import (
	"Neuron/internal/pkg/consts"
	"Neuron/internal/pkg/logger"
	"Neuron/internal/pkg/redis"
	"Neuron/internal/service"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// IntelligenceJob 单个分析窗口的情报层。每个窗口一个实例，锁按窗口隔离
type IntelligenceJob struct {
	intelligenceSvc service.IntelligenceService
	period          int
}

func NewIntelligenceJob(intelligenceSvc service.IntelligenceService, period int) *IntelligenceJob {
	return &IntelligenceJob{
		intelligenceSvc: intelligenceSvc,
		period:          period,
	}
}

func (s *IntelligenceJob) Run() {
	periodStr := strconv.Itoa(s.period)
	traceID := "job-intelligence-" + periodStr + "d-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockKey := consts.IntelligenceJobLock + periodStr
	lock, err := redis.TryLock(ctx, lockKey, traceID, time.Hour, 1)
	if err != nil || !lock {
		return
	}
	defer redis.UnLock(ctx, lockKey, traceID)

	yesterday := time.Now().AddDate(0, 0, -1)
	summary, err := s.intelligenceSvc.ComputePeriod(ctx, yesterday, s.period, 0)
	if err != nil {
		log.ErrorContext(ctx, "intelligence computation error", "period", s.period, "err", err)
		return
	}
	log.InfoContext(ctx, "intelligence computation done",
		"date", summary.RunDate.Format(time.DateOnly), "period", s.period,
		"authors", summary.ItemsTotal, "failed", summary.ItemsFailed)

	if err := redis.DeleteByPrefix(ctx, consts.AuthorIntelKey); err != nil {
		log.ErrorContext(ctx, "invalidate intelligence cache error", "err", err)
	}
}
