package job

import (
	"Neuron/internal/pkg/consts"
	"Neuron/internal/pkg/logger"
	"Neuron/internal/pkg/redis"
	"Neuron/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// AuthorBehaviorJob 作者日行为画像，与实体层相互独立
type AuthorBehaviorJob struct {
	authorBehaviorSvc service.AuthorBehaviorService
}

func NewAuthorBehaviorJob(authorBehaviorSvc service.AuthorBehaviorService) *AuthorBehaviorJob {
	return &AuthorBehaviorJob{authorBehaviorSvc: authorBehaviorSvc}
}

func (s *AuthorBehaviorJob) Run() {
	traceID := "job-author-behavior-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lock, err := redis.TryLock(ctx, consts.AuthorBehaviorJobLock, traceID, time.Minute*30, 1)
	if err != nil || !lock {
		return
	}
	defer redis.UnLock(ctx, consts.AuthorBehaviorJobLock, traceID)

	yesterday := time.Now().AddDate(0, 0, -1)
	summary, err := s.authorBehaviorSvc.ComputeDay(ctx, yesterday)
	if err != nil {
		log.ErrorContext(ctx, "author behavior aggregation error", "err", err)
		return
	}
	log.InfoContext(ctx, "author behavior aggregation done",
		"date", summary.RunDate.Format(time.DateOnly),
		"authors", summary.ItemsTotal, "failed", summary.ItemsFailed)

	invalidateAuthorCaches(ctx)
}

func invalidateAuthorCaches(ctx context.Context) {
	processingKey := consts.AuthorDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.AuthorDirtyKey, processingKey); err != nil {
		return
	}

	dirty, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get author dirty set error", "err", err)
		return
	}

	for _, authorID := range dirty {
		if err := redis.DeleteByPrefix(ctx, consts.AuthorDailyRangeKey+authorID+":"); err != nil {
			log.ErrorContext(ctx, "invalidate author cache error", "author_id", authorID, "err", err)
		}
	}
	if len(dirty) > 0 {
		if err := redis.DeleteByPrefix(ctx, consts.AuthorTopKey); err != nil {
			log.ErrorContext(ctx, "invalidate author top cache error", "err", err)
		}
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete author dirty set error", "err", err)
	}
}
