package repository

import (
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TierRunRepo interface {
	Upsert(ctx context.Context, run *model.TierRun) error
	Get(ctx context.Context, tier string, runDate time.Time, period int) (*model.TierRun, error)
	CountSucceededBetween(ctx context.Context, tier string, from, to time.Time, period int) (int64, error)
}

type tierRunRepoImpl struct {
	db *gorm.DB
}

func NewTierRunRepository(db *gorm.DB) TierRunRepo {
	return &tierRunRepoImpl{db: db}
}

func (r *tierRunRepoImpl) Upsert(ctx context.Context, run *model.TierRun) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tier"}, {Name: "run_date"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "items_total", "items_failed", "error",
			"started_at", "finished_at", "updated_at",
		}),
	}).Create(run).Error
}

func (r *tierRunRepoImpl) Get(ctx context.Context, tier string, runDate time.Time, period int) (*model.TierRun, error) {
	var run model.TierRun
	err := r.db.WithContext(ctx).
		Where("tier = ? AND run_date = ? AND period = ?", tier, runDate, period).
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// CountSucceededBetween 统计区间内成功的运行数，滚动窗口依赖检查用
func (r *tierRunRepoImpl) CountSucceededBetween(ctx context.Context, tier string, from, to time.Time, period int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TierRun{}).
		Where("tier = ? AND period = ? AND status = ?", tier, period, consts.TierStatusSucceeded).
		Where("run_date >= ? AND run_date <= ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
