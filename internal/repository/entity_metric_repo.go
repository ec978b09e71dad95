package repository

import (
	"Neuron/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidMetricPoint 主键不完整或取值个数不为 1 的指标点直接拒绝，
// 不允许半成品行落库
var ErrInvalidMetricPoint = errors.New("指标点主键或取值不合法")

type EntityMetricRepo interface {
	Upsert(ctx context.Context, metric *model.EntityMetric) error
	UpsertBatch(ctx context.Context, metrics []*model.EntityMetric) error
	GetPoint(ctx context.Context, metricName, entityType, entityID string, t time.Time) (*model.EntityMetric, error)
	QueryRange(ctx context.Context, metricName, entityType, entityID string, from, to time.Time) ([]*model.EntityMetric, error)
	TopEntities(ctx context.Context, metricName, entityType string, t time.Time, limit int) ([]*model.EntityMetric, error)
}

type entityMetricRepoImpl struct {
	db *gorm.DB
}

func NewEntityMetricRepository(db *gorm.DB) EntityMetricRepo {
	return &entityMetricRepoImpl{db: db}
}

var metricConflict = clause.OnConflict{
	Columns: []clause.Column{
		{Name: "metric_time"}, {Name: "metric_name"},
		{Name: "entity_type"}, {Name: "entity_id"},
	},
	DoUpdates: clause.AssignmentColumns([]string{
		"value_int", "value_float", "value_json", "unit", "computed_at",
	}),
}

// Upsert 按完整主键元组覆盖写入，重算不会产生重复行
func (r *entityMetricRepoImpl) Upsert(ctx context.Context, metric *model.EntityMetric) error {
	if !metric.HasKey() || metric.ValueCount() != 1 {
		return ErrInvalidMetricPoint
	}
	return r.db.WithContext(ctx).Clauses(metricConflict).Create(metric).Error
}

func (r *entityMetricRepoImpl) UpsertBatch(ctx context.Context, metrics []*model.EntityMetric) error {
	if len(metrics) == 0 {
		return nil
	}
	for _, m := range metrics {
		if !m.HasKey() || m.ValueCount() != 1 {
			return ErrInvalidMetricPoint
		}
	}
	return r.db.WithContext(ctx).Clauses(metricConflict).CreateInBatches(metrics, 200).Error
}

func (r *entityMetricRepoImpl) GetPoint(ctx context.Context, metricName, entityType, entityID string, t time.Time) (*model.EntityMetric, error) {
	var metric model.EntityMetric
	err := r.db.WithContext(ctx).
		Where("metric_name = ? AND entity_type = ? AND entity_id = ? AND metric_time = ?",
			metricName, entityType, entityID, t).
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

// QueryRange 按时间升序返回区间内指标点，metricName 为空时不过滤指标名
func (r *entityMetricRepoImpl) QueryRange(ctx context.Context, metricName, entityType, entityID string, from, to time.Time) ([]*model.EntityMetric, error) {
	metrics := make([]*model.EntityMetric, 0)
	query := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Where("metric_time >= ? AND metric_time <= ?", from, to)
	if metricName != "" {
		query = query.Where("metric_name = ?", metricName)
	}
	result := query.Order("metric_time ASC").Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}

// TopEntities 按指标值降序取 Top-K，"按得分排名" 是读路径的一等查询
func (r *entityMetricRepoImpl) TopEntities(ctx context.Context, metricName, entityType string, t time.Time, limit int) ([]*model.EntityMetric, error) {
	metrics := make([]*model.EntityMetric, 0, limit)
	result := r.db.WithContext(ctx).
		Where("metric_name = ? AND entity_type = ? AND metric_time = ?", metricName, entityType, t).
		Where("value_float IS NOT NULL OR value_int IS NOT NULL").
		Order("value_float DESC").
		Order("value_int DESC").
		Limit(limit).
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
