package model

import "time"

// EntityMetric 时序指标点。(metric_time, metric_name, entity_type, entity_id)
// 上至多一行，重算整行覆盖。int / float / json 三种取值互斥
type EntityMetric struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	MetricTime time.Time `gorm:"not null;index:idx_metric_key,unique;index:idx_entity_time" json:"metric_time"`
	MetricName string    `gorm:"not null;size:64;index:idx_metric_key,unique;index:idx_metric_value" json:"metric_name"`
	EntityType string    `gorm:"not null;size:16;index:idx_metric_key,unique;index:idx_entity_time" json:"entity_type"`
	EntityID   string    `gorm:"not null;size:64;index:idx_metric_key,unique;index:idx_entity_time" json:"entity_id"`

	ValueInt   *int64   `json:"value_int,omitempty"`
	ValueFloat *float64 `gorm:"index:idx_metric_value" json:"value_float,omitempty"`
	ValueJSON  JSONMap  `gorm:"type:json" json:"value_json,omitempty"`

	Unit       string    `gorm:"size:16" json:"unit"`
	ComputedAt time.Time `gorm:"not null" json:"computed_at"`
}

func (EntityMetric) TableName() string {
	return "entity_metrics"
}

// HasKey 主键元组是否完整
func (m *EntityMetric) HasKey() bool {
	return !m.MetricTime.IsZero() && m.MetricName != "" && m.EntityType != "" && m.EntityID != ""
}

// ValueCount 已设置的取值个数，合法指标点必须恰好为 1
func (m *EntityMetric) ValueCount() int {
	n := 0
	if m.ValueInt != nil {
		n++
	}
	if m.ValueFloat != nil {
		n++
	}
	if m.ValueJSON != nil {
		n++
	}
	return n
}
