package dto

import "time"

// MetricRangeQuery 实体指标区间查询参数
type MetricRangeQuery struct {
	Metric string `form:"metric"`
	From   string `form:"from" binding:"required"`
	To     string `form:"to" binding:"required"`
}

// MetricPointQuery 实体指标点查询参数
type MetricPointQuery struct {
	Metric string `form:"metric" binding:"required"`
	Date   string `form:"date" binding:"required"`
}

// MetricTopQuery 实体排名查询参数
type MetricTopQuery struct {
	Metric string `form:"metric" binding:"required"`
	Date   string `form:"date" binding:"required"`
	Limit  int    `form:"limit,default=10"`
}

// MetricPointDTO 指标点返回体
type MetricPointDTO struct {
	MetricTime time.Time              `json:"metric_time"`
	MetricName string                 `json:"metric_name"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	ValueInt   *int64                 `json:"value_int,omitempty"`
	ValueFloat *float64               `json:"value_float,omitempty"`
	ValueJSON  map[string]interface{} `json:"value_json,omitempty"`
	Unit       string                 `json:"unit"`
	ComputedAt time.Time              `json:"computed_at"`
}
