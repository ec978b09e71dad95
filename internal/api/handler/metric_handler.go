package handler

import (
	"Neuron/internal/api/dto"
	"Neuron/internal/model"
	"Neuron/internal/pkg/response"
	"Neuron/internal/pkg/util"
	"Neuron/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type MetricHandler struct {
	metricQuerySvc service.MetricQueryService
}

func NewMetricHandler(metricQuerySvc service.MetricQueryService) *MetricHandler {
	return &MetricHandler{metricQuerySvc: metricQuerySvc}
}

// GetRange 实体指标区间查询
func (h *MetricHandler) GetRange(c *gin.Context) {
	var query dto.MetricRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	from, err := util.ParseDate(query.From)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	to, err := util.ParseDate(query.To)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	points, err := h.metricQuerySvc.GetEntityRange(c.Request.Context(),
		c.Param("entity_type"), c.Param("entity_id"), query.Metric, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toMetricDTOs(points))
}

// GetPoint 实体指标点查询。算过但没有数据时返回空 data
func (h *MetricHandler) GetPoint(c *gin.Context) {
	var query dto.MetricPointQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	date, err := util.ParseDate(query.Date)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	point, err := h.metricQuerySvc.GetEntityPoint(c.Request.Context(),
		c.Param("entity_type"), c.Param("entity_id"), query.Metric, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	if point == nil {
		response.Success(c, nil)
		return
	}
	var pointDTO dto.MetricPointDTO
	if err := copier.Copy(&pointDTO, point); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pointDTO)
}

// Top 实体指标排名
func (h *MetricHandler) Top(c *gin.Context) {
	var query dto.MetricTopQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	date, err := util.ParseDate(query.Date)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	points, err := h.metricQuerySvc.TopEntities(c.Request.Context(),
		c.Param("entity_type"), query.Metric, date, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toMetricDTOs(points))
}

func toMetricDTOs(points []*model.EntityMetric) []*dto.MetricPointDTO {
	result := make([]*dto.MetricPointDTO, 0, len(points))
	for _, p := range points {
		var pointDTO dto.MetricPointDTO
		if err := copier.Copy(&pointDTO, p); err != nil {
			continue
		}
		result = append(result, &pointDTO)
	}
	return result
}
