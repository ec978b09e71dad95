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

type AuthorHandler struct {
	metricQuerySvc service.MetricQueryService
}

func NewAuthorHandler(metricQuerySvc service.MetricQueryService) *AuthorHandler {
	return &AuthorHandler{metricQuerySvc: metricQuerySvc}
}

// GetDailyRange 作者日画像区间查询
func (h *AuthorHandler) GetDailyRange(c *gin.Context) {
	var query dto.AuthorDailyQuery
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

	profiles, err := h.metricQuerySvc.GetAuthorDailyRange(c.Request.Context(), c.Param("author_id"), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := make([]*dto.AuthorDailyDTO, 0, len(profiles))
	for _, p := range profiles {
		var profileDTO dto.AuthorDailyDTO
		if err := copier.Copy(&profileDTO, p); err != nil {
			continue
		}
		result = append(result, &profileDTO)
	}
	response.Success(c, result)
}

// GetIntelligence 作者情报画像查询
func (h *AuthorHandler) GetIntelligence(c *gin.Context) {
	var query dto.AuthorIntelQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	date, err := util.ParseDate(query.Date)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	intel, err := h.metricQuerySvc.GetAuthorIntelligence(c.Request.Context(), c.Param("author_id"), date, query.Period)
	if err != nil {
		response.Error(c, err)
		return
	}
	var intelDTO dto.AuthorIntelligenceDTO
	if err := copier.Copy(&intelDTO, intel); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, intelDTO)
}

// Top 作者得分排名
func (h *AuthorHandler) Top(c *gin.Context) {
	var query dto.AuthorTopQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	date, err := util.ParseDate(query.Date)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	intels, err := h.metricQuerySvc.TopAuthors(c.Request.Context(), query.Score, date, query.Period, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toIntelDTOs(intels))
}

func toIntelDTOs(intels []*model.AuthorIntelligence) []*dto.AuthorIntelligenceDTO {
	result := make([]*dto.AuthorIntelligenceDTO, 0, len(intels))
	for _, intel := range intels {
		var intelDTO dto.AuthorIntelligenceDTO
		if err := copier.Copy(&intelDTO, intel); err != nil {
			continue
		}
		result = append(result, &intelDTO)
	}
	return result
}
