package handler

import (
	"Neuron/internal/api/dto"
	"Neuron/internal/pkg/consts"
	"Neuron/internal/pkg/response"
	"Neuron/internal/pkg/util"
	"Neuron/internal/service"

	"github.com/gin-gonic/gin"
)

// ComputeHandler 手动重算入口。正常情况走定时调度，这里是排障用的逃生通道，
// 频率受 redis 计数窗口限制
type ComputeHandler struct {
	dailyMetricSvc    service.DailyMetricService
	authorBehaviorSvc service.AuthorBehaviorService
	intelligenceSvc   service.IntelligenceService
	tierRunSvc        service.TierRunService
}

func NewComputeHandler(
	dailyMetricSvc service.DailyMetricService,
	authorBehaviorSvc service.AuthorBehaviorService,
	intelligenceSvc service.IntelligenceService,
	tierRunSvc service.TierRunService,
) *ComputeHandler {
	return &ComputeHandler{
		dailyMetricSvc:    dailyMetricSvc,
		authorBehaviorSvc: authorBehaviorSvc,
		intelligenceSvc:   intelligenceSvc,
		tierRunSvc:        tierRunSvc,
	}
}

// ComputeDaily 重算单日实体指标
func (h *ComputeHandler) ComputeDaily(c *gin.Context) {
	var body dto.ComputeDayDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&body); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	date, err := util.ParseDate(body.Date)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := h.tierRunSvc.AllowRecompute(c.Request.Context(), consts.TierDailyEntity); err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.dailyMetricSvc.ComputeDay(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// ComputeAuthors 重算单日作者画像
func (h *ComputeHandler) ComputeAuthors(c *gin.Context) {
	var body dto.ComputeDayDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&body); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	date, err := util.ParseDate(body.Date)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := h.tierRunSvc.AllowRecompute(c.Request.Context(), consts.TierAuthorBehavior); err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.authorBehaviorSvc.ComputeDay(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// ComputeIntelligence 重算指定窗口的情报层
func (h *ComputeHandler) ComputeIntelligence(c *gin.Context) {
	var body dto.ComputeIntelligenceDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&body); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	date, err := util.ParseDate(body.Date)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := h.tierRunSvc.AllowRecompute(c.Request.Context(), consts.TierIntelligence); err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.intelligenceSvc.ComputePeriod(c.Request.Context(), date, body.Period, body.MinTweets)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// Backfill 按日期区间回填实体日指标
func (h *ComputeHandler) Backfill(c *gin.Context) {
	var body dto.BackfillDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&body); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	from, err := util.ParseDate(body.From)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	to, err := util.ParseDate(body.To)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := h.tierRunSvc.AllowRecompute(c.Request.Context(), consts.TierDailyEntity); err != nil {
		response.Error(c, err)
		return
	}

	statuses, err := h.dailyMetricSvc.Backfill(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, statuses)
}
