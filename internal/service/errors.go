package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrEntityNotFound       = errors.New("实体不存在")
	ErrAuthorNotFound       = errors.New("作者不存在")
	ErrMetricNotComputed    = errors.New("指标尚未计算")
	ErrWindowNotReady       = errors.New("滚动窗口原始数据未就绪")
	ErrTierAlreadyRunning   = errors.New("计算层级正在运行")
	ErrRecomputeRateLimited = errors.New("重算请求超过频率限制")
	ErrUnsupportedPeriod    = errors.New("不支持的分析周期")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrEntityNotFound:       NotFound,
	ErrAuthorNotFound:       NotFound,
	ErrMetricNotComputed:    NotFound,
	ErrWindowNotReady:       Conflict,
	ErrTierAlreadyRunning:   Conflict,
	ErrRecomputeRateLimited: TooManyRequests,
	ErrUnsupportedPeriod:    BadRequest,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}
