package service

import (
	"time"
)

// getMidnight 当天零点，所有按日计算的统一时间锚点
func getMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// cacheExpiration 距次日零点提前 5 分钟过期，保证跨天后读到的是当天重算结果
func cacheExpiration(now time.Time) time.Duration {
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return time.Until(midnight) - time.Minute*5
}
