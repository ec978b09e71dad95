package consts

const (
	EntityMetricsRangeKey = "entity:metrics:range:"
	EntityMetricsTopKey   = "entity:metrics:top:"
	AuthorDailyRangeKey   = "author:daily:range:"
	AuthorIntelKey        = "author:intel:"
	AuthorTopKey          = "author:top:"

	EntityDirtyKey = "entity:dirty"
	AuthorDirtyKey = "author:dirty"

	RecomputeRateKey = "compute:rate:"
)

const (
	DailyEntityJobLock    = "lock:job:daily_entity"
	RollingEntityJobLock  = "lock:job:rolling_entity"
	AuthorBehaviorJobLock = "lock:job:author_behavior"
	IntelligenceJobLock   = "lock:job:intelligence:"
)
