package config

// Config 配置主体
type Config struct {
	Server               ServerConfig       `mapstructure:"server"`
	DB                   DBConfig           `mapstructure:"database"`
	Redis                RedisConfig        `mapstructure:"redis"`
	Logstash             LogstashConfig     `mapstructure:"logstash"`
	API                  APIConfig          `mapstructure:"api"`
	Kafka                KafkaConfig        `mapstructure:"kafka"`
	KafkaTweetConsumer   KafkaTweetConsumer `mapstructure:"kafka_tweet_consumer"`
	KafkaCollectConsumer KafkaCollConsumer  `mapstructure:"kafka_collection_consumer"`
	Scoring              ScoringConfig      `mapstructure:"scoring"`
	Compute              ComputeConfig      `mapstructure:"compute"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// APIConfig 读接口配置，KeyHash 为 bcrypt 处理后的 API Key
type APIConfig struct {
	KeyHash string `mapstructure:"key_hash"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaTweetConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type KafkaCollConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// ScoringConfig 评分权重与阈值。全部为经验常量，调优只改配置，不改表结构
type ScoringConfig struct {
	// 病毒式传播得分权重
	RetweetWeight  float64 `mapstructure:"retweet_weight"`
	QuoteWeight    float64 `mapstructure:"quote_weight"`
	ReplyWeight    float64 `mapstructure:"reply_weight"`
	LikeWeight     float64 `mapstructure:"like_weight"`
	BookmarkWeight float64 `mapstructure:"bookmark_weight"`
	ViewWeight     float64 `mapstructure:"view_weight"`

	ViralThreshold       float64 `mapstructure:"viral_threshold"`
	HighlyViralThreshold float64 `mapstructure:"highly_viral_threshold"`

	// 协同行为检测阈值
	SharedLinkMinAuthors    int `mapstructure:"shared_link_min_authors"`
	SharedHashtagMinAuthors int `mapstructure:"shared_hashtag_min_authors"`
	TimingBucketMinAuthors  int `mapstructure:"timing_bucket_min_authors"`
	TimingBucketSeconds     int `mapstructure:"timing_bucket_seconds"`

	// 协同风险权重
	CoordLinkWeight    float64 `mapstructure:"coord_link_weight"`
	CoordHashtagWeight float64 `mapstructure:"coord_hashtag_weight"`
	CoordTimingWeight  float64 `mapstructure:"coord_timing_weight"`

	// 影响力权重与归一化除数
	AmplificationWeight float64 `mapstructure:"amplification_weight"`
	EngagementWeight    float64 `mapstructure:"engagement_weight"`
	ReplyGenWeight      float64 `mapstructure:"reply_gen_weight"`
	NetworkReachWeight  float64 `mapstructure:"network_reach_weight"`
	CrossContextWeight  float64 `mapstructure:"cross_context_weight"`
	AmplificationNorm   float64 `mapstructure:"amplification_norm"`
	ReplyGenNorm        float64 `mapstructure:"reply_gen_norm"`
	NetworkReachNorm    float64 `mapstructure:"network_reach_norm"`
	CrossContextNorm    float64 `mapstructure:"cross_context_norm"`
	AuthorityCap        float64 `mapstructure:"authority_cap"`

	// 监控优先级规则阈值
	PriorityRiskCutoff          float64 `mapstructure:"priority_risk_cutoff"`
	PriorityInfluenceCutoff     float64 `mapstructure:"priority_influence_cutoff"`
	PriorityAmplificationCutoff float64 `mapstructure:"priority_amplification_cutoff"`
	PriorityBetweennessCutoff   float64 `mapstructure:"priority_betweenness_cutoff"`
}

// ComputeConfig 批量计算配置
type ComputeConfig struct {
	Parallelism        int `mapstructure:"parallelism"`
	MinTweetThreshold  int `mapstructure:"min_tweet_threshold"`
	AuthorIDMaxLen     int `mapstructure:"author_id_max_len"`
	NewAuthorWindow    int `mapstructure:"new_author_window"`
	RecomputePerMinute int `mapstructure:"recompute_per_minute"`
}
