package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	setScoringDefaults()
	setComputeDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// setScoringDefaults 写入评分经验常量的默认值，配置文件可覆盖
func setScoringDefaults() {
	viper.SetDefault("scoring.retweet_weight", 3.0)
	viper.SetDefault("scoring.quote_weight", 2.5)
	viper.SetDefault("scoring.reply_weight", 2.0)
	viper.SetDefault("scoring.like_weight", 1.0)
	viper.SetDefault("scoring.bookmark_weight", 1.5)
	viper.SetDefault("scoring.view_weight", 0.001)
	viper.SetDefault("scoring.viral_threshold", 200.0)
	viper.SetDefault("scoring.highly_viral_threshold", 1000.0)

	viper.SetDefault("scoring.shared_link_min_authors", 5)
	viper.SetDefault("scoring.shared_hashtag_min_authors", 10)
	viper.SetDefault("scoring.timing_bucket_min_authors", 3)
	viper.SetDefault("scoring.timing_bucket_seconds", 300)

	viper.SetDefault("scoring.coord_link_weight", 0.4)
	viper.SetDefault("scoring.coord_hashtag_weight", 0.3)
	viper.SetDefault("scoring.coord_timing_weight", 0.3)

	viper.SetDefault("scoring.amplification_weight", 0.3)
	viper.SetDefault("scoring.engagement_weight", 0.25)
	viper.SetDefault("scoring.reply_gen_weight", 0.2)
	viper.SetDefault("scoring.network_reach_weight", 0.15)
	viper.SetDefault("scoring.cross_context_weight", 0.1)
	viper.SetDefault("scoring.amplification_norm", 50.0)
	viper.SetDefault("scoring.reply_gen_norm", 10.0)
	viper.SetDefault("scoring.network_reach_norm", 100.0)
	viper.SetDefault("scoring.cross_context_norm", 5.0)
	viper.SetDefault("scoring.authority_cap", 10.0)

	viper.SetDefault("scoring.priority_risk_cutoff", 0.7)
	viper.SetDefault("scoring.priority_influence_cutoff", 0.8)
	viper.SetDefault("scoring.priority_amplification_cutoff", 20.0)
	viper.SetDefault("scoring.priority_betweenness_cutoff", 0.6)
}

func setComputeDefaults() {
	viper.SetDefault("compute.parallelism", 8)
	viper.SetDefault("compute.min_tweet_threshold", 5)
	viper.SetDefault("compute.author_id_max_len", 64)
	viper.SetDefault("compute.new_author_window", 30)
	viper.SetDefault("compute.recompute_per_minute", 2)
}
