package kafka

import (
	"Neuron/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	tweetConsumer sarama.ConsumerGroup
	tweetHandler  sarama.ConsumerGroupHandler

	collectionConsumer sarama.ConsumerGroup
	collectionHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	tweetConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaTweetConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	collectionConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCollectConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		tweetConsumer:      tweetConsumer,
		tweetHandler:       NewTweetsHandler(),
		collectionConsumer: collectionConsumer,
		collectionHandler:  NewCollectionsHandler(),
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 取消
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaTweetConsumer.Topic
		log.Info("Tweet consumer started", "topic", topic)
		for {
			if err := m.tweetConsumer.Consume(ctx, []string{topic}, m.tweetHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		topic := cfg.KafkaCollectConsumer.Topic
		log.Info("Collection consumer started", "topic", topic)
		for {
			if err := m.collectionConsumer.Consume(ctx, []string{topic}, m.collectionHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.tweetConsumer.Close(); err != nil {
		log.Error("Failed to close tweet consumer", "err", err)
	}
	if err := m.collectionConsumer.Close(); err != nil {
		log.Error("Failed to close collection consumer", "err", err)
	}

	return nil
}
