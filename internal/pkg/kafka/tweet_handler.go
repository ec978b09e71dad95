package kafka

import (
	"Neuron/internal/pkg/consts"
	"Neuron/internal/pkg/redis"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// TweetsHandler 消费推文表的 Canal 变更，只做脏标记，不写事件库
type TweetsHandler struct{}

func NewTweetsHandler() *TweetsHandler {
	return &TweetsHandler{}
}

func (s *TweetsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("tweet consumer setup")
	return nil
}

func (s *TweetsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("tweet consumer cleanup")
	return nil
}

func (s *TweetsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-tweet consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-tweet process batch error", "err", err)
		return err
	}
	return nil
}

func (s *TweetsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "tweets_deduplicated")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT, UPDATE:
	default:
		return nil
	}

	for _, row := range canalMsg.Data {
		authorID, _ := row["author_id"].(string)
		if authorID == "" {
			continue
		}
		if err := redis.SAddValue(ctx, consts.AuthorDirtyKey, authorID); err != nil {
			return err
		}
	}
	return nil
}
