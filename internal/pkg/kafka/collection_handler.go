package kafka

import (
	"Neuron/internal/pkg/consts"
	"Neuron/internal/pkg/redis"
	"context"
	"fmt"
	log "log/slog"

	"github.com/IBM/sarama"
)

// CollectionsHandler 消费归属表的 Canal 变更，把受影响的实体写进脏集合
type CollectionsHandler struct{}

func NewCollectionsHandler() *CollectionsHandler {
	return &CollectionsHandler{}
}

func (s *CollectionsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("collection consumer setup")
	return nil
}

func (s *CollectionsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("collection consumer cleanup")
	return nil
}

func (s *CollectionsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-collection consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-collection process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CollectionsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "collections")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT, UPDATE, DELETE:
	default:
		return nil
	}

	for _, row := range canalMsg.Data {
		members := make([]interface{}, 0, 2)
		if projectID, ok := row["project_id"]; ok && projectID != nil {
			members = append(members, consts.EntityTypeProject+":"+fmt.Sprint(projectID))
		}
		if themeCode, _ := row["theme_code"].(string); themeCode != "" {
			members = append(members, consts.EntityTypeTheme+":"+themeCode)
		}
		if len(members) == 0 {
			continue
		}
		if err := redis.SAddValue(ctx, consts.EntityDirtyKey, members...); err != nil {
			return err
		}
	}
	return nil
}
