package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type RecoveryEventPublisher struct {
	writer *kafka.Writer
}

func NewRecoveryEventPublisher(brokers []string, topic string) *RecoveryEventPublisher {
	return &RecoveryEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishRecoveryEvent keys messages by vault so all transitions of one
// vault land on the same partition, in order.
func (k *RecoveryEventPublisher) PublishRecoveryEvent(event domain.RecoveryEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.VaultID),
		Value: msg,
		Time:  time.Now(),
	})
}
