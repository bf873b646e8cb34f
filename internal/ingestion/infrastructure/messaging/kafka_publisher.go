// Package messaging publishes upload lifecycle events to Kafka.
package messaging

import (
	"context"

	"github.com/wyfcoding/ssrequity/internal/ingestion/domain"
	"github.com/wyfcoding/ssrequity/pkg/mq"
)

// KafkaEventPublisher implements domain.EventPublisher over the shared
// producer.
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) domain.EventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

// PublishBatchStored publishes the event keyed by batch id, so one batch's
// events land on one partition.
func (p *KafkaEventPublisher) PublishBatchStored(ctx context.Context, event domain.BatchStoredEvent) error {
	return p.producer.SendMessage(ctx, p.topic, event.BatchID, event)
}
